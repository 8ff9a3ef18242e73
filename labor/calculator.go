/*
calculator.go - Time and pay breakdown with compliance checks

PURPOSE:
  The core compliance calculator. Walks every calendar day of a period,
  classifies each day into exactly one bucket, accumulates hours, carves
  overtime out of the regular bucket, prices each bucket with its rule
  multiplier, and reports violations of the legal limits.

DAY CLASSIFICATION (priority order, mutually exclusive):
  holiday > sunday > night > regular

  A day counts as night work when the instant's hour falls in
  [22:00, 24:00) or [00:00, 06:00).

KNOWN APPROXIMATIONS (kept deliberately):
  - Each in-range day contributes a flat RuleSet.HoursPerDay, not the sum
    of actual task durations on that day.
  - Weekly hours are min(days * HoursPerDay, WeeklyHoursCap) rather than a
    true calendar-week bucketing; multi-week ranges do not reset at week
    boundaries.

INVARIANT:
  Regular + Overtime + Night + Sunday + Holiday == Total, before and after
  the overtime redistribution (overtime is carved out of regular).

SEE ALSO:
  - rules.go: the RuleSet thresholds and multipliers
  - charges.go: social charges on the resulting gross pay
  - report.go: composition into a full compliance report
*/
package labor

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RESULT TYPES
// =============================================================================

// TimeBreakdown is the regulated decomposition of one work period.
// Hours and pay are bucketed identically; TotalPay sums the pay buckets.
type TimeBreakdown struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	NightHours    decimal.Decimal
	SundayHours   decimal.Decimal
	HolidayHours  decimal.Decimal
	TotalHours    decimal.Decimal

	RegularPay  decimal.Decimal
	OvertimePay decimal.Decimal
	NightPay    decimal.Decimal
	SundayPay   decimal.Decimal
	HolidayPay  decimal.Decimal
	TotalPay    decimal.Decimal

	// RestTime is the rest within the period, floored at MinWeeklyRest.
	RestTime decimal.Decimal

	Compliant  bool
	Violations []string
}

// Compliance is the result of a standalone limit check.
type Compliance struct {
	Compliant  bool
	Violations []string
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator evaluates periods against one rule set and holiday calendar.
// It holds no mutable state; a single instance is safe for concurrent use.
type Calculator struct {
	rules    RuleSet
	calendar HolidayCalendar
}

// NewCalculator builds a calculator for the given jurisdiction.
// A nil calendar disables holiday classification.
func NewCalculator(rules RuleSet, calendar HolidayCalendar) *Calculator {
	if calendar == nil {
		calendar = NoHolidays{}
	}
	return &Calculator{rules: rules, calendar: calendar}
}

// Rules returns the rule set the calculator evaluates against.
func (c *Calculator) Rules() RuleSet { return c.rules }

// CalculateTimeAndPay computes the hour and pay breakdown for [from, to],
// both bounds inclusive at day granularity.
func (c *Calculator) CalculateTimeAndPay(from, to time.Time, hourlyRate decimal.Decimal, intermittent bool) (TimeBreakdown, error) {
	if to.Before(from) {
		return TimeBreakdown{}, &RangeError{From: from, To: to}
	}
	if hourlyRate.IsNegative() {
		return TimeBreakdown{}, &RateError{Rate: hourlyRate}
	}

	result := TimeBreakdown{}
	dayHours := c.rules.HoursPerDay
	days := 0

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days++

		switch {
		case c.calendar.IsHoliday(day):
			result.HolidayHours = result.HolidayHours.Add(dayHours)
		case day.Weekday() == time.Sunday:
			result.SundayHours = result.SundayHours.Add(dayHours)
		case isNightHour(day.Hour()):
			result.NightHours = result.NightHours.Add(dayHours)
		default:
			result.RegularHours = result.RegularHours.Add(dayHours)
		}
		result.TotalHours = result.TotalHours.Add(dayHours)

		if dayHours.GreaterThan(c.rules.MaxDailyHours) {
			result.Violations = append(result.Violations, fmt.Sprintf(
				"Durée quotidienne dépassée le %s : %s h travaillées pour un maximum de %s h",
				day.Format("2006-01-02"), dayHours, c.rules.MaxDailyHours))
		}
	}

	// Overtime redistribution: hours above the weekly base move from the
	// regular bucket into overtime. Weekly hours use the documented
	// approximation, not a calendar-week bucketing.
	weekly := c.weeklyHours(days)
	if weekly.GreaterThan(c.rules.WeeklyBaseHours) {
		excess := weekly.Sub(c.rules.WeeklyBaseHours)
		result.RegularHours = result.RegularHours.Sub(excess)
		result.OvertimeHours = result.OvertimeHours.Add(excess)
	}

	result.RegularPay = result.RegularHours.Mul(hourlyRate)
	result.OvertimePay = result.OvertimeHours.Mul(hourlyRate).Mul(c.rules.OvertimeRate)
	result.NightPay = result.NightHours.Mul(hourlyRate).Mul(c.rules.NightWorkRate)
	result.SundayPay = result.SundayHours.Mul(hourlyRate).Mul(c.rules.SundayWorkRate)
	result.HolidayPay = result.HolidayHours.Mul(hourlyRate).Mul(c.rules.HolidayWorkRate)
	result.TotalPay = result.RegularPay.
		Add(result.OvertimePay).
		Add(result.NightPay).
		Add(result.SundayPay).
		Add(result.HolidayPay)

	nDays := decimal.NewFromInt(int64(days))
	rest := nDays.Mul(dec("24")).Sub(nDays.Mul(dayHours))
	if rest.LessThan(c.rules.MinWeeklyRest) {
		rest = c.rules.MinWeeklyRest
	}
	result.RestTime = rest

	result.Compliant = len(result.Violations) == 0 &&
		!result.TotalHours.GreaterThan(c.rules.MaxWeeklyHours) &&
		!result.RestTime.LessThan(c.rules.MinWeeklyRest)

	return result, nil
}

// CheckCompliance evaluates the rest and cumulative-hour limits for a
// period. previousEnd, when non-nil, is the end of the preceding shift and
// enables the rest-between-shifts check.
func (c *Calculator) CheckCompliance(from, to time.Time, previousEnd *time.Time) Compliance {
	var violations []string

	if previousEnd != nil {
		restHours := decimal.NewFromFloat(from.Sub(*previousEnd).Hours())
		if restHours.LessThan(c.rules.MinRestBetweenShifts) {
			violations = append(violations, fmt.Sprintf(
				"Repos entre deux services insuffisant : %s h pour un minimum de %s h",
				restHours.StringFixed(1), c.rules.MinRestBetweenShifts))
		}
	}

	days := daysInclusive(from, to)
	weekly := c.weeklyHours(days)
	if weekly.GreaterThan(c.rules.MaxWeeklyHours) {
		violations = append(violations, fmt.Sprintf(
			"Durée hebdomadaire dépassée : %s h pour un maximum de %s h",
			weekly, c.rules.MaxWeeklyHours))
	}

	annual := weekly.Mul(dec("52"))
	if annual.GreaterThan(c.rules.MaxAnnualHours) {
		violations = append(violations, fmt.Sprintf(
			"Durée annuelle projetée dépassée : %s h pour un maximum de %s h",
			annual, c.rules.MaxAnnualHours))
	}

	return Compliance{Compliant: len(violations) == 0, Violations: violations}
}

// weeklyHours is the documented approximation min(days*HoursPerDay, cap).
func (c *Calculator) weeklyHours(days int) decimal.Decimal {
	weekly := decimal.NewFromInt(int64(days)).Mul(c.rules.HoursPerDay)
	if weekly.GreaterThan(c.rules.WeeklyHoursCap) {
		weekly = c.rules.WeeklyHoursCap
	}
	return weekly
}

// daysInclusive counts calendar days in [from, to], both bounds included.
// A reversed range counts zero days.
func daysInclusive(from, to time.Time) int {
	days := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// isNightHour reports whether an hour of day falls in the legal night-work
// window [22:00, 06:00).
func isNightHour(hour int) bool {
	return hour >= 22 || hour < 6
}
