/*
Package labor implements French labor-law time and pay compliance.

PURPOSE:
  Given a work period, an hourly rate and a worker classification,
  compute the regulated breakdown of hours and pay, detect violations
  of legal working-time limits, and derive social charges. Everything
  in this package is pure computation: no I/O, no hidden state.

KEY CONCEPTS:
  - RuleSet: immutable table of thresholds and pay multipliers. The
    calculator is parameterized by it so other jurisdictions can be
    substituted without code changes.
  - HolidayCalendar: injectable holiday provider (calendar.go)
  - TimeBreakdown: hour buckets + pay buckets for a period
  - SocialCharges: employee/employer contributions derived from gross pay
  - Compliance findings are DATA, never errors. Only malformed input
    (reversed range, negative rate) produces an error.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal throughout, rounding only at presentation
  2. Immutability: every call produces fresh result values
  3. Injection: rule table and holiday calendar are explicit parameters

SEE ALSO:
  - calculator.go: the day-loop accumulation and compliance checks
  - calendar.go: holiday calendar implementations
  - charges.go: social-charge derivation
*/
package labor

import "github.com/shopspring/decimal"

// =============================================================================
// RULE SET - Thresholds and multipliers for one jurisdiction
// =============================================================================

// RuleSet is the regulatory configuration the calculator evaluates against.
// All hour fields are in hours; rate fields are multipliers applied on top
// of the base hourly rate.
type RuleSet struct {
	MaxDailyHours        decimal.Decimal
	MaxWeeklyHours       decimal.Decimal
	MaxAnnualHours       decimal.Decimal
	MinRestBetweenShifts decimal.Decimal
	MinWeeklyRest        decimal.Decimal

	OvertimeRate    decimal.Decimal
	NightWorkRate   decimal.Decimal
	SundayWorkRate  decimal.Decimal
	HolidayWorkRate decimal.Decimal

	// HoursPerDay is the flat workday assumption used when a period is not
	// backed by per-day task durations.
	HoursPerDay decimal.Decimal

	// WeeklyBaseHours is the legal base above which hours become overtime.
	// WeeklyHoursCap bounds the weekly-hours approximation.
	WeeklyBaseHours decimal.Decimal
	WeeklyHoursCap  decimal.Decimal
}

// FrenchRules returns the default rule set for French labor law
// (Code du travail, general regime).
func FrenchRules() RuleSet {
	return RuleSet{
		MaxDailyHours:        dec("10"),
		MaxWeeklyHours:       dec("48"),
		MaxAnnualHours:       dec("1607"),
		MinRestBetweenShifts: dec("11"),
		MinWeeklyRest:        dec("35"),

		OvertimeRate:    dec("1.25"),
		NightWorkRate:   dec("1.5"),
		SundayWorkRate:  dec("1.5"),
		HolidayWorkRate: dec("2"),

		HoursPerDay:     dec("8"),
		WeeklyBaseHours: dec("35"),
		WeeklyHoursCap:  dec("48"),
	}
}

// dec parses a decimal constant; panics on malformed literals, which only
// happens on programmer error.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
