/*
Package factory provides JSON to labor rule-set conversion.

PURPOSE:
  Converts JSON rule definitions into labor.RuleSet values and holiday
  calendars. This enables jurisdiction configuration without code changes:
  an administrator can describe another country's thresholds in JSON and
  the calculator picks them up as-is.

JSON SCHEMA:
  {
    "name": "Convention collective X",
    "max_daily_hours": "10",
    "max_weekly_hours": "48",
    "max_annual_hours": "1607",
    "min_rest_between_shifts": "11",
    "min_weekly_rest": "35",
    "overtime_rate": "1.25",
    "night_work_rate": "1.5",
    "sunday_work_rate": "1.5",
    "holiday_work_rate": "2",
    "hours_per_day": "8",
    "holiday_calendar": "fr"
  }

  Numeric fields are JSON strings so decimal precision survives the trip;
  omitted fields default to the French values. holiday_calendar is "fr"
  (default) or "none".

USAGE:
  f := factory.NewRuleFactory()
  rules, calendar, err := f.ParseRuleSet(jsonStr)
  calc := labor.NewCalculator(rules, calendar)

SEE ALSO:
  - labor/rules.go: RuleSet definition and French defaults
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lucascenseur/plannitech/labor"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RuleSetJSON is the JSON representation of a labor rule set.
type RuleSetJSON struct {
	Name                 string `json:"name,omitempty"`
	MaxDailyHours        string `json:"max_daily_hours,omitempty"`
	MaxWeeklyHours       string `json:"max_weekly_hours,omitempty"`
	MaxAnnualHours       string `json:"max_annual_hours,omitempty"`
	MinRestBetweenShifts string `json:"min_rest_between_shifts,omitempty"`
	MinWeeklyRest        string `json:"min_weekly_rest,omitempty"`
	OvertimeRate         string `json:"overtime_rate,omitempty"`
	NightWorkRate        string `json:"night_work_rate,omitempty"`
	SundayWorkRate       string `json:"sunday_work_rate,omitempty"`
	HolidayWorkRate      string `json:"holiday_work_rate,omitempty"`
	HoursPerDay          string `json:"hours_per_day,omitempty"`
	WeeklyBaseHours      string `json:"weekly_base_hours,omitempty"`
	WeeklyHoursCap       string `json:"weekly_hours_cap,omitempty"`
	HolidayCalendar      string `json:"holiday_calendar,omitempty"`
}

// =============================================================================
// FACTORY
// =============================================================================

type RuleFactory struct{}

func NewRuleFactory() *RuleFactory {
	return &RuleFactory{}
}

// ParseRuleSet parses a JSON rule definition. Omitted fields keep the
// French defaults.
func (f *RuleFactory) ParseRuleSet(jsonStr string) (labor.RuleSet, labor.HolidayCalendar, error) {
	var rj RuleSetJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return labor.RuleSet{}, nil, fmt.Errorf("invalid rule set JSON: %w", err)
	}
	return f.FromJSON(rj)
}

// FromJSON builds a rule set from the decoded schema.
func (f *RuleFactory) FromJSON(rj RuleSetJSON) (labor.RuleSet, labor.HolidayCalendar, error) {
	rules := labor.FrenchRules()

	for _, field := range []struct {
		raw  string
		dest *decimal.Decimal
		name string
	}{
		{rj.MaxDailyHours, &rules.MaxDailyHours, "max_daily_hours"},
		{rj.MaxWeeklyHours, &rules.MaxWeeklyHours, "max_weekly_hours"},
		{rj.MaxAnnualHours, &rules.MaxAnnualHours, "max_annual_hours"},
		{rj.MinRestBetweenShifts, &rules.MinRestBetweenShifts, "min_rest_between_shifts"},
		{rj.MinWeeklyRest, &rules.MinWeeklyRest, "min_weekly_rest"},
		{rj.OvertimeRate, &rules.OvertimeRate, "overtime_rate"},
		{rj.NightWorkRate, &rules.NightWorkRate, "night_work_rate"},
		{rj.SundayWorkRate, &rules.SundayWorkRate, "sunday_work_rate"},
		{rj.HolidayWorkRate, &rules.HolidayWorkRate, "holiday_work_rate"},
		{rj.HoursPerDay, &rules.HoursPerDay, "hours_per_day"},
		{rj.WeeklyBaseHours, &rules.WeeklyBaseHours, "weekly_base_hours"},
		{rj.WeeklyHoursCap, &rules.WeeklyHoursCap, "weekly_hours_cap"},
	} {
		if field.raw == "" {
			continue
		}
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return labor.RuleSet{}, nil, fmt.Errorf("invalid %s %q: %w", field.name, field.raw, err)
		}
		*field.dest = value
	}

	calendar, err := parseCalendar(rj.HolidayCalendar)
	if err != nil {
		return labor.RuleSet{}, nil, err
	}
	return rules, calendar, nil
}

func parseCalendar(name string) (labor.HolidayCalendar, error) {
	switch name {
	case "", "fr":
		return labor.FrenchCalendar{}, nil
	case "none":
		return labor.NoHolidays{}, nil
	default:
		return nil, fmt.Errorf("unknown holiday calendar %q", name)
	}
}
