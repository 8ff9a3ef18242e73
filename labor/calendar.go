/*
calendar.go - Holiday calendars and working-day helpers

PURPOSE:
  Provides the HolidayCalendar abstraction the calculator classifies days
  against. FrenchCalendar computes the French public holidays for ANY year
  (fixed dates plus the Easter-derived movable feasts), so no hard-coded
  yearly list needs maintenance.

SEE ALSO:
  - calculator.go: uses IsHoliday for day classification
*/
package labor

import "time"

// =============================================================================
// HOLIDAY CALENDAR
// =============================================================================

// Holiday is a single public holiday.
type Holiday struct {
	Date time.Time
	Name string
}

// HolidayCalendar provides holiday lookups for one jurisdiction.
type HolidayCalendar interface {
	// IsHoliday reports whether the calendar date of t is a public holiday.
	IsHoliday(t time.Time) bool

	// Holidays returns all public holidays of the given year, in date order.
	Holidays(year int) []Holiday
}

// NoHolidays is a no-op calendar for jurisdictions or tests without holidays.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(time.Time) bool { return false }
func (NoHolidays) Holidays(int) []Holiday   { return nil }

// =============================================================================
// FRENCH CALENDAR
// =============================================================================

// FrenchCalendar implements the eleven French public holidays.
type FrenchCalendar struct{}

func (c FrenchCalendar) IsHoliday(t time.Time) bool {
	for _, h := range c.Holidays(t.Year()) {
		if sameDate(h.Date, t) {
			return true
		}
	}
	return false
}

func (FrenchCalendar) Holidays(year int) []Holiday {
	easter := easterSunday(year)
	return []Holiday{
		{date(year, time.January, 1), "Jour de l'an"},
		{easter.AddDate(0, 0, 1), "Lundi de Pâques"},
		{date(year, time.May, 1), "Fête du Travail"},
		{date(year, time.May, 8), "Victoire 1945"},
		{easter.AddDate(0, 0, 39), "Ascension"},
		{easter.AddDate(0, 0, 50), "Lundi de Pentecôte"},
		{date(year, time.July, 14), "Fête nationale"},
		{date(year, time.August, 15), "Assomption"},
		{date(year, time.November, 1), "Toussaint"},
		{date(year, time.November, 11), "Armistice 1918"},
		{date(year, time.December, 25), "Noël"},
	}
}

// easterSunday computes Easter Sunday with the anonymous Gregorian computus.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return date(year, time.Month(month), day)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// =============================================================================
// WORKING-DAY HELPERS
// =============================================================================

// IsWorkingDay reports whether t falls on a weekday (Monday through Friday).
// Holidays are not considered; see NextWorkingDay for holiday-aware stepping.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextWorkingDay returns the first day strictly after t that is a weekday
// and not a holiday in the given calendar. The loop terminates because
// holidays are finite within a year and weekdays recur weekly.
func NextWorkingDay(cal HolidayCalendar, t time.Time) time.Time {
	next := t.AddDate(0, 0, 1)
	for !IsWorkingDay(next) || (cal != nil && cal.IsHoliday(next)) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
