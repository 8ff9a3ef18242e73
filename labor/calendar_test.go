package labor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucascenseur/plannitech/labor"
)

func TestFrenchCalendar_FixedDates(t *testing.T) {
	cal := labor.FrenchCalendar{}

	assert.True(t, cal.IsHoliday(at(2024, time.July, 14, 0)), "Fête nationale")
	assert.True(t, cal.IsHoliday(at(2024, time.December, 25, 18)), "Noël, any hour")
	assert.False(t, cal.IsHoliday(at(2024, time.July, 15, 0)))
}

func TestFrenchCalendar_MovableFeasts(t *testing.T) {
	// Easter-derived holidays must track the computus year by year.
	cal := labor.FrenchCalendar{}

	// 2024: Easter Sunday March 31
	assert.True(t, cal.IsHoliday(at(2024, time.April, 1, 0)), "Lundi de Pâques 2024")
	assert.True(t, cal.IsHoliday(at(2024, time.May, 9, 0)), "Ascension 2024")
	assert.True(t, cal.IsHoliday(at(2024, time.May, 20, 0)), "Lundi de Pentecôte 2024")

	// 2025: Easter Sunday April 20
	assert.True(t, cal.IsHoliday(at(2025, time.April, 21, 0)), "Lundi de Pâques 2025")
	assert.True(t, cal.IsHoliday(at(2025, time.May, 29, 0)), "Ascension 2025")
	assert.False(t, cal.IsHoliday(at(2025, time.April, 1, 0)))
}

func TestFrenchCalendar_ElevenHolidaysPerYear(t *testing.T) {
	holidays := labor.FrenchCalendar{}.Holidays(2024)
	require.Len(t, holidays, 11)
	for _, h := range holidays {
		assert.Equal(t, 2024, h.Date.Year(), h.Name)
	}
}

func TestIsWorkingDay(t *testing.T) {
	assert.True(t, labor.IsWorkingDay(at(2024, time.June, 3, 0)))  // Monday
	assert.False(t, labor.IsWorkingDay(at(2024, time.June, 8, 0))) // Saturday
	assert.False(t, labor.IsWorkingDay(at(2024, time.June, 9, 0))) // Sunday
	// A weekday holiday still counts as a working day here; holiday
	// awareness belongs to NextWorkingDay.
	assert.True(t, labor.IsWorkingDay(at(2024, time.November, 11, 0)))
}

func TestNextWorkingDay_SkipsWeekendAndHoliday(t *testing.T) {
	// GIVEN: Friday November 8th 2024; the following Monday is Armistice day
	// THEN: The next working day is Tuesday the 12th

	got := labor.NextWorkingDay(labor.FrenchCalendar{}, at(2024, time.November, 8, 0))
	assert.Equal(t, at(2024, time.November, 12, 0), got)
}

func TestNextWorkingDay_PlainWeekday(t *testing.T) {
	got := labor.NextWorkingDay(labor.FrenchCalendar{}, at(2024, time.June, 3, 0))
	assert.Equal(t, at(2024, time.June, 4, 0), got)
}

func TestNoHolidays(t *testing.T) {
	cal := labor.NoHolidays{}
	assert.False(t, cal.IsHoliday(at(2024, time.December, 25, 0)))
	assert.Empty(t, cal.Holidays(2024))
}
