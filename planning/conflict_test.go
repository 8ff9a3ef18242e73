package planning_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucascenseur/plannitech/planning"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func hour(h int) time.Time {
	return time.Date(2024, time.June, 3, h, 0, 0, 0, time.UTC)
}

func event(id string, start, end time.Time) planning.Event {
	return planning.Event{
		ID:             id,
		OrganizationID: "org-1",
		Title:          "Répétition " + id,
		Start:          start,
		End:            end,
		Status:         planning.StatusPlanned,
	}
}

// =============================================================================
// SCHEDULE AXIS
// =============================================================================

func TestDetectConflicts_OverlapYieldsScheduleConflict(t *testing.T) {
	// GIVEN: An existing event 11:00-13:00
	// WHEN: Checking a candidate 10:00-12:00
	// THEN: Exactly one SCHEDULE conflict referencing the existing id

	existing := []planning.Event{event("ev-1", hour(11), hour(13))}
	candidate := event("", hour(10), hour(12))

	conflicts := planning.DetectConflicts(existing, candidate)

	require.Len(t, conflicts, 1)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
	assert.Equal(t, planning.SeverityMedium, conflicts[0].Severity)
	assert.Equal(t, []string{"ev-1"}, conflicts[0].AffectedIDs)
	assert.Contains(t, conflicts[0].Description, "1 événement(s)")
}

func TestDetectConflicts_TouchingEndpointsDoNotConflict(t *testing.T) {
	// Strict overlap: candidate ending exactly when the existing one starts
	// is back-to-back scheduling, not a conflict.

	existing := []planning.Event{event("ev-1", hour(12), hour(14))}
	candidate := event("", hour(10), hour(12))

	assert.Empty(t, planning.DetectConflicts(existing, candidate))
}

func TestDetectConflicts_CancelledEventsIgnored(t *testing.T) {
	cancelled := event("ev-1", hour(10), hour(12))
	cancelled.Status = planning.StatusCancelled

	conflicts := planning.DetectConflicts([]planning.Event{cancelled}, event("", hour(10), hour(12)))
	assert.Empty(t, conflicts)
}

func TestDetectConflicts_SelfExcludedOnUpdate(t *testing.T) {
	// GIVEN: The candidate is an update of ev-1 itself
	// THEN: No conflict is attributable to ev-1

	existing := []planning.Event{event("ev-1", hour(10), hour(12))}
	candidate := event("ev-1", hour(10), hour(12))

	assert.Empty(t, planning.DetectConflicts(existing, candidate))
}

func TestDetectConflicts_AffectedIDsOrderedByStart(t *testing.T) {
	existing := []planning.Event{
		event("ev-late", hour(11), hour(13)),
		event("ev-early", hour(9), hour(12)),
	}
	candidate := event("", hour(10), hour(12))

	conflicts := planning.DetectConflicts(existing, candidate)

	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"ev-early", "ev-late"}, conflicts[0].AffectedIDs)
}

// =============================================================================
// RESOURCE AXIS
// =============================================================================

func TestDetectConflicts_SameLocationYieldsBothAxes(t *testing.T) {
	// GIVEN: An overlapping event at the same venue
	// THEN: Axes are independent: both a SCHEDULE and a RESOURCE conflict

	ex := event("ev-1", hour(11), hour(13))
	ex.Location = "Grande salle"
	candidate := event("", hour(10), hour(12))
	candidate.Location = "Grande salle"

	conflicts := planning.DetectConflicts([]planning.Event{ex}, candidate)

	require.Len(t, conflicts, 2)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
	assert.Equal(t, planning.ConflictResource, conflicts[1].Type)
	assert.Equal(t, planning.SeverityHigh, conflicts[1].Severity)
	assert.Equal(t, []string{"ev-1"}, conflicts[1].AffectedIDs)
}

func TestDetectConflicts_LocationAxisSkippedWithoutLocation(t *testing.T) {
	ex := event("ev-1", hour(11), hour(13))
	ex.Location = "Grande salle"
	candidate := event("", hour(10), hour(12)) // no location

	conflicts := planning.DetectConflicts([]planning.Event{ex}, candidate)

	require.Len(t, conflicts, 1)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
}

func TestDetectConflicts_DifferentLocationNoResourceConflict(t *testing.T) {
	ex := event("ev-1", hour(11), hour(13))
	ex.Location = "Studio B"
	candidate := event("", hour(10), hour(12))
	candidate.Location = "Grande salle"

	conflicts := planning.DetectConflicts([]planning.Event{ex}, candidate)

	require.Len(t, conflicts, 1)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
}

// =============================================================================
// TEAM AXIS
// =============================================================================

func TestDetectConflicts_SharedMemberYieldsTeamConflict(t *testing.T) {
	ex := event("ev-1", hour(11), hour(13))
	ex.TeamIDs = []string{"alice", "bob"}
	candidate := event("", hour(10), hour(12))
	candidate.TeamIDs = []string{"bob", "carol"}

	conflicts := planning.DetectConflicts([]planning.Event{ex}, candidate)

	require.Len(t, conflicts, 2)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
	assert.Equal(t, planning.ConflictTeam, conflicts[1].Type)
	assert.Equal(t, planning.SeverityHigh, conflicts[1].Severity)
}

func TestDetectConflicts_DisjointTeamsNoTeamConflict(t *testing.T) {
	ex := event("ev-1", hour(11), hour(13))
	ex.TeamIDs = []string{"alice"}
	candidate := event("", hour(10), hour(12))
	candidate.TeamIDs = []string{"bob"}

	conflicts := planning.DetectConflicts([]planning.Event{ex}, candidate)

	require.Len(t, conflicts, 1)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
}

func TestDetectConflicts_AllThreeAxes(t *testing.T) {
	// One existing event can trip every axis at once, in stable order.

	ex := event("ev-1", hour(11), hour(13))
	ex.Location = "Grande salle"
	ex.TeamIDs = []string{"alice"}
	candidate := event("", hour(10), hour(12))
	candidate.Location = "Grande salle"
	candidate.TeamIDs = []string{"alice"}

	conflicts := planning.DetectConflicts([]planning.Event{ex}, candidate)

	require.Len(t, conflicts, 3)
	assert.Equal(t, planning.ConflictSchedule, conflicts[0].Type)
	assert.Equal(t, planning.ConflictResource, conflicts[1].Type)
	assert.Equal(t, planning.ConflictTeam, conflicts[2].Type)
}
