package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucascenseur/plannitech/planning"
	"github.com/lucascenseur/plannitech/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func hour(h int) time.Time {
	return time.Date(2024, time.June, 3, h, 0, 0, 0, time.UTC)
}

func testEvent(id string, start, end time.Time) planning.Event {
	now := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	return planning.Event{
		ID:             id,
		OrganizationID: "org-1",
		Title:          "Concert " + id,
		Start:          start,
		End:            end,
		Status:         planning.StatusPlanned,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// =============================================================================
// EVENT CRUD
// =============================================================================

func TestStore_EventRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := testEvent("ev-1", hour(10), hour(12))
	event.Location = "Grande salle"
	event.TeamIDs = []string{"alice", "bob"}

	_, err := store.CreateEvent(ctx, event)
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, "org-1", "ev-1")
	require.NoError(t, err)

	assert.Equal(t, event.Title, got.Title)
	assert.Equal(t, "Grande salle", got.Location)
	assert.Equal(t, []string{"alice", "bob"}, got.TeamIDs)
	assert.True(t, got.Start.Equal(hour(10)), "start %s", got.Start)
	assert.True(t, got.End.Equal(hour(12)), "end %s", got.End)
}

func TestStore_GetEvent_WrongOrganization(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEvent(ctx, testEvent("ev-1", hour(10), hour(12)))
	require.NoError(t, err)

	_, err = store.GetEvent(ctx, "org-2", "ev-1")
	assert.ErrorIs(t, err, planning.ErrEventNotFound)
}

func TestStore_UpdateEvent_ReplacesTeam(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	event := testEvent("ev-1", hour(10), hour(12))
	event.TeamIDs = []string{"alice"}
	_, err := store.CreateEvent(ctx, event)
	require.NoError(t, err)

	event.TeamIDs = []string{"bob", "carol"}
	event.Status = planning.StatusConfirmed
	_, err = store.UpdateEvent(ctx, event)
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, "org-1", "ev-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, got.TeamIDs)
	assert.Equal(t, planning.StatusConfirmed, got.Status)
}

func TestStore_DeleteEvent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEvent(ctx, testEvent("ev-1", hour(10), hour(12)))
	require.NoError(t, err)

	require.NoError(t, store.DeleteEvent(ctx, "org-1", "ev-1"))

	_, err = store.GetEvent(ctx, "org-1", "ev-1")
	assert.ErrorIs(t, err, planning.ErrEventNotFound)

	assert.ErrorIs(t, store.DeleteEvent(ctx, "org-1", "ev-1"), planning.ErrEventNotFound)
}

// =============================================================================
// OVERLAP QUERY
// =============================================================================

func TestStore_FindOverlapping_StrictBounds(t *testing.T) {
	// GIVEN: An event 11:00-13:00
	// THEN: 10:00-12:00 overlaps; 09:00-11:00 only touches and does not

	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEvent(ctx, testEvent("ev-1", hour(11), hour(13)))
	require.NoError(t, err)

	overlapping, err := store.FindOverlapping(ctx, "org-1", hour(10), hour(12), "")
	require.NoError(t, err)
	require.Len(t, overlapping, 1)
	assert.Equal(t, "ev-1", overlapping[0].ID)

	touching, err := store.FindOverlapping(ctx, "org-1", hour(9), hour(11), "")
	require.NoError(t, err)
	assert.Empty(t, touching)
}

func TestStore_FindOverlapping_FiltersCancelledAndOtherOrgs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cancelled := testEvent("ev-cancelled", hour(10), hour(12))
	cancelled.Status = planning.StatusCancelled
	_, err := store.CreateEvent(ctx, cancelled)
	require.NoError(t, err)

	other := testEvent("ev-other-org", hour(10), hour(12))
	other.OrganizationID = "org-2"
	_, err = store.CreateEvent(ctx, other)
	require.NoError(t, err)

	overlapping, err := store.FindOverlapping(ctx, "org-1", hour(10), hour(12), "")
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestStore_FindOverlapping_ExcludesSelf(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEvent(ctx, testEvent("ev-1", hour(10), hour(12)))
	require.NoError(t, err)

	overlapping, err := store.FindOverlapping(ctx, "org-1", hour(10), hour(12), "ev-1")
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

// =============================================================================
// CONFLICT RECORDS
// =============================================================================

func TestStore_SaveConflicts_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateEvent(ctx, testEvent("ev-1", hour(10), hour(12)))
	require.NoError(t, err)

	conflicts := []planning.Conflict{
		{
			Type:        planning.ConflictSchedule,
			Severity:    planning.SeverityMedium,
			Description: "1 événement(s) sur le même créneau horaire",
			AffectedIDs: []string{"ev-2"},
		},
		{
			Type:        planning.ConflictResource,
			Severity:    planning.SeverityHigh,
			Description: "1 événement(s) au même endroit (Grande salle) sur le même créneau",
			AffectedIDs: []string{"ev-2"},
		},
	}
	require.NoError(t, store.SaveConflicts(ctx, "ev-1", conflicts))

	got, err := store.ConflictsFor(ctx, "ev-1")
	require.NoError(t, err)
	assert.Equal(t, conflicts, got)

	// Saving again replaces, never accumulates.
	require.NoError(t, store.SaveConflicts(ctx, "ev-1", conflicts[:1]))
	got, err = store.ConflictsFor(ctx, "ev-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// =============================================================================
// MEMBERS
// =============================================================================

func TestStore_MemberRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	member := sqlite.Member{
		ID:             "member-1",
		OrganizationID: "org-1",
		Name:           "Claire Dupont",
		Email:          "claire@example.com",
		HourlyRate:     decimal.RequireFromString("28.50"),
		Intermittent:   true,
	}
	require.NoError(t, store.SaveMember(ctx, member))

	got, err := store.GetMember(ctx, "member-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Claire Dupont", got.Name)
	assert.True(t, got.HourlyRate.Equal(member.HourlyRate))
	assert.True(t, got.Intermittent)

	missing, err := store.GetMember(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStore_ListMembers_ScopedToOrganization(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, m := range []sqlite.Member{
		{ID: "m-1", OrganizationID: "org-1", Name: "Alice", Email: "a@example.com", HourlyRate: decimal.NewFromInt(20)},
		{ID: "m-2", OrganizationID: "org-1", Name: "Bob", Email: "b@example.com", HourlyRate: decimal.NewFromInt(22)},
		{ID: "m-3", OrganizationID: "org-2", Name: "Carol", Email: "c@example.com", HourlyRate: decimal.NewFromInt(24)},
	} {
		require.NoError(t, store.SaveMember(ctx, m))
	}

	members, err := store.ListMembers(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice", members[0].Name)
	assert.Equal(t, "Bob", members[1].Name)
}
