/*
Package planning provides the event model and conflict detection for
live-performance scheduling.

PURPOSE:
  A candidate event or task is checked against the organization's existing
  non-cancelled records on three independent axes before it is persisted:

    schedule  - any time overlap at all          (MEDIUM severity)
    resource  - overlap at the same location     (HIGH severity)
    team      - overlap sharing a team member    (HIGH severity)

  Detection is a pure function over snapshots; the Repository performs the
  actual queries and the Service wires the two together. Conflicts are
  informational: they are recorded alongside the event, never used to
  block creation (review happens later in the planning UI).

OVERLAP SEMANTICS:
  Strict interval overlap: existing.Start < candidate.End AND
  existing.End > candidate.Start. Touching endpoints do NOT conflict.

CONCURRENCY:
  Check-then-act across two concurrent creations can still double-book;
  mitigation (constraints, serializable transactions) belongs to the
  persistence layer, not here.

SEE ALSO:
  - conflict.go: the three-axis detection algorithm
  - service.go: orchestration over the Repository
*/
package planning

import (
	"context"
	"time"
)

// =============================================================================
// EVENT - A time-bound record on an organization's planning
// =============================================================================

// Status is the lifecycle state of an event. Cancelled events are excluded
// from conflict checks.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPlanned, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Event is a show, rehearsal or production task on an organization's
// planning. Location and TeamIDs are optional; an empty location opts the
// event out of resource conflicts, an empty team out of team conflicts.
type Event struct {
	ID             string
	OrganizationID string
	Title          string
	Start          time.Time
	End            time.Time
	Location       string
	TeamIDs        []string
	Status         Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports strict interval overlap with another event.
// Touching endpoints (e.End == other.Start) do not overlap.
func (e Event) Overlaps(other Event) bool {
	return other.Start.Before(e.End) && other.End.After(e.Start)
}

// SharesTeamMember reports whether any assigned member appears in both events.
func (e Event) SharesTeamMember(other Event) bool {
	if len(e.TeamIDs) == 0 || len(other.TeamIDs) == 0 {
		return false
	}
	members := make(map[string]struct{}, len(e.TeamIDs))
	for _, id := range e.TeamIDs {
		members[id] = struct{}{}
	}
	for _, id := range other.TeamIDs {
		if _, ok := members[id]; ok {
			return true
		}
	}
	return false
}

// =============================================================================
// REPOSITORY - Persistence contract the service depends on
// =============================================================================

// Repository is the persistence capability the planning service needs.
// FindOverlapping must return only non-cancelled records of the
// organization whose interval strictly overlaps [start, end), excluding
// excludeID when non-empty (self-exclusion on updates).
type Repository interface {
	CreateEvent(ctx context.Context, event Event) (Event, error)
	GetEvent(ctx context.Context, orgID, id string) (Event, error)
	UpdateEvent(ctx context.Context, event Event) (Event, error)
	DeleteEvent(ctx context.Context, orgID, id string) error
	ListEvents(ctx context.Context, orgID string) ([]Event, error)

	FindOverlapping(ctx context.Context, orgID string, start, end time.Time, excludeID string) ([]Event, error)

	// SaveConflicts records the detected conflicts alongside an event.
	SaveConflicts(ctx context.Context, eventID string, conflicts []Conflict) error
}
