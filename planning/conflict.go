/*
conflict.go - Three-axis conflict detection over event snapshots

PURPOSE:
  Pure detection logic. Callers supply the overlapping candidates (already
  filtered by the Repository's FindOverlapping contract, or any in-memory
  snapshot) and get back at most one Conflict per axis, in stable order:
  schedule, resource, team.
*/
package planning

import (
	"fmt"
	"sort"
)

// =============================================================================
// CONFLICT TYPES
// =============================================================================

// ConflictType identifies the axis a conflict was detected on.
type ConflictType string

const (
	ConflictSchedule ConflictType = "schedule"
	ConflictResource ConflictType = "resource"
	ConflictTeam     ConflictType = "team"
)

// Severity grades how disruptive a conflict is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Conflict is one axis-level finding for a candidate event. AffectedIDs
// are sorted by the existing record's start time (then id) so output is
// deterministic.
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	AffectedIDs []string
}

// =============================================================================
// DETECTION
// =============================================================================

// DetectConflicts checks the candidate against existing records on the
// three axes. Cancelled records and the candidate's own id are ignored, so
// the same call serves both creation and update. Axes are independent: an
// overlapping event at the same location yields both a schedule and a
// resource conflict.
func DetectConflicts(existing []Event, candidate Event) []Conflict {
	var schedule, resource, team []Event

	for _, ev := range existing {
		if ev.Status == StatusCancelled || ev.ID == candidate.ID {
			continue
		}
		if !candidate.Overlaps(ev) {
			continue
		}

		schedule = append(schedule, ev)
		if candidate.Location != "" && ev.Location == candidate.Location {
			resource = append(resource, ev)
		}
		if candidate.SharesTeamMember(ev) {
			team = append(team, ev)
		}
	}

	var conflicts []Conflict
	if len(schedule) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictSchedule,
			Severity:    SeverityMedium,
			Description: fmt.Sprintf("%d événement(s) sur le même créneau horaire", len(schedule)),
			AffectedIDs: affectedIDs(schedule),
		})
	}
	if len(resource) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictResource,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("%d événement(s) au même endroit (%s) sur le même créneau", len(resource), candidate.Location),
			AffectedIDs: affectedIDs(resource),
		})
	}
	if len(team) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictTeam,
			Severity:    SeverityHigh,
			Description: fmt.Sprintf("%d événement(s) mobilisant les mêmes membres de l'équipe", len(team)),
			AffectedIDs: affectedIDs(team),
		})
	}
	return conflicts
}

// affectedIDs orders matches by start time, then id, and projects the ids.
func affectedIDs(events []Event) []string {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	ids := make([]string, len(sorted))
	for i, ev := range sorted {
		ids[i] = ev.ID
	}
	return ids
}
