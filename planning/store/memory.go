// Package store provides planning.Repository implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lucascenseur/plannitech/planning"
)

// =============================================================================
// MEMORY REPOSITORY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	events    map[string][]planning.Event // keyed by organization id
	conflicts map[string][]planning.Conflict
}

func NewMemory() *Memory {
	return &Memory{
		events:    make(map[string][]planning.Event),
		conflicts: make(map[string][]planning.Conflict),
	}
}

func (m *Memory) CreateEvent(_ context.Context, event planning.Event) (planning.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.insertLocked(event)
	return event, nil
}

func (m *Memory) GetEvent(_ context.Context, orgID, id string) (planning.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, ev := range m.events[orgID] {
		if ev.ID == id {
			return ev, nil
		}
	}
	return planning.Event{}, planning.ErrEventNotFound
}

func (m *Memory) UpdateEvent(_ context.Context, event planning.Event) (planning.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orgEvents := m.events[event.OrganizationID]
	for i, ev := range orgEvents {
		if ev.ID == event.ID {
			orgEvents = append(orgEvents[:i], orgEvents[i+1:]...)
			m.events[event.OrganizationID] = orgEvents
			m.insertLocked(event)
			return event, nil
		}
	}
	return planning.Event{}, planning.ErrEventNotFound
}

func (m *Memory) DeleteEvent(_ context.Context, orgID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	orgEvents := m.events[orgID]
	for i, ev := range orgEvents {
		if ev.ID == id {
			m.events[orgID] = append(orgEvents[:i], orgEvents[i+1:]...)
			delete(m.conflicts, id)
			return nil
		}
	}
	return planning.ErrEventNotFound
}

func (m *Memory) ListEvents(_ context.Context, orgID string) ([]planning.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]planning.Event, len(m.events[orgID]))
	copy(result, m.events[orgID])
	return result, nil
}

// FindOverlapping returns non-cancelled events of the organization whose
// interval strictly overlaps [start, end), excluding excludeID when set.
func (m *Memory) FindOverlapping(_ context.Context, orgID string, start, end time.Time, excludeID string) ([]planning.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []planning.Event
	for _, ev := range m.events[orgID] {
		if ev.Status == planning.StatusCancelled {
			continue
		}
		if excludeID != "" && ev.ID == excludeID {
			continue
		}
		if ev.Start.Before(end) && ev.End.After(start) {
			result = append(result, ev)
		}
	}
	return result, nil
}

func (m *Memory) SaveConflicts(_ context.Context, eventID string, conflicts []planning.Conflict) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]planning.Conflict, len(conflicts))
	copy(stored, conflicts)
	m.conflicts[eventID] = stored
	return nil
}

// ConflictsFor returns the conflicts recorded for an event.
func (m *Memory) ConflictsFor(eventID string) []planning.Conflict {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]planning.Conflict, len(m.conflicts[eventID]))
	copy(result, m.conflicts[eventID])
	return result
}

// insertLocked keeps each organization's events ordered by start time.
func (m *Memory) insertLocked(event planning.Event) {
	orgEvents := m.events[event.OrganizationID]

	i := sort.Search(len(orgEvents), func(i int) bool {
		return orgEvents[i].Start.After(event.Start)
	})

	orgEvents = append(orgEvents, planning.Event{})
	copy(orgEvents[i+1:], orgEvents[i:])
	orgEvents[i] = event
	m.events[event.OrganizationID] = orgEvents
}
