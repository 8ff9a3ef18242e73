/*
service.go - Planning orchestration: validate, detect, persist

PURPOSE:
  The service is what API routes call. It validates the candidate, asks
  the Repository for overlapping records (with self-exclusion on update),
  runs DetectConflicts, persists the event and its conflict records, and
  returns both. Conflicts never block the write; they are returned and
  stored for later review.

FAILURE SEMANTICS:
  Repository errors propagate unchanged. Validation failures return a
  *ValidationError before any query is issued.
*/
package planning

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service orchestrates conflict detection around event persistence.
type Service struct {
	repo  Repository
	newID func() string
	now   func() time.Time
}

// NewService wires a planning service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// CreateEvent validates, detects conflicts and persists a new event.
// The returned conflicts (possibly empty) were recorded alongside it.
func (s *Service) CreateEvent(ctx context.Context, event Event) (Event, []Conflict, error) {
	if err := validateEvent(event); err != nil {
		return Event{}, nil, err
	}

	if event.ID == "" {
		event.ID = s.newID()
	}
	if event.Status == "" {
		event.Status = StatusPlanned
	}
	event.Title = strings.TrimSpace(event.Title)
	event.CreatedAt = s.now()
	event.UpdatedAt = event.CreatedAt

	conflicts, err := s.detect(ctx, event, "")
	if err != nil {
		return Event{}, nil, err
	}

	persisted, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return Event{}, nil, err
	}

	if err := s.repo.SaveConflicts(ctx, persisted.ID, conflicts); err != nil {
		return Event{}, nil, err
	}

	return persisted, conflicts, nil
}

// UpdateEvent validates, detects conflicts excluding the event's own id,
// and persists the new version.
func (s *Service) UpdateEvent(ctx context.Context, event Event) (Event, []Conflict, error) {
	existing, err := s.repo.GetEvent(ctx, event.OrganizationID, event.ID)
	if err != nil {
		return Event{}, nil, err
	}

	if err := validateEvent(event); err != nil {
		return Event{}, nil, err
	}
	if event.Status == "" {
		event.Status = existing.Status
	}
	event.Title = strings.TrimSpace(event.Title)
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = s.now()

	conflicts, err := s.detect(ctx, event, event.ID)
	if err != nil {
		return Event{}, nil, err
	}

	persisted, err := s.repo.UpdateEvent(ctx, event)
	if err != nil {
		return Event{}, nil, err
	}

	if err := s.repo.SaveConflicts(ctx, persisted.ID, conflicts); err != nil {
		return Event{}, nil, err
	}

	return persisted, conflicts, nil
}

// CheckConflicts is the dry-run variant: detection without persistence.
// The candidate's id, when set, is excluded so updates can be previewed.
func (s *Service) CheckConflicts(ctx context.Context, event Event) ([]Conflict, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}
	return s.detect(ctx, event, event.ID)
}

// GetEvent fetches one event of the organization.
func (s *Service) GetEvent(ctx context.Context, orgID, id string) (Event, error) {
	return s.repo.GetEvent(ctx, orgID, id)
}

// ListEvents lists the organization's events.
func (s *Service) ListEvents(ctx context.Context, orgID string) ([]Event, error) {
	return s.repo.ListEvents(ctx, orgID)
}

// DeleteEvent removes an event.
func (s *Service) DeleteEvent(ctx context.Context, orgID, id string) error {
	return s.repo.DeleteEvent(ctx, orgID, id)
}

func (s *Service) detect(ctx context.Context, candidate Event, excludeID string) ([]Conflict, error) {
	overlapping, err := s.repo.FindOverlapping(ctx, candidate.OrganizationID, candidate.Start, candidate.End, excludeID)
	if err != nil {
		return nil, err
	}
	return DetectConflicts(overlapping, candidate), nil
}

func validateEvent(event Event) error {
	vErr := &ValidationError{}

	if strings.TrimSpace(event.Title) == "" {
		vErr.add("title", "title is required")
	}
	if event.OrganizationID == "" {
		vErr.add("organization_id", "organization is required")
	}
	if event.Start.IsZero() || event.End.IsZero() {
		vErr.add("time", "start and end are required")
	} else if !event.Start.Before(event.End) {
		vErr.add("time", "start must be before end")
	}
	if event.Status != "" && !ValidStatus(event.Status) {
		vErr.add("status", "unknown status")
	}

	if vErr.hasErrors() {
		return vErr
	}
	return nil
}
