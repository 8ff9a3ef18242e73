/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY AND HOURS:
  Decimal values are serialized as JSON strings so precision survives the
  trip through clients that parse numbers as floats.

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  the shared validator instance before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
  - labor/report.go: ComplianceReport, the domain shape behind ReportDTO
*/
package api

import (
	"time"

	"github.com/lucascenseur/plannitech/labor"
	"github.com/lucascenseur/plannitech/planning"
)

// =============================================================================
// EVENT TYPES
// =============================================================================

// EventDTO represents an event in API responses.
type EventDTO struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	Location       string    `json:"location,omitempty"`
	TeamIDs        []string  `json:"team_ids,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// EventRequest is the request body for creating or updating an event.
type EventRequest struct {
	Title    string    `json:"title" validate:"required"`
	Start    time.Time `json:"start" validate:"required"`
	End      time.Time `json:"end" validate:"required"`
	Location string    `json:"location"`
	TeamIDs  []string  `json:"team_ids"`
	Status   string    `json:"status"`
}

// ConflictDTO is one axis-level conflict finding.
type ConflictDTO struct {
	Type        string   `json:"type"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	AffectedIDs []string `json:"affected_ids"`
}

// EventResponse wraps an event together with the conflicts recorded when
// it was written.
type EventResponse struct {
	Event     EventDTO      `json:"event"`
	Conflicts []ConflictDTO `json:"conflicts"`
}

// ConflictCheckResponse is the dry-run check result.
type ConflictCheckResponse struct {
	HasConflicts bool          `json:"has_conflicts"`
	Conflicts    []ConflictDTO `json:"conflicts"`
}

// =============================================================================
// MEMBER TYPES
// =============================================================================

// MemberDTO represents a team member in API responses.
type MemberDTO struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	HourlyRate     string `json:"hourly_rate"`
	Intermittent   bool   `json:"intermittent"`
}

// CreateMemberRequest is the request to register a team member.
type CreateMemberRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	HourlyRate   string `json:"hourly_rate" validate:"required"`
	Intermittent bool   `json:"intermittent"`
}

// =============================================================================
// COMPLIANCE TYPES
// =============================================================================

// ReportRequest asks for a compliance report over [from, to].
type ReportRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
}

// BreakdownDTO is the hour and pay decomposition of a period.
type BreakdownDTO struct {
	RegularHours  string `json:"regular_hours"`
	OvertimeHours string `json:"overtime_hours"`
	NightHours    string `json:"night_hours"`
	SundayHours   string `json:"sunday_hours"`
	HolidayHours  string `json:"holiday_hours"`
	TotalHours    string `json:"total_hours"`

	RegularPay  string `json:"regular_pay"`
	OvertimePay string `json:"overtime_pay"`
	NightPay    string `json:"night_pay"`
	SundayPay   string `json:"sunday_pay"`
	HolidayPay  string `json:"holiday_pay"`
	TotalPay    string `json:"total_pay"`

	RestTime   string   `json:"rest_time"`
	Compliant  bool     `json:"compliant"`
	Violations []string `json:"violations"`
}

// ChargesDTO is the social-charges decomposition of a gross amount.
type ChargesDTO struct {
	GrossPay        string `json:"gross_pay"`
	EmployeeCharges string `json:"employee_charges"`
	EmployerCharges string `json:"employer_charges"`
	NetPay          string `json:"net_pay"`
	TotalCost       string `json:"total_cost"`
}

// ReportDTO is the full compliance report for one member and period.
type ReportDTO struct {
	MemberID        string       `json:"member_id"`
	From            string       `json:"from"`
	To              string       `json:"to"`
	Breakdown       BreakdownDTO `json:"breakdown"`
	Charges         ChargesDTO   `json:"charges"`
	Compliant       bool         `json:"compliant"`
	Violations      []string     `json:"violations"`
	Recommendations []string     `json:"recommendations"`
	TotalPayDisplay string       `json:"total_pay_display"`
}

// ChargesRequest asks for a social-charges calculation on a gross amount.
type ChargesRequest struct {
	GrossPay     string `json:"gross_pay" validate:"required"`
	Intermittent bool   `json:"intermittent"`
}

// HolidayDTO is one public holiday.
type HolidayDTO struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEventDTO(e planning.Event) EventDTO {
	return EventDTO{
		ID:             e.ID,
		OrganizationID: e.OrganizationID,
		Title:          e.Title,
		Start:          e.Start,
		End:            e.End,
		Location:       e.Location,
		TeamIDs:        e.TeamIDs,
		Status:         string(e.Status),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func toConflictDTOs(conflicts []planning.Conflict) []ConflictDTO {
	dtos := make([]ConflictDTO, len(conflicts))
	for i, c := range conflicts {
		dtos[i] = ConflictDTO{
			Type:        string(c.Type),
			Severity:    string(c.Severity),
			Description: c.Description,
			AffectedIDs: c.AffectedIDs,
		}
	}
	return dtos
}

func toBreakdownDTO(b labor.TimeBreakdown) BreakdownDTO {
	violations := b.Violations
	if violations == nil {
		violations = []string{}
	}
	return BreakdownDTO{
		RegularHours:  b.RegularHours.String(),
		OvertimeHours: b.OvertimeHours.String(),
		NightHours:    b.NightHours.String(),
		SundayHours:   b.SundayHours.String(),
		HolidayHours:  b.HolidayHours.String(),
		TotalHours:    b.TotalHours.String(),
		RegularPay:    b.RegularPay.String(),
		OvertimePay:   b.OvertimePay.String(),
		NightPay:      b.NightPay.String(),
		SundayPay:     b.SundayPay.String(),
		HolidayPay:    b.HolidayPay.String(),
		TotalPay:      b.TotalPay.String(),
		RestTime:      b.RestTime.String(),
		Compliant:     b.Compliant,
		Violations:    violations,
	}
}
