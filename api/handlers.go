/*
handlers.go - HTTP API handlers for planning and compliance

PURPOSE:
  Exposes event planning with conflict detection and the labor-law
  compliance calculator via REST. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Events (per organization):
    GET    /api/organizations/{orgID}/events             List events
    POST   /api/organizations/{orgID}/events             Create, returns conflicts
    POST   /api/organizations/{orgID}/events/conflicts   Dry-run conflict check
    GET    /api/organizations/{orgID}/events/{id}        Get event
    PUT    /api/organizations/{orgID}/events/{id}        Update, returns conflicts
    DELETE /api/organizations/{orgID}/events/{id}        Delete event

  Members (per organization):
    GET    /api/organizations/{orgID}/members            List members
    POST   /api/organizations/{orgID}/members            Register member

  Compliance:
    POST   /api/compliance/reports    Member compliance report
    POST   /api/compliance/charges    Social charges on a gross amount

  Calendar:
    GET    /api/holidays?year=2025    Public holidays for a year

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed input, invalid period
  - 404: Event or member not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/lucascenseur/plannitech/labor"
	"github.com/lucascenseur/plannitech/planning"
	"github.com/lucascenseur/plannitech/store/sqlite"
)

// dateLayout is the wire format for the compliance period bounds.
const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Planning *planning.Service
	Calc     *labor.Calculator
	Calendar labor.HolidayCalendar

	validate *validator.Validate
}

// NewHandler creates a handler around the store, planning service and
// compliance calculator.
func NewHandler(store *sqlite.Store, svc *planning.Service, calc *labor.Calculator, cal labor.HolidayCalendar) *Handler {
	if cal == nil {
		cal = labor.NoHolidays{}
	}
	return &Handler{
		Store:    store,
		Planning: svc,
		Calc:     calc,
		Calendar: cal,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// ListEvents returns all events of an organization, ordered by start time.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	events, err := h.Planning.ListEvents(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEvent returns one event by id.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	id := chi.URLParam(r, "id")

	event, err := h.Planning.GetEvent(r.Context(), orgID, id)
	if errors.Is(err, planning.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}

	writeJSON(w, http.StatusOK, toEventDTO(event))
}

// CreateEvent persists a new event and returns it with the conflicts
// recorded against the organization's existing planning.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	req, ok := h.decodeEventRequest(w, r)
	if !ok {
		return
	}

	event, conflicts, err := h.Planning.CreateEvent(r.Context(), eventFromRequest(orgID, "", req))
	if writePlanningError(w, "Failed to create event", err) {
		return
	}

	writeJSON(w, http.StatusCreated, EventResponse{
		Event:     toEventDTO(event),
		Conflicts: toConflictDTOs(conflicts),
	})
}

// UpdateEvent rewrites an existing event. The event's own previous slot is
// excluded from the conflict check.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	id := chi.URLParam(r, "id")

	req, ok := h.decodeEventRequest(w, r)
	if !ok {
		return
	}

	event, conflicts, err := h.Planning.UpdateEvent(r.Context(), eventFromRequest(orgID, id, req))
	if writePlanningError(w, "Failed to update event", err) {
		return
	}

	writeJSON(w, http.StatusOK, EventResponse{
		Event:     toEventDTO(event),
		Conflicts: toConflictDTOs(conflicts),
	})
}

// DeleteEvent removes an event.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	id := chi.URLParam(r, "id")

	err := h.Planning.DeleteEvent(r.Context(), orgID, id)
	if writePlanningError(w, "Failed to delete event", err) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckConflicts runs conflict detection without persisting anything.
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	req, ok := h.decodeEventRequest(w, r)
	if !ok {
		return
	}

	conflicts, err := h.Planning.CheckConflicts(r.Context(), eventFromRequest(orgID, "", req))
	if writePlanningError(w, "Failed to check conflicts", err) {
		return
	}

	writeJSON(w, http.StatusOK, ConflictCheckResponse{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    toConflictDTOs(conflicts),
	})
}

func (h *Handler) decodeEventRequest(w http.ResponseWriter, r *http.Request) (EventRequest, bool) {
	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return EventRequest{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event", err)
		return EventRequest{}, false
	}
	return req, true
}

func eventFromRequest(orgID, id string, req EventRequest) planning.Event {
	return planning.Event{
		ID:             id,
		OrganizationID: orgID,
		Title:          req.Title,
		Start:          req.Start,
		End:            req.End,
		Location:       req.Location,
		TeamIDs:        req.TeamIDs,
		Status:         planning.Status(req.Status),
	}
}

// writePlanningError maps planning-layer errors onto HTTP statuses. It
// reports whether an error was written.
func writePlanningError(w http.ResponseWriter, message string, err error) bool {
	if err == nil {
		return false
	}

	var vErr *planning.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  "Invalid event",
			Fields: vErr.Fields,
		})
	case errors.Is(err, planning.ErrEventNotFound):
		writeError(w, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, planning.ErrInvalidEvent):
		writeError(w, http.StatusBadRequest, "Invalid event", err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
	return true
}

// =============================================================================
// MEMBER HANDLERS
// =============================================================================

// ListMembers returns the organization's registered team members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	members, err := h.Store.ListMembers(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list members", err)
		return
	}

	dtos := make([]MemberDTO, len(members))
	for i, m := range members {
		dtos[i] = toMemberDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMember registers a team member with the pay classification used by
// compliance reports.
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")

	var req CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid member", err)
		return
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hourly_rate", err)
		return
	}
	if rate.IsNegative() {
		writeError(w, http.StatusBadRequest, "hourly_rate must not be negative", nil)
		return
	}

	member := sqlite.Member{
		ID:             req.ID,
		OrganizationID: orgID,
		Name:           req.Name,
		Email:          req.Email,
		HourlyRate:     rate,
		Intermittent:   req.Intermittent,
	}
	if err := h.Store.SaveMember(r.Context(), member); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save member", err)
		return
	}

	writeJSON(w, http.StatusCreated, toMemberDTO(member))
}

func toMemberDTO(m sqlite.Member) MemberDTO {
	return MemberDTO{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Email:          m.Email,
		HourlyRate:     m.HourlyRate.String(),
		Intermittent:   m.Intermittent,
	}
}

// =============================================================================
// COMPLIANCE HANDLERS
// =============================================================================

// ComplianceReport builds the full labor-law report for a member over a
// period. The member's hourly rate and intermittent status come from the
// member registry.
func (h *Handler) ComplianceReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid report request", err)
		return
	}

	from, err := parseReportDate(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
		return
	}
	to, err := parseReportDate(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
		return
	}

	member, err := h.Store.GetMember(r.Context(), req.MemberID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get member", err)
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "Member not found", nil)
		return
	}

	report, err := h.Calc.Report(member.ID, from, to, member.HourlyRate, member.Intermittent)
	if err != nil {
		if errors.Is(err, labor.ErrInvalidRange) || errors.Is(err, labor.ErrNegativeRate) {
			writeError(w, http.StatusBadRequest, "Invalid period", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to build report", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(report))
}

// SocialCharges calculates employee and employer contributions on a gross
// amount, using the intermittent rates when asked.
func (h *Handler) SocialCharges(w http.ResponseWriter, r *http.Request) {
	var req ChargesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid charges request", err)
		return
	}

	gross, err := decimal.NewFromString(req.GrossPay)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gross_pay", err)
		return
	}

	charges := labor.CalculateSocialCharges(gross, req.Intermittent)
	writeJSON(w, http.StatusOK, ChargesDTO{
		GrossPay:        gross.String(),
		EmployeeCharges: charges.EmployeeCharges.String(),
		EmployerCharges: charges.EmployerCharges.String(),
		NetPay:          charges.NetPay.String(),
		TotalCost:       charges.TotalCost.String(),
	})
}

// parseReportDate anchors a date-only bound at noon. Midnight instants
// would fall in the night-work window and misclassify plain date ranges.
func parseReportDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(12 * time.Hour), nil
}

func toReportDTO(report labor.ComplianceReport) ReportDTO {
	violations := report.Compliance.Violations
	if violations == nil {
		violations = []string{}
	}
	recommendations := report.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}
	charges := report.Charges
	return ReportDTO{
		MemberID:  report.MemberID,
		From:      report.From.Format(dateLayout),
		To:        report.To.Format(dateLayout),
		Breakdown: toBreakdownDTO(report.Breakdown),
		Charges: ChargesDTO{
			GrossPay:        report.Breakdown.TotalPay.String(),
			EmployeeCharges: charges.EmployeeCharges.String(),
			EmployerCharges: charges.EmployerCharges.String(),
			NetPay:          charges.NetPay.String(),
			TotalCost:       charges.TotalCost.String(),
		},
		Compliant:       report.Compliance.Compliant && report.Breakdown.Compliant,
		Violations:      violations,
		Recommendations: recommendations,
		TotalPayDisplay: labor.FormatCurrency(report.Breakdown.TotalPay),
	}
}

// =============================================================================
// HOLIDAY HANDLER
// =============================================================================

// ListHolidays returns the public holidays for a year. The current year is
// used when the query parameter is absent.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	holidays := h.Calendar.Holidays(year)
	dtos := make([]HolidayDTO, len(holidays))
	for i, holiday := range holidays {
		dtos[i] = HolidayDTO{Date: holiday.Date, Name: holiday.Name}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
