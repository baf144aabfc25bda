package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/delivery/http/middleware"
	"guestpass/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// timeRegex matches a 24-hour "HH:MM" clock time.
var timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AddAssignmentRequest is the request body for POST /occurrences/{occurrenceID}/assignments.
type AddAssignmentRequest struct {
	AssigneeType  string  `json:"assignee_type"`
	AssigneeID    string  `json:"assignee_id"`
	AssigneeName  string  `json:"assignee_name"`
	LegalName     string  `json:"legal_name"`
	AssigneeEmail string  `json:"assignee_email"`
	Phone         string  `json:"phone"`
	Role          string  `json:"role"`
	SetTime       string  `json:"set_time"`
	PaymentAmount float64 `json:"payment_amount"`
}

// Validate implements Validator.
func (a AddAssignmentRequest) Validate() []string {
	var errs []string
	if !domain.AssigneeType(a.AssigneeType).Valid() {
		errs = append(errs, "assignee_type must be performer or crew")
	}
	if a.AssigneeID == "" {
		errs = append(errs, "assignee_id is required")
	}
	if a.AssigneeName == "" {
		errs = append(errs, "assignee_name is required")
	}
	if a.AssigneeEmail != "" && !emailRegex.MatchString(strings.TrimSpace(a.AssigneeEmail)) {
		errs = append(errs, "assignee_email must be a valid email address")
	}
	if a.SetTime != "" && !timeRegex.MatchString(a.SetTime) {
		errs = append(errs, "set_time must be 24-hour HH:MM")
	}
	if a.PaymentAmount < 0 {
		errs = append(errs, "payment_amount must be non-negative")
	}
	return errs
}

// AddAssignmentSuccessResponse is the success response envelope for POST /occurrences/{occurrenceID}/assignments (201).
type AddAssignmentSuccessResponse struct {
	Data  *domain.Assignment `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type RosterController struct {
	Logger  *slog.Logger
	Service domain.RosterService
}

func NewRosterController(logger *slog.Logger, svc domain.RosterService) *RosterController {
	return &RosterController{
		Logger:  logger,
		Service: svc,
	}
}

// AddAssignment godoc
// @Summary Add a performer or crew assignment
// @Description Books an assignee onto an event occurrence and provisions their guest list. The RSVP link is set on the returned assignment; the guest-list link may still be empty and arrives later via the staffing notification round-trip.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Param body body AddAssignmentRequest true "Assignment data"
// @Success 201 {object} controllers.AddAssignmentSuccessResponse "data contains the created assignment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown occurrence)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/assignments [post]
func (c *RosterController) AddAssignment(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	var req AddAssignmentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	_, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	assignment, err := c.Service.AddAssignment(r.Context(), occurrenceID, domain.AssigneeType(req.AssigneeType), domain.NewAssignmentInput{
		AssigneeID:    req.AssigneeID,
		AssigneeName:  req.AssigneeName,
		LegalName:     req.LegalName,
		AssigneeEmail: req.AssigneeEmail,
		Phone:         req.Phone,
		Role:          req.Role,
		SetTime:       req.SetTime,
		PaymentAmount: req.PaymentAmount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event occurrence not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, assignment)
}

// ListAssignmentsSuccessResponse is the success response envelope for GET /occurrences/{occurrenceID}/assignments (200).
type ListAssignmentsSuccessResponse struct {
	Data  []*domain.Assignment `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListAssignments godoc
// @Summary List assignments for an event occurrence
// @Description Returns all assignments for the occurrence in booking order. Requires authentication.
// @Tags roster
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Success 200 {object} controllers.ListAssignmentsSuccessResponse "data is an array of assignments"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/assignments [get]
func (c *RosterController) ListAssignments(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	assignments, err := c.Service.ListAssignments(r.Context(), occurrenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if assignments == nil {
		assignments = []*domain.Assignment{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, assignments)
}

// UpdateAssignmentStatusRequest is the request body for PATCH /assignments/{assignmentID}/status.
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateAssignmentStatusRequest) Validate() []string {
	if !domain.AssignmentStatus(u.Status).Valid() {
		return []string{"status must be one of pending, confirmed, completed, cancelled"}
	}
	return nil
}

// UpdateAssignmentStatusSuccessResponse is the success response envelope for PATCH /assignments/{assignmentID}/status (200).
type UpdateAssignmentStatusSuccessResponse struct {
	Data  *domain.Assignment `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// UpdateAssignmentStatus godoc
// @Summary Update an assignment's status
// @Description Moves an assignment through its lifecycle (pending, confirmed, completed, cancelled). Requires authentication.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentID path string true "Assignment ID (UUID)"
// @Param body body UpdateAssignmentStatusRequest true "New status"
// @Success 200 {object} controllers.UpdateAssignmentStatusSuccessResponse "data contains the updated assignment"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /assignments/{assignmentID}/status [patch]
func (c *RosterController) UpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	assignmentID := r.PathValue("assignmentID")
	if assignmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing assignmentID")
		return
	}
	var req UpdateAssignmentStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	assignment, err := c.Service.UpdateAssignmentStatus(r.Context(), assignmentID, domain.AssignmentStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "assignment not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, assignment)
}

// RemoveAssignmentResponse is the data payload for DELETE /assignments/{assignmentID} (200).
type RemoveAssignmentResponse struct {
	Status string `json:"status"`
}

// RemoveAssignmentSuccessResponse is the success response envelope for DELETE /assignments/{assignmentID} (200).
type RemoveAssignmentSuccessResponse struct {
	Data  RemoveAssignmentResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// RemoveAssignment godoc
// @Summary Remove an assignment
// @Description Deletes the assignment. The assignee's guest-list entry and any submitted RSVPs are intentionally left in place. Requires authentication.
// @Tags roster
// @Produce json
// @Security BearerAuth
// @Param assignmentID path string true "Assignment ID (UUID)"
// @Success 200 {object} controllers.RemoveAssignmentSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /assignments/{assignmentID} [delete]
func (c *RosterController) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := r.PathValue("assignmentID")
	if assignmentID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing assignmentID")
		return
	}
	if err := c.Service.RemoveAssignment(r.Context(), assignmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "assignment not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RemoveAssignmentResponse{Status: "removed"})
}

// BackfillGuestListLinkRequest is the request body for POST /occurrences/{occurrenceID}/guest-list-links.
// Used when the staffing platform's webhook response was lost and the link
// has to be re-entered by hand.
type BackfillGuestListLinkRequest struct {
	AssigneeID    string `json:"assignee_id"`
	AssigneeType  string `json:"assignee_type"`
	AssigneeEmail string `json:"assignee_email"`
	GuestListLink string `json:"guest_list_link"`
}

// Validate implements Validator.
func (b BackfillGuestListLinkRequest) Validate() []string {
	var errs []string
	if b.AssigneeID == "" {
		errs = append(errs, "assignee_id is required")
	}
	if !domain.AssigneeType(b.AssigneeType).Valid() {
		errs = append(errs, "assignee_type must be performer or crew")
	}
	if strings.TrimSpace(b.GuestListLink) == "" {
		errs = append(errs, "guest_list_link is required")
	}
	return errs
}

// BackfillGuestListLinkResponse is the data payload for POST /occurrences/{occurrenceID}/guest-list-links (200).
type BackfillGuestListLinkResponse struct {
	Status string `json:"status"`
}

// BackfillGuestListLinkSuccessResponse is the success response envelope for POST /occurrences/{occurrenceID}/guest-list-links (200).
type BackfillGuestListLinkSuccessResponse struct {
	Data  BackfillGuestListLinkResponse `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

// BackfillGuestListLink godoc
// @Summary Manually backfill a guest-list link
// @Description Writes an externally issued guest-list link onto the assignee's registry entry and matching assignments. Idempotent; safe to repeat. Requires authentication.
// @Tags roster
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Param body body BackfillGuestListLinkRequest true "Assignee identity and link"
// @Success 200 {object} controllers.BackfillGuestListLinkSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (no registry entry)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/guest-list-links [post]
func (c *RosterController) BackfillGuestListLink(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	var req BackfillGuestListLinkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	err := c.Service.ReconcileGuestListLink(r.Context(), occurrenceID, req.AssigneeID, domain.AssigneeType(req.AssigneeType), req.AssigneeEmail, req.GuestListLink)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "guest list entry not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BackfillGuestListLinkResponse{Status: "reconciled"})
}
