package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/delivery/http/middleware"
	"guestpass/internal/domain"
)

type CheckInController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, svc domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:  logger,
		Service: svc,
	}
}

// CheckInRequest is the request body for POST /check-ins. PartySize overrides
// the RSVP's party size for the ledger row when more or fewer guests actually
// arrive; 0 keeps the RSVP's value.
type CheckInRequest struct {
	AdmissionCode string `json:"admission_code"`
	PartySize     int    `json:"party_size"`
}

// Validate implements Validator.
func (c CheckInRequest) Validate() []string {
	var errs []string
	if c.AdmissionCode == "" {
		errs = append(errs, "admission_code is required")
	}
	if c.PartySize < 0 {
		errs = append(errs, "party_size must be non-negative")
	}
	return errs
}

// CheckInSuccessResponse is the success response envelope for POST /check-ins (200).
type CheckInSuccessResponse struct {
	Data  *domain.CheckInResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// CheckIn godoc
// @Summary Check a guest in by admission code
// @Description Resolves a scanned admission code and appends a row to the door ledger. A code that was already scanned still succeeds and is flagged re_entry. Requires authentication.
// @Tags check-ins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CheckInRequest true "Scanned code and optional party-size override"
// @Success 200 {object} controllers.CheckInSuccessResponse "data contains the ledger row, the RSVP record, and the re_entry flag"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed code)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown code)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /check-ins [post]
func (c *CheckInController) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	staffID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := c.Service.CheckIn(r.Context(), req.AdmissionCode, staffID, req.PartySize)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "admission code not found")
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
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// CheckOutResponse is the data payload for POST /rsvps/{rsvpID}/check-out (200).
type CheckOutResponse struct {
	Status string `json:"status"`
}

// CheckOutSuccessResponse is the success response envelope for POST /rsvps/{rsvpID}/check-out (200).
type CheckOutSuccessResponse struct {
	Data  CheckOutResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CheckOut godoc
// @Summary Undo a mis-scanned check-in
// @Description Flips the RSVP record back to not checked in. The ledger keeps the original scan rows. Requires authentication.
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Param rsvpID path string true "RSVP record ID (UUID)"
// @Success 200 {object} controllers.CheckOutSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps/{rsvpID}/check-out [post]
func (c *CheckInController) CheckOut(w http.ResponseWriter, r *http.Request) {
	rsvpID := r.PathValue("rsvpID")
	if rsvpID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing rsvpID")
		return
	}
	staffID, ok := middleware.StaffIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.CheckOut(r.Context(), rsvpID, staffID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "rsvp record not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CheckOutResponse{Status: "checked_out"})
}

// GetStatsSuccessResponse is the success response envelope for GET /occurrences/{occurrenceID}/check-in-stats (200).
type GetStatsSuccessResponse struct {
	Data  *domain.CheckInStats `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetStats godoc
// @Summary Get check-in statistics for an event occurrence
// @Description Returns totals and a per-assignee breakdown, aggregated from the current RSVP set at read time. Requires authentication.
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Success 200 {object} controllers.GetStatsSuccessResponse "data contains aggregate and per-assignee stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/check-in-stats [get]
func (c *CheckInController) GetStats(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	stats, err := c.Service.Stats(r.Context(), occurrenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// ListCheckInsSuccessResponse is the success response envelope for GET /occurrences/{occurrenceID}/check-ins (200).
type ListCheckInsSuccessResponse struct {
	Data  []*domain.CheckInRecord `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListCheckIns godoc
// @Summary List the door ledger for an event occurrence
// @Description Returns every scan row for the occurrence, newest first, including re-entries. Requires authentication.
// @Tags check-ins
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Success 200 {object} controllers.ListCheckInsSuccessResponse "data is an array of ledger rows"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/check-ins [get]
func (c *CheckInController) ListCheckIns(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	records, err := c.Service.ListCheckIns(r.Context(), occurrenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, records)
}

// StreamRSVPs godoc
// @Summary Stream live RSVP snapshots for an event occurrence
// @Description Server-sent events stream. Each event carries the full newest-first RSVP set as JSON; the first event arrives immediately, later ones after every submission, check-in, or check-out. The door dashboard diffs snapshots client-side. Requires authentication.
// @Tags check-ins
// @Produce text/event-stream
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Success 200 {string} string "SSE stream of RSVP snapshots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/stream [get]
func (c *CheckInController) StreamRSVPs(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Watchers fire synchronously from mutating requests, so hand snapshots
	// off through a buffered channel and write them from this goroutine only.
	// A slow client drops intermediate snapshots; the next one carries the
	// full state anyway.
	snapshots := make(chan []*domain.RSVPRecord, 8)
	unsubscribe := c.Service.Subscribe(occurrenceID, func(records []*domain.RSVPRecord) {
		select {
		case snapshots <- records:
		default:
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case records := <-snapshots:
			payload, err := json.Marshal(records)
			if err != nil {
				c.Logger.ErrorContext(r.Context(), "snapshot marshal failed", "event_occurrence_id", occurrenceID, "err", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: rsvps\ndata: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
