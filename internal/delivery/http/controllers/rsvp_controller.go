package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/domain"
)

// RSVPController serves the public RSVP surface: guests reach it through
// shared links and carry no Bearer token.
type RSVPController struct {
	Logger  *slog.Logger
	Service domain.CheckInService
}

func NewRSVPController(logger *slog.Logger, svc domain.CheckInService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitRSVPRequest is the request body for POST /rsvp/{occurrenceID}/{assigneeID}/{token}.
type SubmitRSVPRequest struct {
	GuestName    string `json:"guest_name"`
	GuestContact string `json:"guest_contact"`
	PartySize    int    `json:"party_size"`
}

// Validate implements Validator.
func (s SubmitRSVPRequest) Validate() []string {
	var errs []string
	if s.GuestName == "" {
		errs = append(errs, "guest_name is required")
	}
	if s.PartySize < 1 {
		errs = append(errs, "party_size must be at least 1")
	}
	return errs
}

// SubmitRSVPSuccessResponse is the success response envelope for POST /rsvp/{occurrenceID}/{assigneeID}/{token} (201).
type SubmitRSVPSuccessResponse struct {
	Data  *domain.RSVPRecord `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SubmitRSVP godoc
// @Summary Submit an RSVP from a shared link
// @Description Public endpoint. Validates the link's token against the assignee's active guest list, records the RSVP, and returns the record with its admission code. The QR image is fetched separately from the qr endpoint.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Param assigneeID path string true "Assignee ID"
// @Param token path string true "RSVP token from the shared link"
// @Param body body SubmitRSVPRequest true "Guest details"
// @Success 201 {object} controllers.SubmitRSVPSuccessResponse "data contains the RSVP record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (party size or guest allowance)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (unknown or inactive token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvp/{occurrenceID}/{assigneeID}/{token} [post]
func (c *RSVPController) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	assigneeID := r.PathValue("assigneeID")
	token := r.PathValue("token")
	if occurrenceID == "" || assigneeID == "" || token == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID, assigneeID, or token")
		return
	}
	var req SubmitRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rec, err := c.Service.SubmitRSVP(r.Context(), domain.SubmitRSVPInput{
		EventOccurrenceID: occurrenceID,
		AssigneeID:        assigneeID,
		RSVPToken:         token,
		GuestName:         req.GuestName,
		GuestContact:      req.GuestContact,
		PartySize:         req.PartySize,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or inactive rsvp link")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, rec)
}

// GetAdmissionQR godoc
// @Summary Get the admission QR image for an RSVP
// @Description Public endpoint. Returns the stored QR PNG for the RSVP record. Guests land here from the confirmation page to save their pass.
// @Tags rsvp
// @Produce png
// @Param rsvpID path string true "RSVP record ID (UUID)"
// @Success 200 {file} binary "PNG image of the admission QR code"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown record or no image)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps/{rsvpID}/qr [get]
func (c *RSVPController) GetAdmissionQR(w http.ResponseWriter, r *http.Request) {
	rsvpID := r.PathValue("rsvpID")
	if rsvpID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing rsvpID")
		return
	}
	rec, err := c.Service.GetRSVP(r.Context(), rsvpID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "rsvp record not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if len(rec.AdmissionImage) == 0 {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "no admission image for this record")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(rec.AdmissionImage)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rec.AdmissionImage)
}
