package controllers

import (
	"log/slog"
	"net/http"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/domain"
)

type GuestListController struct {
	Logger  *slog.Logger
	Service domain.GuestListService
}

func NewGuestListController(logger *slog.Logger, svc domain.GuestListService) *GuestListController {
	return &GuestListController{
		Logger:  logger,
		Service: svc,
	}
}

// ListGuestListsSuccessResponse is the success response envelope for GET /occurrences/{occurrenceID}/guest-lists (200).
type ListGuestListsSuccessResponse struct {
	Data  []*domain.GuestListEntry `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// ListGuestLists godoc
// @Summary List guest-list entries for an event occurrence
// @Description Returns every registry entry for the occurrence, active and inactive, ordered by assignee name. RSVP tokens are never included. Requires authentication.
// @Tags guest-lists
// @Produce json
// @Security BearerAuth
// @Param occurrenceID path string true "Event occurrence ID (UUID)"
// @Success 200 {object} controllers.ListGuestListsSuccessResponse "data is an array of guest-list entries"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /occurrences/{occurrenceID}/guest-lists [get]
func (c *GuestListController) ListGuestLists(w http.ResponseWriter, r *http.Request) {
	occurrenceID := r.PathValue("occurrenceID")
	if occurrenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing occurrenceID")
		return
	}
	entries, err := c.Service.ListByEventOccurrence(r.Context(), occurrenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if entries == nil {
		entries = []*domain.GuestListEntry{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}
