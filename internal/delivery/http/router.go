package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestpass/internal/delivery/http/controllers"
	"guestpass/internal/delivery/http/middleware"
	"guestpass/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Staff routes require a Bearer token from the booking platform; the rsvp
// routes are public because guests reach them through shared links.
func NewRouter(
	rosterController *controllers.RosterController,
	guestListController *controllers.GuestListController,
	rsvpController *controllers.RSVPController,
	checkInController *controllers.CheckInController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Roster (staff)
	mux.HandleFunc("POST /occurrences/{occurrenceID}/assignments", auth(rosterController.AddAssignment))
	mux.HandleFunc("GET /occurrences/{occurrenceID}/assignments", auth(rosterController.ListAssignments))
	mux.HandleFunc("PATCH /assignments/{assignmentID}/status", auth(rosterController.UpdateAssignmentStatus))
	mux.HandleFunc("DELETE /assignments/{assignmentID}", auth(rosterController.RemoveAssignment))
	mux.HandleFunc("POST /occurrences/{occurrenceID}/guest-list-links", auth(rosterController.BackfillGuestListLink))

	// Guest lists (staff)
	mux.HandleFunc("GET /occurrences/{occurrenceID}/guest-lists", auth(guestListController.ListGuestLists))

	// RSVP (public)
	mux.HandleFunc("POST /rsvp/{occurrenceID}/{assigneeID}/{token}", rsvpController.SubmitRSVP)
	mux.HandleFunc("GET /rsvps/{rsvpID}/qr", rsvpController.GetAdmissionQR)

	// Door (staff)
	mux.HandleFunc("POST /check-ins", auth(checkInController.CheckIn))
	mux.HandleFunc("POST /rsvps/{rsvpID}/check-out", auth(checkInController.CheckOut))
	mux.HandleFunc("GET /occurrences/{occurrenceID}/check-in-stats", auth(checkInController.GetStats))
	mux.HandleFunc("GET /occurrences/{occurrenceID}/check-ins", auth(checkInController.ListCheckIns))
	mux.HandleFunc("GET /occurrences/{occurrenceID}/stream", auth(checkInController.StreamRSVPs))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
