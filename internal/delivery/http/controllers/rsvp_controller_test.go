package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"guestpass/internal/domain"
)

func TestRSVPController_SubmitRSVP_Success(t *testing.T) {
	svc := &mockCheckInService{
		rsvp: &domain.RSVPRecord{ID: "rsvp-1", AdmissionCode: "occ-1:rsvp-1", PartySize: 3},
	}
	ctrl := NewRSVPController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/rsvp/occ-1/dj-1/tok-1",
		strings.NewReader(`{"guest_name":"Jane Guest","party_size":3}`))
	req.SetPathValue("occurrenceID", "occ-1")
	req.SetPathValue("assigneeID", "dj-1")
	req.SetPathValue("token", "tok-1")
	w := httptest.NewRecorder()
	ctrl.SubmitRSVP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"admission_code":"occ-1:rsvp-1"`) {
		t.Fatalf("expected admission code in body, got %s", w.Body.String())
	}
}

func TestRSVPController_SubmitRSVP_InvalidToken(t *testing.T) {
	ctrl := NewRSVPController(testLogger(), &mockCheckInService{err: domain.ErrInvalidToken})

	req := httptest.NewRequest(http.MethodPost, "/rsvp/occ-1/dj-1/tok-wrong",
		strings.NewReader(`{"guest_name":"Jane Guest","party_size":1}`))
	req.SetPathValue("occurrenceID", "occ-1")
	req.SetPathValue("assigneeID", "dj-1")
	req.SetPathValue("token", "tok-wrong")
	w := httptest.NewRecorder()
	ctrl.SubmitRSVP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestRSVPController_SubmitRSVP_BadPartySize(t *testing.T) {
	ctrl := NewRSVPController(testLogger(), &mockCheckInService{})

	req := httptest.NewRequest(http.MethodPost, "/rsvp/occ-1/dj-1/tok-1",
		strings.NewReader(`{"guest_name":"Jane Guest","party_size":0}`))
	req.SetPathValue("occurrenceID", "occ-1")
	req.SetPathValue("assigneeID", "dj-1")
	req.SetPathValue("token", "tok-1")
	w := httptest.NewRecorder()
	ctrl.SubmitRSVP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestRSVPController_GetAdmissionQR_Success(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}
	svc := &mockCheckInService{rsvp: &domain.RSVPRecord{ID: "rsvp-1", AdmissionImage: png}}
	ctrl := NewRSVPController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/rsvps/rsvp-1/qr", nil)
	req.SetPathValue("rsvpID", "rsvp-1")
	w := httptest.NewRecorder()
	ctrl.GetAdmissionQR(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected image/png, got %q", ct)
	}
	if w.Body.Len() != len(png) {
		t.Fatalf("expected %d body bytes, got %d", len(png), w.Body.Len())
	}
}

func TestRSVPController_GetAdmissionQR_NotFound(t *testing.T) {
	ctrl := NewRSVPController(testLogger(), &mockCheckInService{err: domain.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/rsvps/rsvp-404/qr", nil)
	req.SetPathValue("rsvpID", "rsvp-404")
	w := httptest.NewRecorder()
	ctrl.GetAdmissionQR(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRSVPController_GetAdmissionQR_NoImage(t *testing.T) {
	// Image encoding can fail at submit time; the record then has a code but no PNG.
	ctrl := NewRSVPController(testLogger(), &mockCheckInService{rsvp: &domain.RSVPRecord{ID: "rsvp-1"}})

	req := httptest.NewRequest(http.MethodGet, "/rsvps/rsvp-1/qr", nil)
	req.SetPathValue("rsvpID", "rsvp-1")
	w := httptest.NewRecorder()
	ctrl.GetAdmissionQR(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
