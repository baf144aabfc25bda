package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"guestpass/internal/delivery/http/helpers"
	"guestpass/internal/delivery/http/middleware"
	"guestpass/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockCheckInService struct {
	result  *domain.CheckInResult
	rsvp    *domain.RSVPRecord
	stats   *domain.CheckInStats
	records []*domain.CheckInRecord
	err     error

	checkOutCalled bool
}

func (m *mockCheckInService) SubmitRSVP(ctx context.Context, in domain.SubmitRSVPInput) (*domain.RSVPRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rsvp, nil
}

func (m *mockCheckInService) CheckIn(ctx context.Context, admissionCode, checkedInBy string, partySizeOverride int) (*domain.CheckInResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockCheckInService) CheckOut(ctx context.Context, rsvpRecordID, by string) error {
	m.checkOutCalled = true
	return m.err
}

func (m *mockCheckInService) Stats(ctx context.Context, occurrenceID string) (*domain.CheckInStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func (m *mockCheckInService) GetRSVP(ctx context.Context, rsvpRecordID string) (*domain.RSVPRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rsvp, nil
}

func (m *mockCheckInService) ListCheckIns(ctx context.Context, occurrenceID string) ([]*domain.CheckInRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

func (m *mockCheckInService) Subscribe(occurrenceID string, fn func([]*domain.RSVPRecord)) func() {
	if m.rsvp != nil {
		fn([]*domain.RSVPRecord{m.rsvp})
	} else {
		fn([]*domain.RSVPRecord{})
	}
	return func() {}
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.SetStaffID(req.Context(), "staff-1"))
}

func TestCheckInController_CheckIn_Unauthorized(t *testing.T) {
	ctrl := NewCheckInController(testLogger(), &mockCheckInService{})

	req := httptest.NewRequest(http.MethodPost, "/check-ins", strings.NewReader(`{"admission_code":"occ-1:rsvp-1"}`))
	w := httptest.NewRecorder()
	ctrl.CheckIn(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestCheckInController_CheckIn_Success(t *testing.T) {
	svc := &mockCheckInService{
		result: &domain.CheckInResult{
			Record:  &domain.CheckInRecord{ID: "ci-1", PartySize: 3},
			RSVP:    &domain.RSVPRecord{ID: "rsvp-1", CheckedIn: true},
			ReEntry: false,
		},
	}
	ctrl := NewCheckInController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/check-ins", strings.NewReader(`{"admission_code":"occ-1:rsvp-1"}`))
	w := httptest.NewRecorder()
	ctrl.CheckIn(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestCheckInController_CheckIn_UnknownCode(t *testing.T) {
	ctrl := NewCheckInController(testLogger(), &mockCheckInService{err: domain.ErrNotFound})

	req := authedRequest(http.MethodPost, "/check-ins", strings.NewReader(`{"admission_code":"occ-1:rsvp-404"}`))
	w := httptest.NewRecorder()
	ctrl.CheckIn(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestCheckInController_CheckIn_MissingCode(t *testing.T) {
	ctrl := NewCheckInController(testLogger(), &mockCheckInService{})

	req := authedRequest(http.MethodPost, "/check-ins", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	ctrl.CheckIn(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestCheckInController_CheckOut_Success(t *testing.T) {
	svc := &mockCheckInService{}
	ctrl := NewCheckInController(testLogger(), svc)

	req := authedRequest(http.MethodPost, "/rsvps/rsvp-1/check-out", nil)
	req.SetPathValue("rsvpID", "rsvp-1")
	w := httptest.NewRecorder()
	ctrl.CheckOut(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !svc.checkOutCalled {
		t.Fatal("expected CheckOut to be called")
	}
}

func TestCheckInController_GetStats_Success(t *testing.T) {
	svc := &mockCheckInService{
		stats: &domain.CheckInStats{TotalRSVPs: 1, CheckedIn: 1, TotalGuests: 3, PerAssignee: []*domain.AssigneeCheckInStats{}},
	}
	ctrl := NewCheckInController(testLogger(), svc)

	req := authedRequest(http.MethodGet, "/occurrences/occ-1/check-in-stats", nil)
	req.SetPathValue("occurrenceID", "occ-1")
	w := httptest.NewRecorder()
	ctrl.GetStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), `"total_guests":3`) {
		t.Fatalf("expected total_guests in body, got %s", w.Body.String())
	}
}

func TestCheckInController_StreamRSVPs_DeliversSnapshot(t *testing.T) {
	svc := &mockCheckInService{rsvp: &domain.RSVPRecord{ID: "rsvp-1", GuestName: "Jane Guest"}}
	ctrl := NewCheckInController(testLogger(), svc)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/occurrences/occ-1/stream", nil).WithContext(ctx)
	req.SetPathValue("occurrenceID", "occ-1")
	w := httptest.NewRecorder()

	ctrl.StreamRSVPs(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected text/event-stream, got %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "event: rsvps") {
		t.Fatalf("expected an rsvps event, got %q", body)
	}
	if !strings.Contains(body, "Jane Guest") {
		t.Fatalf("expected snapshot payload in stream, got %q", body)
	}
}
