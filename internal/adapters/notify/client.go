package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"guestpass/internal/domain"
)

// staffingWebhook posts assignment notices to the external
// staffing-notification endpoint. One request per notice, no retries; the
// orchestrator treats every error here as non-fatal.
type staffingWebhook struct {
	client   *http.Client
	endpoint string
}

// NewStaffingWebhook returns a StaffNotifier that posts to endpoint. An
// empty endpoint disables delivery: notices are dropped without error and
// no link is ever returned. The timeout bounds the whole round-trip; on
// expiry the call fails like any other transport error.
func NewStaffingWebhook(client *http.Client, endpoint string, timeout time.Duration) domain.StaffNotifier {
	if client == nil {
		client = &http.Client{}
	}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &staffingWebhook{client: client, endpoint: endpoint}
}

// notifyResponse is the expected response body. Everything except
// guestListLink is ignored; an unexpected shape decodes to the zero value
// and counts as "no link returned".
type notifyResponse struct {
	GuestListLink string `json:"guestListLink"`
}

func (w *staffingWebhook) NotifyAssignment(ctx context.Context, notice *domain.AssignmentNotice) (*domain.NotifyResult, error) {
	if w.endpoint == "" {
		return &domain.NotifyResult{}, nil
	}
	body, err := json.Marshal(notice)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notice: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach staffing endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("staffing endpoint returned status: %d", resp.StatusCode)
	}

	var data notifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		// A 2xx with an undecodable body is still a delivered notification.
		return &domain.NotifyResult{}, nil
	}
	return &domain.NotifyResult{GuestListLink: data.GuestListLink}, nil
}

// NormalizeTimeSlot reformats a 24-hour "HH:MM" time to a 12-hour clock
// ("21:30" -> "9:30 PM"). Unparseable input is passed through unchanged.
func NormalizeTimeSlot(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}

// NormalizeEventDate reformats a date as "Month Day" ("March 14").
func NormalizeEventDate(d time.Time) string {
	return d.Format("January 2")
}
