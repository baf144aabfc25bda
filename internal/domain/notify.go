package domain

import "context"

// AssignmentNotice is the normalized payload sent to the external
// staffing-notification endpoint. TimeSlot uses a 12-hour clock
// ("9:00 PM") and EventDate is "Month Day" ("March 14").
type AssignmentNotice struct {
	LegalName     string  `json:"legalName"`
	DisplayName   string  `json:"displayName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	TimeSlot      string  `json:"timeSlot"`
	EventDate     string  `json:"eventDate"`
	EventName     string  `json:"eventName"`
	Venue         string  `json:"venue"`
	PaymentAmount float64 `json:"paymentAmount"`
	Role          string  `json:"role,omitempty"`
}

// NotifyResult is the useful part of the endpoint's response. GuestListLink
// is "" when the response omitted it or had an unexpected shape; that is a
// valid outcome.
type NotifyResult struct {
	GuestListLink string
}

// StaffNotifier is the port to the external staffing-notification system.
// Callers must treat any error as non-fatal: the assignment and guest-list
// entry exist before this call and remain valid regardless of its outcome.
type StaffNotifier interface {
	NotifyAssignment(ctx context.Context, notice *AssignmentNotice) (*NotifyResult, error)
}
