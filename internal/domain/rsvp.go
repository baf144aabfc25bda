package domain

import (
	"context"
	"time"
)

// RSVPRecord is one guest's reply on an assignee's guest list. The
// admission code is derived once, after the record id exists, and is the
// durable identifier embedded in the QR image; it is never recomputed.
// Between the insert and the admission update the record is briefly
// visible with an empty code.
// swagger:model RSVPRecord
type RSVPRecord struct {
	ID                string       `json:"id"`
	GuestListEntryID  string       `json:"guest_list_entry_id"`
	EventOccurrenceID string       `json:"event_occurrence_id"`
	AssigneeType      AssigneeType `json:"assignee_type"`
	AssigneeID        string       `json:"assignee_id"`
	GuestName         string       `json:"guest_name"`
	GuestContact      string       `json:"guest_contact"`
	PartySize         int          `json:"party_size"`
	AdmissionCode     string       `json:"admission_code"`
	AdmissionImage    []byte       `json:"-"`
	CheckedIn         bool         `json:"checked_in"`
	CheckedInAt       *time.Time   `json:"checked_in_at,omitempty"`
	CheckedInBy       string       `json:"checked_in_by,omitempty"`
	RSVPToken         string       `json:"-"`
	CreatedAt         time.Time    `json:"created_at"`
}

// CheckInRecord is one row of the append-only door ledger. Every scan
// appends a row, including re-entries; rows are never edited or deleted.
// swagger:model CheckInRecord
type CheckInRecord struct {
	ID                string    `json:"id"`
	GuestListEntryID  string    `json:"guest_list_entry_id"`
	EventOccurrenceID string    `json:"event_occurrence_id"`
	GuestName         string    `json:"guest_name"`
	PartySize         int       `json:"party_size"`
	CheckedInAt       time.Time `json:"checked_in_at"`
	CheckedInBy       string    `json:"checked_in_by"`
}

// AssigneeCheckInStats is the per-assignee slice of CheckInStats.
type AssigneeCheckInStats struct {
	AssigneeID   string       `json:"assignee_id"`
	AssigneeType AssigneeType `json:"assignee_type"`
	TotalRSVPs   int          `json:"total_rsvps"`
	CheckedIn    int          `json:"checked_in"`
	TotalGuests  int          `json:"total_guests"`
}

// CheckInStats is the on-read aggregation over an occurrence's RSVP set.
// swagger:model CheckInStats
type CheckInStats struct {
	TotalRSVPs   int                     `json:"total_rsvps"`
	CheckedIn    int                     `json:"checked_in"`
	NotCheckedIn int                     `json:"not_checked_in"`
	TotalGuests  int                     `json:"total_guests"`
	PerAssignee  []*AssigneeCheckInStats `json:"per_assignee"`
}

// SubmitRSVPInput holds a guest submission from a shared RSVP link.
type SubmitRSVPInput struct {
	EventOccurrenceID string
	AssigneeID        string
	RSVPToken         string
	GuestName         string
	GuestContact      string
	PartySize         int
}

// CheckInResult bundles the appended ledger row with the RSVP record it
// resulted from. ReEntry is true when the code had already been scanned;
// that is a valid outcome, not an error.
type CheckInResult struct {
	Record  *CheckInRecord `json:"record"`
	RSVP    *RSVPRecord    `json:"rsvp"`
	ReEntry bool           `json:"re_entry"`
}

// RSVPRepository defines storage for RSVP records.
type RSVPRepository interface {
	Create(ctx context.Context, rec *RSVPRecord) error
	// SetAdmission persists the derived admission code and QR image. Called
	// exactly once per record, immediately after Create.
	SetAdmission(ctx context.Context, id, code string, image []byte) error
	GetByID(ctx context.Context, id string) (*RSVPRecord, error)
	GetByAdmissionCode(ctx context.Context, code string) (*RSVPRecord, error)
	// ListByEventOccurrence returns records newest-first.
	ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*RSVPRecord, error)
	SetCheckedIn(ctx context.Context, id string, at time.Time, by string) error
	ClearCheckedIn(ctx context.Context, id string) error
}

// CheckInLedgerRepository defines the append-only scan ledger.
type CheckInLedgerRepository interface {
	Append(ctx context.Context, rec *CheckInRecord) error
	ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*CheckInRecord, error)
}

// CheckInService converts RSVP submissions into attendance records and
// exposes real-time statistics per event occurrence.
type CheckInService interface {
	SubmitRSVP(ctx context.Context, in SubmitRSVPInput) (*RSVPRecord, error)
	CheckIn(ctx context.Context, admissionCode, checkedInBy string, partySizeOverride int) (*CheckInResult, error)
	CheckOut(ctx context.Context, rsvpRecordID, by string) error
	Stats(ctx context.Context, occurrenceID string) (*CheckInStats, error)
	GetRSVP(ctx context.Context, rsvpRecordID string) (*RSVPRecord, error)
	ListCheckIns(ctx context.Context, occurrenceID string) ([]*CheckInRecord, error)
	// Subscribe registers fn for the occurrence. fn receives the full
	// newest-first RSVP set immediately and again after every change. The
	// returned function releases the watcher.
	Subscribe(occurrenceID string, fn func([]*RSVPRecord)) (unsubscribe func())
}
