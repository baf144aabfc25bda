package domain

import (
	"context"
	"time"
)

// AssigneeType distinguishes the two kinds of people assigned to work an
// event occurrence.
type AssigneeType string

const (
	AssigneePerformer AssigneeType = "performer"
	AssigneeCrew      AssigneeType = "crew"
)

// Valid reports whether t is a known assignee type.
func (t AssigneeType) Valid() bool {
	return t == AssigneePerformer || t == AssigneeCrew
}

// GuestListEntry maps one assignee, for one event occurrence, to their
// personal guest list. At most one active entry exists per
// (event_occurrence_id, assignee_id, assignee_type); the invariant is held
// by the upsert protocol in GuestListService, not by a database constraint.
// swagger:model GuestListEntry
type GuestListEntry struct {
	ID                string       `json:"id"`
	EventOccurrenceID string       `json:"event_occurrence_id"`
	AssigneeType      AssigneeType `json:"assignee_type"`
	AssigneeID        string       `json:"assignee_id"`
	AssigneeName      string       `json:"assignee_name"`
	AssigneeEmail     string       `json:"assignee_email"`
	GuestListLink     string       `json:"guest_list_link"`
	RSVPToken         string       `json:"-"`
	IsActive          bool         `json:"is_active"`
	MaxGuests         *int         `json:"max_guests,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// GuestListFields is the partial-update field set for UpsertByAssignee.
// Nil pointers mean "leave unchanged" on update and "default" on create
// (empty string for text fields, true for IsActive).
type GuestListFields struct {
	AssigneeName  *string
	AssigneeEmail *string
	GuestListLink *string
	RSVPToken     *string
	IsActive      *bool
	MaxGuests     *int
}

// GuestListRepository defines storage for guest-list entries. Callers must
// not use Create directly for provisioning; GuestListService.UpsertByAssignee
// is the sole sanctioned write path.
type GuestListRepository interface {
	Create(ctx context.Context, entry *GuestListEntry) error
	GetByAssignee(ctx context.Context, occurrenceID, assigneeID string, assigneeType AssigneeType) (*GuestListEntry, error)
	ListActiveByAssignee(ctx context.Context, occurrenceID, assigneeID string) ([]*GuestListEntry, error)
	Update(ctx context.Context, id string, fields GuestListFields) error
	ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*GuestListEntry, error)
}

// GuestListService defines the guest-list registry operations.
type GuestListService interface {
	// Lookup returns the entry for the three-part identity key, or ErrNotFound.
	Lookup(ctx context.Context, occurrenceID, assigneeID string, assigneeType AssigneeType) (*GuestListEntry, error)
	// UpsertByAssignee creates the entry if absent, otherwise applies a
	// partial update, and returns the entry id. Sequential calls for the
	// same key never create a second entry.
	UpsertByAssignee(ctx context.Context, occurrenceID, assigneeID string, assigneeType AssigneeType, fields GuestListFields) (string, error)
	// ListByEventOccurrence returns entries ordered by assignee name.
	ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*GuestListEntry, error)
}
