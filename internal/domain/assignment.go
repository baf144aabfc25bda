package domain

import (
	"context"
	"time"
)

// AssignmentStatus is the lifecycle state of a staffing assignment.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// Valid reports whether s is a known assignment status.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentConfirmed, AssignmentCompleted, AssignmentCancelled:
		return true
	}
	return false
}

// Assignment is a performer or crew member booked to work an event
// occurrence. GuestListLink and RSVPLink are eventually consistent: the
// rsvp link is set at creation, the guest-list link may arrive later via
// the external notification round-trip or a manual backfill, and is ""
// until then.
// swagger:model Assignment
type Assignment struct {
	ID                string           `json:"id"`
	EventOccurrenceID string           `json:"event_occurrence_id"`
	AssigneeType      AssigneeType     `json:"assignee_type"`
	AssigneeID        string           `json:"assignee_id"`
	AssigneeName      string           `json:"assignee_name"`
	LegalName         string           `json:"legal_name"`
	AssigneeEmail     string           `json:"assignee_email"`
	Phone             string           `json:"phone"`
	Role              string           `json:"role"`     // crew role, e.g. "door", "sound"
	SetTime           string           `json:"set_time"` // performer set start, 24-hour "HH:MM"
	PaymentAmount     float64          `json:"payment_amount"`
	Status            AssignmentStatus `json:"status"`
	GuestListLink     string           `json:"guest_list_link"`
	RSVPLink          string           `json:"rsvp_link"`
	AssignedAt        time.Time        `json:"assigned_at"`
}

// NewAssignmentInput holds the caller-supplied fields for AddAssignment.
type NewAssignmentInput struct {
	AssigneeID    string
	AssigneeName  string
	LegalName     string
	AssigneeEmail string
	Phone         string
	Role          string
	SetTime       string
	PaymentAmount float64
}

// AssignmentRepository defines storage for assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id string) (*Assignment, error)
	ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*Assignment, error)
	UpdateStatus(ctx context.Context, id string, status AssignmentStatus) error
	// SetGuestListLinkByEmail updates the guest-list link on every assignment
	// for the occurrence matching the assignee email. Matching zero rows is
	// not an error: the link may arrive before the assignment row is visible
	// to this process.
	SetGuestListLinkByEmail(ctx context.Context, occurrenceID, email, link string) error
	Delete(ctx context.Context, id string) error
}

// RosterService orchestrates assignment creation and guest-list
// provisioning for an event occurrence.
type RosterService interface {
	// AddAssignment creates the assignment and provisions the assignee's
	// guest list. Token issuance and the assignment write are fatal on
	// failure; registry upsert, external notification, and the invite email
	// are best-effort and never block the returned assignment.
	AddAssignment(ctx context.Context, occurrenceID string, assigneeType AssigneeType, in NewAssignmentInput) (*Assignment, error)
	RemoveAssignment(ctx context.Context, assignmentID string) error
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status AssignmentStatus) (*Assignment, error)
	ListAssignments(ctx context.Context, occurrenceID string) ([]*Assignment, error)
	// ReconcileGuestListLink idempotently writes the externally issued
	// guest-list link onto both the assignment (matched by email) and the
	// registry entry. Used by the orchestrator and by the manual backfill path.
	ReconcileGuestListLink(ctx context.Context, occurrenceID, assigneeID string, assigneeType AssigneeType, email, link string) error
}
