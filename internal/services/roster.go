package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guestpass/internal/adapters/notify"
	"guestpass/internal/domain"
)

type rosterService struct {
	assignmentRepo domain.AssignmentRepository
	occurrenceRepo domain.EventOccurrenceRepository
	guestLists     domain.GuestListService
	tokens         domain.TokenService
	notifier       domain.StaffNotifier
	emailService   domain.EmailService
	logger         *slog.Logger
	rsvpBaseURL    string
	contextTimeout time.Duration
}

// NewRosterService creates the assignment orchestrator. rsvpBaseURL is the
// public origin RSVP links are built on, e.g. "https://rsvp.example.com".
func NewRosterService(
	assignmentRepo domain.AssignmentRepository,
	occurrenceRepo domain.EventOccurrenceRepository,
	guestLists domain.GuestListService,
	tokens domain.TokenService,
	notifier domain.StaffNotifier,
	emailService domain.EmailService,
	logger *slog.Logger,
	rsvpBaseURL string,
	timeout time.Duration,
) domain.RosterService {
	return &rosterService{
		assignmentRepo: assignmentRepo,
		occurrenceRepo: occurrenceRepo,
		guestLists:     guestLists,
		tokens:         tokens,
		notifier:       notifier,
		emailService:   emailService,
		logger:         logger,
		rsvpBaseURL:    strings.TrimSuffix(rsvpBaseURL, "/"),
		contextTimeout: timeout,
	}
}

// AddAssignment runs the provisioning pipeline: issue token and rsvp link,
// persist the assignment, upsert the registry entry, then notify the
// external staffing system and reconcile any returned guest-list link.
// Only the first two steps can fail the call; everything after the
// assignment write is best-effort so that an unavailable external system
// never blocks assignment creation.
func (s *rosterService) AddAssignment(ctx context.Context, occurrenceID string, assigneeType domain.AssigneeType, in domain.NewAssignmentInput) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" || !assigneeType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	in.AssigneeID = strings.TrimSpace(in.AssigneeID)
	in.AssigneeName = strings.TrimSpace(in.AssigneeName)
	in.AssigneeEmail = strings.TrimSpace(strings.ToLower(in.AssigneeEmail))
	if in.AssigneeID == "" || in.AssigneeName == "" || in.AssigneeEmail == "" {
		return nil, fmt.Errorf("%w: assignee id, name and email are required", domain.ErrInvalidInput)
	}

	occurrence, err := s.occurrenceRepo.GetByID(ctx, occurrenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event occurrence: %w", err)
	}

	rsvpToken := s.tokens.IssueRSVPToken()
	rsvpLink := fmt.Sprintf("%s/rsvp/%s/%s/%s", s.rsvpBaseURL, occurrenceID, in.AssigneeID, rsvpToken)

	assignment := &domain.Assignment{
		EventOccurrenceID: occurrenceID,
		AssigneeType:      assigneeType,
		AssigneeID:        in.AssigneeID,
		AssigneeName:      in.AssigneeName,
		LegalName:         in.LegalName,
		AssigneeEmail:     in.AssigneeEmail,
		Phone:             in.Phone,
		Role:              in.Role,
		SetTime:           in.SetTime,
		PaymentAmount:     in.PaymentAmount,
		Status:            domain.AssignmentPending,
		GuestListLink:     "",
		RSVPLink:          rsvpLink,
		AssignedAt:        time.Now(),
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	emptyLink := ""
	_, err = s.guestLists.UpsertByAssignee(ctx, occurrenceID, in.AssigneeID, assigneeType, domain.GuestListFields{
		AssigneeName:  &in.AssigneeName,
		AssigneeEmail: &in.AssigneeEmail,
		GuestListLink: &emptyLink,
		RSVPToken:     &rsvpToken,
	})
	if err != nil {
		// The assignment already exists and its rsvp link is valid for a
		// later re-provisioning pass; don't fail the caller.
		s.logger.Warn("guest list upsert failed",
			"event_occurrence_id", occurrenceID,
			"assignee_id", in.AssigneeID,
			"err", err,
		)
	}

	s.notifyAndReconcile(ctx, occurrence, assignment)
	s.sendInviteEmail(ctx, occurrence, assignment)

	return assignment, nil
}

// notifyAndReconcile is the single boundary where external notification
// failures are swallowed. On success with a link, the link is written back
// to both the assignment and the registry entry.
func (s *rosterService) notifyAndReconcile(ctx context.Context, occurrence *domain.EventOccurrence, a *domain.Assignment) {
	legalName := a.LegalName
	if legalName == "" {
		legalName = a.AssigneeName
	}
	timeSlot := a.SetTime
	if timeSlot == "" {
		timeSlot = occurrence.StartTime
	}
	notice := &domain.AssignmentNotice{
		LegalName:     legalName,
		DisplayName:   a.AssigneeName,
		Email:         a.AssigneeEmail,
		Phone:         a.Phone,
		TimeSlot:      notify.NormalizeTimeSlot(timeSlot),
		EventDate:     notify.NormalizeEventDate(occurrence.Date),
		EventName:     occurrence.EventName,
		Venue:         occurrence.Venue,
		PaymentAmount: a.PaymentAmount,
		Role:          a.Role,
	}

	result, err := s.notifier.NotifyAssignment(ctx, notice)
	if err != nil {
		s.logger.Warn("staffing notification failed",
			"event_occurrence_id", a.EventOccurrenceID,
			"assignee_id", a.AssigneeID,
			"err", err,
		)
		return
	}
	if result == nil || result.GuestListLink == "" {
		return
	}
	if err := s.ReconcileGuestListLink(ctx, a.EventOccurrenceID, a.AssigneeID, a.AssigneeType, a.AssigneeEmail, result.GuestListLink); err != nil {
		s.logger.Warn("guest list link reconciliation failed",
			"event_occurrence_id", a.EventOccurrenceID,
			"assignee_id", a.AssigneeID,
			"err", err,
		)
		return
	}
	a.GuestListLink = result.GuestListLink
}

func (s *rosterService) sendInviteEmail(ctx context.Context, occurrence *domain.EventOccurrence, a *domain.Assignment) {
	timeSlot := a.SetTime
	if timeSlot == "" {
		timeSlot = occurrence.StartTime
	}
	err := s.emailService.SendRSVPInvite(ctx, &domain.RSVPInviteEmailData{
		Email:        a.AssigneeEmail,
		AssigneeName: a.AssigneeName,
		EventName:    occurrence.EventName,
		Venue:        occurrence.Venue,
		EventDate:    notify.NormalizeEventDate(occurrence.Date),
		TimeSlot:     notify.NormalizeTimeSlot(timeSlot),
		RSVPLink:     a.RSVPLink,
	})
	if err != nil {
		s.logger.Warn("rsvp invite email failed",
			"event_occurrence_id", a.EventOccurrenceID,
			"assignee_id", a.AssigneeID,
			"err", err,
		)
	}
}

// ReconcileGuestListLink writes the externally issued link onto the
// assignment (matched by assignee email) and the registry entry. It is
// idempotent: re-running with the same link is a no-op update.
func (s *rosterService) ReconcileGuestListLink(ctx context.Context, occurrenceID, assigneeID string, assigneeType domain.AssigneeType, email, link string) error {
	if occurrenceID == "" || assigneeID == "" || !assigneeType.Valid() || link == "" {
		return domain.ErrInvalidInput
	}
	email = strings.TrimSpace(strings.ToLower(email))

	if err := s.assignmentRepo.SetGuestListLinkByEmail(ctx, occurrenceID, email, link); err != nil {
		return fmt.Errorf("set assignment guest list link: %w", err)
	}
	_, err := s.guestLists.UpsertByAssignee(ctx, occurrenceID, assigneeID, assigneeType, domain.GuestListFields{
		GuestListLink: &link,
		AssigneeEmail: &email,
	})
	if err != nil {
		return fmt.Errorf("upsert guest list link: %w", err)
	}
	return nil
}

// RemoveAssignment deletes the assignment only. Guest-list entries, RSVP
// records, and the check-in ledger outlive it so attendance stays auditable.
func (s *rosterService) RemoveAssignment(ctx context.Context, assignmentID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if assignmentID == "" {
		return domain.ErrInvalidInput
	}
	if err := s.assignmentRepo.Delete(ctx, assignmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (s *rosterService) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status domain.AssignmentStatus) (*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if assignmentID == "" || !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update assignment status: %w", err)
	}
	a, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return a, nil
}

func (s *rosterService) ListAssignments(ctx context.Context, occurrenceID string) ([]*domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	assignments, err := s.assignmentRepo.ListByEventOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	if assignments == nil {
		assignments = []*domain.Assignment{}
	}
	return assignments, nil
}
