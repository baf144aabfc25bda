package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guestpass/internal/domain"
)

type guestListService struct {
	repo           domain.GuestListRepository
	contextTimeout time.Duration
}

// NewGuestListService creates the guest-list registry service.
func NewGuestListService(repo domain.GuestListRepository, timeout time.Duration) domain.GuestListService {
	return &guestListService{
		repo:           repo,
		contextTimeout: timeout,
	}
}

func (s *guestListService) Lookup(ctx context.Context, occurrenceID, assigneeID string, assigneeType domain.AssigneeType) (*domain.GuestListEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" || assigneeID == "" || !assigneeType.Valid() {
		return nil, domain.ErrInvalidInput
	}
	entry, err := s.repo.GetByAssignee(ctx, occurrenceID, assigneeID, assigneeType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get guest list entry: %w", err)
	}
	return entry, nil
}

// UpsertByAssignee is the sole sanctioned write path for guest-list
// entries. The lookup-then-write sequence keeps at most one entry per
// (occurrence, assignee, type) for sequential callers; two concurrent
// callers racing past the lookup can still both create, which is an
// accepted anomaly rather than an error (a unique index on the three-part
// key removes it entirely where the deployment can afford one).
func (s *guestListService) UpsertByAssignee(ctx context.Context, occurrenceID, assigneeID string, assigneeType domain.AssigneeType, fields domain.GuestListFields) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" || assigneeID == "" || !assigneeType.Valid() {
		return "", domain.ErrInvalidInput
	}

	existing, err := s.repo.GetByAssignee(ctx, occurrenceID, assigneeID, assigneeType)
	if err == nil {
		if err := s.repo.Update(ctx, existing.ID, fields); err != nil {
			return "", fmt.Errorf("update guest list entry: %w", err)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("get guest list entry: %w", err)
	}

	now := time.Now()
	entry := &domain.GuestListEntry{
		EventOccurrenceID: occurrenceID,
		AssigneeType:      assigneeType,
		AssigneeID:        assigneeID,
		AssigneeName:      strings.TrimSpace(stringOrEmpty(fields.AssigneeName)),
		AssigneeEmail:     strings.TrimSpace(stringOrEmpty(fields.AssigneeEmail)),
		GuestListLink:     stringOrEmpty(fields.GuestListLink),
		RSVPToken:         stringOrEmpty(fields.RSVPToken),
		IsActive:          true,
		MaxGuests:         fields.MaxGuests,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if fields.IsActive != nil {
		entry.IsActive = *fields.IsActive
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("create guest list entry: %w", err)
	}
	return entry.ID, nil
}

func (s *guestListService) ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*domain.GuestListEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	entries, err := s.repo.ListByEventOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("list guest list entries: %w", err)
	}
	if entries == nil {
		entries = []*domain.GuestListEntry{}
	}
	return entries, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
