package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestpass/internal/adapters/token"
	"guestpass/internal/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type memAssignmentRepo struct {
	assignments map[string]*domain.Assignment
	nextID      int
	createErr   error
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: make(map[string]*domain.Assignment)}
}

func (m *memAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	a.ID = fmt.Sprintf("as-%d", m.nextID)
	cp := *a
	m.assignments[a.ID] = &cp
	return nil
}

func (m *memAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	a, ok := m.assignments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAssignmentRepo) ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*domain.Assignment, error) {
	out := []*domain.Assignment{}
	for _, a := range m.assignments {
		if a.EventOccurrenceID == occurrenceID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAssignmentRepo) UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus) error {
	a, ok := m.assignments[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *memAssignmentRepo) SetGuestListLinkByEmail(ctx context.Context, occurrenceID, email, link string) error {
	for _, a := range m.assignments {
		if a.EventOccurrenceID == occurrenceID && a.AssigneeEmail == email {
			a.GuestListLink = link
		}
	}
	return nil
}

func (m *memAssignmentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.assignments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.assignments, id)
	return nil
}

type memOccurrenceRepo struct {
	occurrences map[string]*domain.EventOccurrence
}

func (m *memOccurrenceRepo) GetByID(ctx context.Context, id string) (*domain.EventOccurrence, error) {
	occ, ok := m.occurrences[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return occ, nil
}

// fakeNotifier lets tests inject failures and canned links.
type fakeNotifier struct {
	err        error
	link       string
	calls      int
	lastNotice *domain.AssignmentNotice
}

func (f *fakeNotifier) NotifyAssignment(ctx context.Context, notice *domain.AssignmentNotice) (*domain.NotifyResult, error) {
	f.calls++
	f.lastNotice = notice
	if f.err != nil {
		return nil, f.err
	}
	return &domain.NotifyResult{GuestListLink: f.link}, nil
}

type fakeEmailService struct {
	err   error
	calls int
	last  *domain.RSVPInviteEmailData
}

func (f *fakeEmailService) SendRSVPInvite(ctx context.Context, data *domain.RSVPInviteEmailData) error {
	f.calls++
	f.last = data
	return f.err
}

type rosterFixture struct {
	svc            domain.RosterService
	assignmentRepo *memAssignmentRepo
	guestListRepo  *memGuestListRepo
	notifier       *fakeNotifier
	email          *fakeEmailService
}

func newRosterFixture(t *testing.T, notifier *fakeNotifier) *rosterFixture {
	t.Helper()
	assignmentRepo := newMemAssignmentRepo()
	guestListRepo := newMemGuestListRepo()
	occurrenceRepo := &memOccurrenceRepo{occurrences: map[string]*domain.EventOccurrence{
		"occ-1": {
			ID:        "occ-1",
			EventName: "Warehouse Fridays",
			Venue:     "The Depot",
			Date:      time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "22:00",
		},
	}}
	email := &fakeEmailService{}
	svc := NewRosterService(
		assignmentRepo,
		occurrenceRepo,
		NewGuestListService(guestListRepo, time.Second),
		token.NewService(),
		notifier,
		email,
		discardLogger,
		"https://rsvp.example.com",
		time.Second,
	)
	return &rosterFixture{
		svc:            svc,
		assignmentRepo: assignmentRepo,
		guestListRepo:  guestListRepo,
		notifier:       notifier,
		email:          email,
	}
}

func performerInput() domain.NewAssignmentInput {
	return domain.NewAssignmentInput{
		AssigneeID:    "dj-1",
		AssigneeName:  "DJ Jane",
		LegalName:     "Jane Driver",
		AssigneeEmail: "Jane@Example.com",
		Phone:         "+15550100",
		SetTime:       "23:30",
		PaymentAmount: 350,
	}
}

func TestAddAssignment_HappyPath(t *testing.T) {
	notifier := &fakeNotifier{link: "https://lists.example.com/abc"}
	f := newRosterFixture(t, notifier)

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	assert.Equal(t, domain.AssignmentPending, a.Status)
	assert.Equal(t, "jane@example.com", a.AssigneeEmail, "email is normalized")
	assert.True(t, strings.HasPrefix(a.RSVPLink, "https://rsvp.example.com/rsvp/occ-1/dj-1/"), a.RSVPLink)

	// Returned link reconciled into both the assignment and the registry.
	assert.Equal(t, "https://lists.example.com/abc", a.GuestListLink)
	stored := f.assignmentRepo.assignments[a.ID]
	assert.Equal(t, "https://lists.example.com/abc", stored.GuestListLink)
	entry, err := f.guestListRepo.GetByAssignee(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer)
	require.NoError(t, err)
	assert.Equal(t, "https://lists.example.com/abc", entry.GuestListLink)
	assert.True(t, entry.IsActive)
	assert.NotEmpty(t, entry.RSVPToken)
	assert.Contains(t, a.RSVPLink, entry.RSVPToken, "rsvp link embeds the registered token")

	// Payload normalization.
	require.Equal(t, 1, notifier.calls)
	assert.Equal(t, "11:30 PM", notifier.lastNotice.TimeSlot)
	assert.Equal(t, "March 14", notifier.lastNotice.EventDate)
	assert.Equal(t, "Jane Driver", notifier.lastNotice.LegalName)
	assert.Equal(t, "DJ Jane", notifier.lastNotice.DisplayName)

	// Invite email carried the rsvp link.
	require.Equal(t, 1, f.email.calls)
	assert.Equal(t, a.RSVPLink, f.email.last.RSVPLink)
}

func TestAddAssignment_NotifierAlwaysErrors(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("dial tcp: connection refused")}
	f := newRosterFixture(t, notifier)

	// Fault injection: the external system being down must never block
	// assignment creation.
	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	assert.Equal(t, "", a.GuestListLink, "link stays empty until backfilled")
	assert.NotEmpty(t, a.RSVPLink)

	entry, err := f.guestListRepo.GetByAssignee(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer)
	require.NoError(t, err)
	assert.Equal(t, "", entry.GuestListLink)
}

func TestAddAssignment_NotifierOmitsLink(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneeCrew, domain.NewAssignmentInput{
		AssigneeID:    "crew-7",
		AssigneeName:  "Sam Door",
		AssigneeEmail: "sam@example.com",
		Role:          "door",
		PaymentAmount: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, "", a.GuestListLink)
	// Crew without a set time falls back to the occurrence start time.
	assert.Equal(t, "10:00 PM", f.notifier.lastNotice.TimeSlot)
	assert.Equal(t, "door", f.notifier.lastNotice.Role)
}

func TestAddAssignment_RegistryFailureIsNotFatal(t *testing.T) {
	notifier := &fakeNotifier{}
	f := newRosterFixture(t, notifier)
	f.guestListRepo.err = errors.New("write refused")

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err, "registry failure must not fail assignment creation")
	require.NotEmpty(t, a.ID)
	assert.Equal(t, 1, notifier.calls, "notification still goes out")
}

func TestAddAssignment_EmailFailureIsNotFatal(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})
	f.email.err = errors.New("ses throttled")

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
}

func TestAddAssignment_UnknownOccurrence(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})

	_, err := f.svc.AddAssignment(context.Background(), "occ-missing", domain.AssigneePerformer, performerInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.assignmentRepo.assignments, "no partial writes")
	assert.Equal(t, 0, f.notifier.calls)
}

func TestAddAssignment_InvalidInput(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})

	in := performerInput()
	in.AssigneeEmail = ""
	_, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneeType("vip"), performerInput())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.assignmentRepo.assignments)
}

func TestReconcileGuestListLink_ManualBackfill(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{err: errors.New("down")})

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err)
	require.Equal(t, "", a.GuestListLink)

	err = f.svc.ReconcileGuestListLink(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer, "jane@example.com", "https://lists.example.com/manual")
	require.NoError(t, err)

	stored, err := f.assignmentRepo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://lists.example.com/manual", stored.GuestListLink)
	entry, err := f.guestListRepo.GetByAssignee(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer)
	require.NoError(t, err)
	assert.Equal(t, "https://lists.example.com/manual", entry.GuestListLink)

	// Idempotent: running again changes nothing and does not error.
	err = f.svc.ReconcileGuestListLink(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer, "jane@example.com", "https://lists.example.com/manual")
	require.NoError(t, err)
}

func TestReconcileGuestListLink_EmptyLinkRejected(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})
	err := f.svc.ReconcileGuestListLink(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer, "jane@example.com", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveAssignment_DoesNotCascade(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveAssignment(context.Background(), a.ID))
	assert.Empty(t, f.assignmentRepo.assignments)

	// Guest-list data outlives the assignment.
	entry, err := f.guestListRepo.GetByAssignee(context.Background(), "occ-1", "dj-1", domain.AssigneePerformer)
	require.NoError(t, err)
	assert.True(t, entry.IsActive)

	assert.ErrorIs(t, f.svc.RemoveAssignment(context.Background(), a.ID), domain.ErrNotFound)
}

func TestUpdateAssignmentStatus(t *testing.T) {
	f := newRosterFixture(t, &fakeNotifier{})

	a, err := f.svc.AddAssignment(context.Background(), "occ-1", domain.AssigneePerformer, performerInput())
	require.NoError(t, err)

	updated, err := f.svc.UpdateAssignmentStatus(context.Background(), a.ID, domain.AssignmentConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentConfirmed, updated.Status)

	_, err = f.svc.UpdateAssignmentStatus(context.Background(), a.ID, domain.AssignmentStatus("archived"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.UpdateAssignmentStatus(context.Background(), "as-404", domain.AssignmentConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
