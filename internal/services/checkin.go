package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"guestpass/internal/domain"
)

type checkInService struct {
	rsvpRepo       domain.RSVPRepository
	ledgerRepo     domain.CheckInLedgerRepository
	guestListRepo  domain.GuestListRepository
	tokens         domain.TokenService
	logger         *slog.Logger
	contextTimeout time.Duration

	mu            sync.Mutex
	watchers      map[string]map[int]func([]*domain.RSVPRecord)
	nextWatcherID int
}

// NewCheckInService creates the check-in ledger service.
func NewCheckInService(
	rsvpRepo domain.RSVPRepository,
	ledgerRepo domain.CheckInLedgerRepository,
	guestListRepo domain.GuestListRepository,
	tokens domain.TokenService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.CheckInService {
	return &checkInService{
		rsvpRepo:       rsvpRepo,
		ledgerRepo:     ledgerRepo,
		guestListRepo:  guestListRepo,
		tokens:         tokens,
		logger:         logger,
		contextTimeout: timeout,
		watchers:       make(map[string]map[int]func([]*domain.RSVPRecord)),
	}
}

// SubmitRSVP validates the token against an active guest-list entry and
// creates the RSVP record in two phases: insert first, then derive and
// persist the admission code and QR image from the record's own id. The
// record is briefly readable with an empty code between the phases.
func (s *checkInService) SubmitRSVP(ctx context.Context, in domain.SubmitRSVPInput) (*domain.RSVPRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in.GuestName = strings.TrimSpace(in.GuestName)
	if in.GuestName == "" {
		return nil, fmt.Errorf("%w: guest name is required", domain.ErrInvalidInput)
	}
	if in.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", domain.ErrInvalidInput)
	}
	if in.EventOccurrenceID == "" || in.AssigneeID == "" || in.RSVPToken == "" {
		return nil, domain.ErrInvalidToken
	}

	entries, err := s.guestListRepo.ListActiveByAssignee(ctx, in.EventOccurrenceID, in.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("list guest list entries: %w", err)
	}
	var entry *domain.GuestListEntry
	for _, e := range entries {
		if subtle.ConstantTimeCompare([]byte(e.RSVPToken), []byte(in.RSVPToken)) == 1 {
			entry = e
			break
		}
	}
	if entry == nil {
		return nil, domain.ErrInvalidToken
	}
	if entry.MaxGuests != nil && in.PartySize > *entry.MaxGuests {
		return nil, fmt.Errorf("%w: party size exceeds the guest allowance of %d", domain.ErrInvalidInput, *entry.MaxGuests)
	}

	rec := &domain.RSVPRecord{
		GuestListEntryID:  entry.ID,
		EventOccurrenceID: in.EventOccurrenceID,
		AssigneeType:      entry.AssigneeType,
		AssigneeID:        in.AssigneeID,
		GuestName:         in.GuestName,
		GuestContact:      strings.TrimSpace(in.GuestContact),
		PartySize:         in.PartySize,
		RSVPToken:         in.RSVPToken,
		CreatedAt:         time.Now(),
	}
	if err := s.rsvpRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("create rsvp record: %w", err)
	}

	code := s.tokens.DeriveAdmissionCode(in.EventOccurrenceID, rec.ID)
	image, err := s.tokens.EncodeAdmissionImage(code)
	if err != nil {
		// The textual code is the source of truth; a missing image only
		// degrades the scanning convenience.
		s.logger.Warn("admission image encoding failed", "rsvp_record_id", rec.ID, "err", err)
		image = nil
	}
	if err := s.rsvpRepo.SetAdmission(ctx, rec.ID, code, image); err != nil {
		return nil, fmt.Errorf("persist admission code: %w", err)
	}
	rec.AdmissionCode = code
	rec.AdmissionImage = image

	s.notifyWatchers(in.EventOccurrenceID)
	return rec, nil
}

// CheckIn resolves the admission code and appends to the ledger. A code
// that is already checked in is a re-entry: the scan still succeeds and
// still appends a ledger row, so every scan event stays auditable.
func (s *checkInService) CheckIn(ctx context.Context, admissionCode, checkedInBy string, partySizeOverride int) (*domain.CheckInResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	admissionCode = strings.TrimSpace(admissionCode)
	if !s.tokens.ValidateAdmissionCodeFormat(admissionCode) {
		return nil, fmt.Errorf("%w: malformed admission code", domain.ErrInvalidInput)
	}
	if partySizeOverride < 0 {
		return nil, fmt.Errorf("%w: party size override must be positive", domain.ErrInvalidInput)
	}

	rec, err := s.rsvpRepo.GetByAdmissionCode(ctx, admissionCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp record: %w", err)
	}

	reEntry := rec.CheckedIn
	now := time.Now()
	if err := s.rsvpRepo.SetCheckedIn(ctx, rec.ID, now, checkedInBy); err != nil {
		return nil, fmt.Errorf("set checked in: %w", err)
	}

	partySize := rec.PartySize
	if partySizeOverride > 0 {
		partySize = partySizeOverride
	}
	ledgerRec := &domain.CheckInRecord{
		GuestListEntryID:  rec.GuestListEntryID,
		EventOccurrenceID: rec.EventOccurrenceID,
		GuestName:         rec.GuestName,
		PartySize:         partySize,
		CheckedInAt:       now,
		CheckedInBy:       checkedInBy,
	}
	if err := s.ledgerRepo.Append(ctx, ledgerRec); err != nil {
		return nil, fmt.Errorf("append check-in record: %w", err)
	}

	rec.CheckedIn = true
	rec.CheckedInAt = &now
	rec.CheckedInBy = checkedInBy

	if reEntry {
		s.logger.Info("re-entry scan",
			"event_occurrence_id", rec.EventOccurrenceID,
			"rsvp_record_id", rec.ID,
			"checked_in_by", checkedInBy,
		)
	}

	s.notifyWatchers(rec.EventOccurrenceID)
	return &domain.CheckInResult{Record: ledgerRec, RSVP: rec, ReEntry: reEntry}, nil
}

// CheckOut corrects a mis-scan by flipping the RSVP record back to not
// checked in. The ledger keeps the original scan rows.
func (s *checkInService) CheckOut(ctx context.Context, rsvpRecordID, by string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rsvpRecordID == "" {
		return domain.ErrInvalidInput
	}
	rec, err := s.rsvpRepo.GetByID(ctx, rsvpRecordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get rsvp record: %w", err)
	}
	if err := s.rsvpRepo.ClearCheckedIn(ctx, rec.ID); err != nil {
		return fmt.Errorf("clear checked in: %w", err)
	}
	s.logger.Info("checked out",
		"event_occurrence_id", rec.EventOccurrenceID,
		"rsvp_record_id", rec.ID,
		"by", by,
	)
	s.notifyWatchers(rec.EventOccurrenceID)
	return nil
}

// Stats aggregates on read so the numbers always match the latest record
// set; guest lists top out in the low hundreds, so the O(n) scan is cheap.
func (s *checkInService) Stats(ctx context.Context, occurrenceID string) (*domain.CheckInStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	records, err := s.rsvpRepo.ListByEventOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("list rsvp records: %w", err)
	}
	return aggregateStats(records), nil
}

func aggregateStats(records []*domain.RSVPRecord) *domain.CheckInStats {
	stats := &domain.CheckInStats{PerAssignee: []*domain.AssigneeCheckInStats{}}
	perAssignee := make(map[string]*domain.AssigneeCheckInStats)
	for _, rec := range records {
		stats.TotalRSVPs++
		stats.TotalGuests += rec.PartySize
		if rec.CheckedIn {
			stats.CheckedIn++
		}

		key := string(rec.AssigneeType) + ":" + rec.AssigneeID
		as, ok := perAssignee[key]
		if !ok {
			as = &domain.AssigneeCheckInStats{AssigneeID: rec.AssigneeID, AssigneeType: rec.AssigneeType}
			perAssignee[key] = as
			stats.PerAssignee = append(stats.PerAssignee, as)
		}
		as.TotalRSVPs++
		as.TotalGuests += rec.PartySize
		if rec.CheckedIn {
			as.CheckedIn++
		}
	}
	stats.NotCheckedIn = stats.TotalRSVPs - stats.CheckedIn
	sort.Slice(stats.PerAssignee, func(i, j int) bool {
		a, b := stats.PerAssignee[i], stats.PerAssignee[j]
		if a.AssigneeID != b.AssigneeID {
			return a.AssigneeID < b.AssigneeID
		}
		return a.AssigneeType < b.AssigneeType
	})
	return stats
}

func (s *checkInService) GetRSVP(ctx context.Context, rsvpRecordID string) (*domain.RSVPRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if rsvpRecordID == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := s.rsvpRepo.GetByID(ctx, rsvpRecordID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get rsvp record: %w", err)
	}
	return rec, nil
}

func (s *checkInService) ListCheckIns(ctx context.Context, occurrenceID string) ([]*domain.CheckInRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if occurrenceID == "" {
		return nil, domain.ErrInvalidInput
	}
	records, err := s.ledgerRepo.ListByEventOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("list check-in records: %w", err)
	}
	if records == nil {
		records = []*domain.CheckInRecord{}
	}
	return records, nil
}

// Subscribe registers a watcher for the occurrence and synchronously
// delivers the current snapshot. Watchers receive full snapshots, not
// deltas; consumers diff themselves if they need incremental updates.
func (s *checkInService) Subscribe(occurrenceID string, fn func([]*domain.RSVPRecord)) func() {
	s.mu.Lock()
	id := s.nextWatcherID
	s.nextWatcherID++
	if s.watchers[occurrenceID] == nil {
		s.watchers[occurrenceID] = make(map[int]func([]*domain.RSVPRecord))
	}
	s.watchers[occurrenceID][id] = fn
	s.mu.Unlock()

	if records, err := s.snapshot(occurrenceID); err == nil {
		fn(records)
	} else {
		s.logger.Warn("initial snapshot failed", "event_occurrence_id", occurrenceID, "err", err)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers[occurrenceID], id)
		if len(s.watchers[occurrenceID]) == 0 {
			delete(s.watchers, occurrenceID)
		}
	}
}

func (s *checkInService) notifyWatchers(occurrenceID string) {
	s.mu.Lock()
	fns := make([]func([]*domain.RSVPRecord), 0, len(s.watchers[occurrenceID]))
	for _, fn := range s.watchers[occurrenceID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	if len(fns) == 0 {
		return
	}

	records, err := s.snapshot(occurrenceID)
	if err != nil {
		s.logger.Warn("watcher snapshot failed", "event_occurrence_id", occurrenceID, "err", err)
		return
	}
	for _, fn := range fns {
		fn(records)
	}
}

func (s *checkInService) snapshot(occurrenceID string) ([]*domain.RSVPRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.contextTimeout)
	defer cancel()
	return s.rsvpRepo.ListByEventOccurrence(ctx, occurrenceID)
}
