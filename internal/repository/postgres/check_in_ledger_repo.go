package postgres

import (
	"context"
	"database/sql"

	"guestpass/internal/domain"
)

// checkInLedgerRepository is append-only by contract: no update or delete
// statements exist for check_in_records.
type checkInLedgerRepository struct {
	DB *sql.DB
}

func NewCheckInLedgerRepository(db *sql.DB) domain.CheckInLedgerRepository {
	return &checkInLedgerRepository{
		DB: db,
	}
}

func (r *checkInLedgerRepository) Append(ctx context.Context, rec *domain.CheckInRecord) error {
	query := `
		INSERT INTO check_in_records (guest_list_entry_id, event_occurrence_id, guest_name,
			party_size, checked_in_at, checked_in_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		rec.GuestListEntryID, rec.EventOccurrenceID, rec.GuestName,
		rec.PartySize, rec.CheckedInAt, rec.CheckedInBy,
	).Scan(&rec.ID)
}

func (r *checkInLedgerRepository) ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*domain.CheckInRecord, error) {
	query := `
		SELECT id, guest_list_entry_id, event_occurrence_id, guest_name, party_size, checked_in_at, checked_in_by
		FROM check_in_records
		WHERE event_occurrence_id = $1
		ORDER BY checked_in_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, occurrenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.CheckInRecord, 0)
	for rows.Next() {
		rec := &domain.CheckInRecord{}
		if err := rows.Scan(&rec.ID, &rec.GuestListEntryID, &rec.EventOccurrenceID, &rec.GuestName,
			&rec.PartySize, &rec.CheckedInAt, &rec.CheckedInBy); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
