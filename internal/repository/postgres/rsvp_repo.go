package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"guestpass/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

const rsvpColumns = `id, guest_list_entry_id, event_occurrence_id, assignee_type, assignee_id,
	guest_name, guest_contact, party_size, admission_code, admission_image,
	checked_in, checked_in_at, checked_in_by, rsvp_token, created_at`

func scanRSVPRecord(row interface{ Scan(...any) error }) (*domain.RSVPRecord, error) {
	rec := &domain.RSVPRecord{}
	var checkedInAt sql.NullTime
	var checkedInBy sql.NullString
	var image []byte
	err := row.Scan(
		&rec.ID, &rec.GuestListEntryID, &rec.EventOccurrenceID, &rec.AssigneeType, &rec.AssigneeID,
		&rec.GuestName, &rec.GuestContact, &rec.PartySize, &rec.AdmissionCode, &image,
		&rec.CheckedIn, &checkedInAt, &checkedInBy, &rec.RSVPToken, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.AdmissionImage = image
	if checkedInAt.Valid {
		rec.CheckedInAt = &checkedInAt.Time
	}
	if checkedInBy.Valid {
		rec.CheckedInBy = checkedInBy.String
	}
	return rec, nil
}

func (r *rsvpRepository) Create(ctx context.Context, rec *domain.RSVPRecord) error {
	query := `
		INSERT INTO rsvp_records (guest_list_entry_id, event_occurrence_id, assignee_type, assignee_id,
			guest_name, guest_contact, party_size, admission_code, checked_in, rsvp_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '', false, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		rec.GuestListEntryID, rec.EventOccurrenceID, rec.AssigneeType, rec.AssigneeID,
		rec.GuestName, rec.GuestContact, rec.PartySize, rec.RSVPToken, rec.CreatedAt,
	).Scan(&rec.ID)
}

func (r *rsvpRepository) SetAdmission(ctx context.Context, id, code string, image []byte) error {
	query := `
		UPDATE rsvp_records SET admission_code = $1, admission_image = $2
		WHERE id = $3 AND admission_code = ''
	`
	result, err := r.DB.ExecContext(ctx, query, code, image, id)
	if err != nil {
		return err
	}
	// The guard on the empty code makes the admission code write-once: a
	// second call matches zero rows.
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rsvpRepository) GetByID(ctx context.Context, id string) (*domain.RSVPRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rsvp_records
		WHERE id = $1
	`, rsvpColumns)
	rec, err := scanRSVPRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *rsvpRepository) GetByAdmissionCode(ctx context.Context, code string) (*domain.RSVPRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rsvp_records
		WHERE admission_code = $1 AND admission_code <> ''
	`, rsvpColumns)
	rec, err := scanRSVPRecord(r.DB.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (r *rsvpRepository) ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*domain.RSVPRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM rsvp_records
		WHERE event_occurrence_id = $1
		ORDER BY created_at DESC
	`, rsvpColumns)
	rows, err := r.DB.QueryContext(ctx, query, occurrenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.RSVPRecord, 0)
	for rows.Next() {
		rec, err := scanRSVPRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *rsvpRepository) SetCheckedIn(ctx context.Context, id string, at time.Time, by string) error {
	query := `
		UPDATE rsvp_records SET checked_in = true, checked_in_at = $1, checked_in_by = $2
		WHERE id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, at, by, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *rsvpRepository) ClearCheckedIn(ctx context.Context, id string) error {
	query := `
		UPDATE rsvp_records SET checked_in = false, checked_in_at = NULL
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
