package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"guestpass/internal/domain"
)

type guestListRepository struct {
	DB *sql.DB
}

func NewGuestListRepository(db *sql.DB) domain.GuestListRepository {
	return &guestListRepository{
		DB: db,
	}
}

const guestListColumns = `id, event_occurrence_id, assignee_type, assignee_id, assignee_name,
	assignee_email, guest_list_link, rsvp_token, is_active, max_guests, created_at, updated_at`

func scanGuestListEntry(row interface{ Scan(...any) error }) (*domain.GuestListEntry, error) {
	e := &domain.GuestListEntry{}
	var maxGuests sql.NullInt64
	err := row.Scan(
		&e.ID, &e.EventOccurrenceID, &e.AssigneeType, &e.AssigneeID, &e.AssigneeName,
		&e.AssigneeEmail, &e.GuestListLink, &e.RSVPToken, &e.IsActive, &maxGuests,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if maxGuests.Valid {
		v := int(maxGuests.Int64)
		e.MaxGuests = &v
	}
	return e, nil
}

func (r *guestListRepository) Create(ctx context.Context, entry *domain.GuestListEntry) error {
	query := `
		INSERT INTO guest_list_entries (event_occurrence_id, assignee_type, assignee_id, assignee_name,
			assignee_email, guest_list_link, rsvp_token, is_active, max_guests, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	var maxGuests sql.NullInt64
	if entry.MaxGuests != nil {
		maxGuests = sql.NullInt64{Int64: int64(*entry.MaxGuests), Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query,
		entry.EventOccurrenceID, entry.AssigneeType, entry.AssigneeID, entry.AssigneeName,
		entry.AssigneeEmail, entry.GuestListLink, entry.RSVPToken, entry.IsActive, maxGuests,
		entry.CreatedAt, entry.UpdatedAt,
	).Scan(&entry.ID)
}

func (r *guestListRepository) GetByAssignee(ctx context.Context, occurrenceID, assigneeID string, assigneeType domain.AssigneeType) (*domain.GuestListEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM guest_list_entries
		WHERE event_occurrence_id = $1 AND assignee_id = $2 AND assignee_type = $3
		ORDER BY created_at
		LIMIT 1
	`, guestListColumns)
	entry, err := scanGuestListEntry(r.DB.QueryRowContext(ctx, query, occurrenceID, assigneeID, assigneeType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (r *guestListRepository) ListActiveByAssignee(ctx context.Context, occurrenceID, assigneeID string) ([]*domain.GuestListEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM guest_list_entries
		WHERE event_occurrence_id = $1 AND assignee_id = $2 AND is_active = true
		ORDER BY created_at
	`, guestListColumns)
	rows, err := r.DB.QueryContext(ctx, query, occurrenceID, assigneeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.GuestListEntry, 0)
	for rows.Next() {
		entry, err := scanGuestListEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *guestListRepository) Update(ctx context.Context, id string, fields domain.GuestListFields) error {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if fields.AssigneeName != nil {
		setClauses = append(setClauses, fmt.Sprintf("assignee_name = $%d", n))
		args = append(args, *fields.AssigneeName)
		n++
	}
	if fields.AssigneeEmail != nil {
		setClauses = append(setClauses, fmt.Sprintf("assignee_email = $%d", n))
		args = append(args, *fields.AssigneeEmail)
		n++
	}
	if fields.GuestListLink != nil {
		setClauses = append(setClauses, fmt.Sprintf("guest_list_link = $%d", n))
		args = append(args, *fields.GuestListLink)
		n++
	}
	if fields.RSVPToken != nil {
		setClauses = append(setClauses, fmt.Sprintf("rsvp_token = $%d", n))
		args = append(args, *fields.RSVPToken)
		n++
	}
	if fields.IsActive != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_active = $%d", n))
		args = append(args, *fields.IsActive)
		n++
	}
	if fields.MaxGuests != nil {
		setClauses = append(setClauses, fmt.Sprintf("max_guests = $%d", n))
		args = append(args, *fields.MaxGuests)
		n++
	}
	if n == 1 {
		// Nothing to update beyond the timestamp.
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE guest_list_entries SET %s
		WHERE id = $%d
	`, strings.Join(setClauses, ", "), n)
	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *guestListRepository) ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*domain.GuestListEntry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM guest_list_entries
		WHERE event_occurrence_id = $1
		ORDER BY assignee_name, created_at
	`, guestListColumns)
	rows, err := r.DB.QueryContext(ctx, query, occurrenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.GuestListEntry, 0)
	for rows.Next() {
		entry, err := scanGuestListEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
