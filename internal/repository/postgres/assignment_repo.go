package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"guestpass/internal/domain"
)

type assignmentRepository struct {
	DB *sql.DB
}

func NewAssignmentRepository(db *sql.DB) domain.AssignmentRepository {
	return &assignmentRepository{
		DB: db,
	}
}

const assignmentColumns = `id, event_occurrence_id, assignee_type, assignee_id, assignee_name,
	legal_name, assignee_email, phone, role, set_time, payment_amount, status,
	guest_list_link, rsvp_link, assigned_at`

func scanAssignment(row interface{ Scan(...any) error }) (*domain.Assignment, error) {
	a := &domain.Assignment{}
	err := row.Scan(
		&a.ID, &a.EventOccurrenceID, &a.AssigneeType, &a.AssigneeID, &a.AssigneeName,
		&a.LegalName, &a.AssigneeEmail, &a.Phone, &a.Role, &a.SetTime, &a.PaymentAmount, &a.Status,
		&a.GuestListLink, &a.RSVPLink, &a.AssignedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) Create(ctx context.Context, a *domain.Assignment) error {
	query := `
		INSERT INTO assignments (event_occurrence_id, assignee_type, assignee_id, assignee_name,
			legal_name, assignee_email, phone, role, set_time, payment_amount, status,
			guest_list_link, rsvp_link, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		a.EventOccurrenceID, a.AssigneeType, a.AssigneeID, a.AssigneeName,
		a.LegalName, a.AssigneeEmail, a.Phone, a.Role, a.SetTime, a.PaymentAmount, a.Status,
		a.GuestListLink, a.RSVPLink, a.AssignedAt,
	).Scan(&a.ID)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignments
		WHERE id = $1
	`, assignmentColumns)
	a, err := scanAssignment(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *assignmentRepository) ListByEventOccurrence(ctx context.Context, occurrenceID string) ([]*domain.Assignment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM assignments
		WHERE event_occurrence_id = $1
		ORDER BY assigned_at
	`, assignmentColumns)
	rows, err := r.DB.QueryContext(ctx, query, occurrenceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AssignmentStatus) error {
	query := `UPDATE assignments SET status = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepository) SetGuestListLinkByEmail(ctx context.Context, occurrenceID, email, link string) error {
	query := `
		UPDATE assignments SET guest_list_link = $1
		WHERE event_occurrence_id = $2 AND assignee_email = $3
	`
	// Zero matched rows is fine: the link can arrive before the assignment
	// row is visible, and the registry entry still carries it.
	_, err := r.DB.ExecContext(ctx, query, link, occurrenceID, email)
	return err
}

func (r *assignmentRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM assignments WHERE id = $1`
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
