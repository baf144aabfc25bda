package postgres

import (
	"context"
	"database/sql"
	"errors"

	"guestpass/internal/domain"
)

// eventOccurrenceRepository reads occurrence metadata written by the
// external booking system. This service never inserts or updates rows here.
type eventOccurrenceRepository struct {
	DB *sql.DB
}

func NewEventOccurrenceRepository(db *sql.DB) domain.EventOccurrenceRepository {
	return &eventOccurrenceRepository{
		DB: db,
	}
}

func (r *eventOccurrenceRepository) GetByID(ctx context.Context, id string) (*domain.EventOccurrence, error) {
	query := `
		SELECT id, event_name, venue, date, start_time
		FROM event_occurrences
		WHERE id = $1
	`
	occ := &domain.EventOccurrence{}
	var startTime sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&occ.ID, &occ.EventName, &occ.Venue, &occ.Date, &startTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if startTime.Valid {
		occ.StartTime = startTime.String
	}
	return occ, nil
}
