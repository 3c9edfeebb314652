package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/webinars/internal/domain"
)

// WebinarRepository implements domain.WebinarRepository using SQLite.
type WebinarRepository struct {
	db *sql.DB
}

// NewWebinarRepository creates a new SQLite-backed WebinarRepository.
func NewWebinarRepository(db *DB) *WebinarRepository {
	return &WebinarRepository{db: db.SqlDB}
}

func (r *WebinarRepository) Create(ctx context.Context, webinar *domain.Webinar) error {
	p := webinar.Props()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO webinars (id, organizer_id, title, start_date, end_date, seats)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.OrganizerID, p.Title, formatTime(p.StartDate), formatTime(p.EndDate), p.Seats,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateWebinar
		}
		return fmt.Errorf("insert webinar: %w", err)
	}
	return nil
}

// Update overwrites every column of the stored webinar with the same ID.
func (r *WebinarRepository) Update(ctx context.Context, webinar *domain.Webinar) error {
	p := webinar.Props()
	result, err := r.db.ExecContext(ctx,
		`UPDATE webinars
		 SET organizer_id = ?, title = ?, start_date = ?, end_date = ?, seats = ?,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.OrganizerID, p.Title, formatTime(p.StartDate), formatTime(p.EndDate), p.Seats, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update webinar: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrWebinarNotFound
	}
	return nil
}

func (r *WebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	var (
		p          domain.WebinarProps
		start, end string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, organizer_id, title, start_date, end_date, seats
		 FROM webinars WHERE id = ?`, id,
	).Scan(&p.ID, &p.OrganizerID, &p.Title, &start, &end, &p.Seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query webinar: %w", err)
	}

	if p.StartDate, err = parseTime(start); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseTime(end); err != nil {
		return nil, err
	}
	return domain.RestoreWebinar(p), nil
}
