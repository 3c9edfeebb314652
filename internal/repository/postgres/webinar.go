package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/msomdec/webinars/internal/domain"
)

type WebinarRepository struct {
	pool *pgxpool.Pool
}

func NewWebinarRepository(pool *pgxpool.Pool) *WebinarRepository {
	return &WebinarRepository{pool: pool}
}

func (r *WebinarRepository) Create(ctx context.Context, webinar *domain.Webinar) error {
	const query = `
INSERT INTO webinars (id, organizer_id, title, start_date, end_date, seats)
VALUES ($1, $2, $3, $4, $5, $6)`

	p := webinar.Props()
	if _, err := r.pool.Exec(ctx, query, p.ID, p.OrganizerID, p.Title, p.StartDate, p.EndDate, p.Seats); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateWebinar
		}
		return fmt.Errorf("insert webinar: %w", err)
	}
	return nil
}

func (r *WebinarRepository) Update(ctx context.Context, webinar *domain.Webinar) error {
	const query = `
UPDATE webinars
SET organizer_id = $2, title = $3, start_date = $4, end_date = $5, seats = $6, updated_at = NOW()
WHERE id = $1`

	p := webinar.Props()
	tag, err := r.pool.Exec(ctx, query, p.ID, p.OrganizerID, p.Title, p.StartDate, p.EndDate, p.Seats)
	if err != nil {
		return fmt.Errorf("update webinar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWebinarNotFound
	}
	return nil
}

func (r *WebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	const query = `
SELECT id, organizer_id, title, start_date, end_date, seats
FROM webinars
WHERE id = $1`

	var p domain.WebinarProps
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.OrganizerID, &p.Title, &p.StartDate, &p.EndDate, &p.Seats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find webinar: %w", err)
	}
	p.StartDate = p.StartDate.UTC()
	p.EndDate = p.EndDate.UTC()
	return domain.RestoreWebinar(p), nil
}
