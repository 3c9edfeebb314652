package service

import (
	"context"
	"fmt"
	"time"

	"github.com/msomdec/webinars/internal/clock"
	"github.com/msomdec/webinars/internal/domain"
)

// WebinarService implements the webinar use cases.
type WebinarService struct {
	webinars domain.WebinarRepository
	ids      IDGenerator
	clock    clock.Clock
}

// NewWebinarService creates a new WebinarService.
func NewWebinarService(webinars domain.WebinarRepository, ids IDGenerator, clk clock.Clock) *WebinarService {
	return &WebinarService{webinars: webinars, ids: ids, clock: clk}
}

type OrganizeWebinarInput struct {
	UserID    string
	Title     string
	Seats     int
	StartDate time.Time
	EndDate   time.Time
}

type OrganizeWebinarResult struct {
	ID string
}

// OrganizeWebinar creates a webinar organized by in.UserID. Nothing is
// persisted when the webinar fails validation.
func (s *WebinarService) OrganizeWebinar(ctx context.Context, in OrganizeWebinarInput) (OrganizeWebinarResult, error) {
	webinar, err := domain.NewWebinar(domain.WebinarProps{
		ID:          s.ids.NewID(),
		OrganizerID: in.UserID,
		Title:       in.Title,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Seats:       in.Seats,
	}, s.clock.Now())
	if err != nil {
		return OrganizeWebinarResult{}, err
	}

	if err := s.webinars.Create(ctx, webinar); err != nil {
		return OrganizeWebinarResult{}, fmt.Errorf("create webinar: %w", err)
	}
	return OrganizeWebinarResult{ID: webinar.ID()}, nil
}

// freshFinder is implemented by caching repositories. FindByIDFresh always
// reads the backing store.
type freshFinder interface {
	FindByIDFresh(ctx context.Context, id string) (*domain.Webinar, error)
}

// findForWrite loads a webinar whose state will decide a write, bypassing
// any read cache in front of the store.
func (s *WebinarService) findForWrite(ctx context.Context, id string) (*domain.Webinar, error) {
	if f, ok := s.webinars.(freshFinder); ok {
		return f.FindByIDFresh(ctx, id)
	}
	return s.webinars.FindByID(ctx, id)
}

type ChangeSeatsInput struct {
	User      domain.User
	WebinarID string
	Seats     int
}

// ChangeSeats raises the seat count of a webinar. Only the organizer may do
// so, and the count may never go down. Every check runs before the single
// repository write.
func (s *WebinarService) ChangeSeats(ctx context.Context, in ChangeSeatsInput) error {
	webinar, err := s.findForWrite(ctx, in.WebinarID)
	if err != nil {
		return fmt.Errorf("find webinar: %w", err)
	}
	if webinar == nil {
		return domain.ErrWebinarNotFound
	}

	if !webinar.IsOrganizer(in.User) {
		return domain.ErrNotOrganizer
	}
	if in.Seats < webinar.Seats() {
		return domain.ErrSeatsReduced
	}

	updated, err := webinar.Update(domain.WebinarPatch{Seats: &in.Seats}, s.clock.Now())
	if err != nil {
		return err
	}

	if err := s.webinars.Update(ctx, updated); err != nil {
		return fmt.Errorf("update webinar: %w", err)
	}
	return nil
}

// GetWebinar returns a webinar by ID.
func (s *WebinarService) GetWebinar(ctx context.Context, id string) (*domain.Webinar, error) {
	webinar, err := s.webinars.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find webinar: %w", err)
	}
	if webinar == nil {
		return nil, domain.ErrWebinarNotFound
	}
	return webinar, nil
}
