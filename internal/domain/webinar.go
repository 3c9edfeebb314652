package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	MinSeats = 1
	MaxSeats = 1000

	// MinLeadTime is how far ahead of "now" a webinar must start.
	MinLeadTime = 3 * 24 * time.Hour
)

// WebinarProps is the full state of a webinar.
type WebinarProps struct {
	ID          string
	OrganizerID string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Seats       int
}

// WebinarPatch lists the fields to change in Update. Nil fields are kept.
type WebinarPatch struct {
	Title     *string
	StartDate *time.Time
	EndDate   *time.Time
	Seats     *int
}

// Webinar is a scheduled webinar. Its state can only be read through Props and
// only changed through Update, so every instance satisfies the invariants it
// was validated against.
type Webinar struct {
	props WebinarProps
}

// NewWebinar validates props against every webinar invariant, including the
// start date lead time relative to now.
func NewWebinar(props WebinarProps, now time.Time) (*Webinar, error) {
	if err := validateWebinar(props); err != nil {
		return nil, err
	}
	if err := validateLeadTime(props.StartDate, now); err != nil {
		return nil, err
	}
	return &Webinar{props: props}, nil
}

// RestoreWebinar rebuilds a webinar from storage without validation.
func RestoreWebinar(props WebinarProps) *Webinar {
	return &Webinar{props: props}
}

// Props returns a copy of the webinar state.
func (w *Webinar) Props() WebinarProps {
	return w.props
}

func (w *Webinar) ID() string          { return w.props.ID }
func (w *Webinar) OrganizerID() string { return w.props.OrganizerID }
func (w *Webinar) Seats() int          { return w.props.Seats }

// IsOrganizer reports whether user organizes this webinar.
func (w *Webinar) IsOrganizer(user User) bool {
	return user.ID != "" && user.ID == w.props.OrganizerID
}

// Update returns a new webinar with patch applied. The merged state is
// validated before anything is returned and w is never modified. The lead
// time rule is only checked when the patch moves the start date.
func (w *Webinar) Update(patch WebinarPatch, now time.Time) (*Webinar, error) {
	next := w.props
	if patch.Title != nil {
		next.Title = *patch.Title
	}
	if patch.StartDate != nil {
		next.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		next.EndDate = *patch.EndDate
	}
	if patch.Seats != nil {
		next.Seats = *patch.Seats
	}

	if err := validateWebinar(next); err != nil {
		return nil, err
	}
	if patch.StartDate != nil && !patch.StartDate.Equal(w.props.StartDate) {
		if err := validateLeadTime(next.StartDate, now); err != nil {
			return nil, err
		}
	}
	return &Webinar{props: next}, nil
}

func validateWebinar(p WebinarProps) error {
	if strings.TrimSpace(p.ID) == "" {
		return Validation("The webinar must have an id")
	}
	if strings.TrimSpace(p.OrganizerID) == "" {
		return Validation("The webinar must have an organizer")
	}
	if strings.TrimSpace(p.Title) == "" {
		return Validation("The webinar must have a title")
	}
	if p.Seats < MinSeats {
		return Validation(fmt.Sprintf("The webinar must have at least %d seat", MinSeats))
	}
	if p.Seats > MaxSeats {
		return Validation(fmt.Sprintf("The webinar must have at most %d seats", MaxSeats))
	}
	if p.EndDate.Before(p.StartDate) {
		return Validation("The webinar must end after it starts")
	}
	return nil
}

func validateLeadTime(start, now time.Time) error {
	if start.Before(now.Add(MinLeadTime)) {
		return Validation("The webinar must be scheduled at least 3 days in advance")
	}
	return nil
}

// WebinarRepository defines persistence operations for webinars.
// FindByID returns nil, nil when no webinar has the given id.
type WebinarRepository interface {
	Create(ctx context.Context, webinar *Webinar) error
	Update(ctx context.Context, webinar *Webinar) error
	FindByID(ctx context.Context, id string) (*Webinar, error)
}
