package memory

import (
	"context"
	"sync"

	"github.com/msomdec/webinars/internal/domain"
)

// WebinarRepository keeps webinar snapshots keyed by ID. Stored values are
// copies, so callers never share state with the store.
type WebinarRepository struct {
	mu       sync.RWMutex
	webinars map[string]domain.WebinarProps
}

// NewWebinarRepository returns a repository seeded with the given webinars.
func NewWebinarRepository(seed ...*domain.Webinar) *WebinarRepository {
	r := &WebinarRepository{webinars: make(map[string]domain.WebinarProps, len(seed))}
	for _, w := range seed {
		r.webinars[w.ID()] = w.Props()
	}
	return r
}

func (r *WebinarRepository) Create(ctx context.Context, webinar *domain.Webinar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.webinars[webinar.ID()]; ok {
		return domain.ErrDuplicateWebinar
	}
	r.webinars[webinar.ID()] = webinar.Props()
	return nil
}

func (r *WebinarRepository) Update(ctx context.Context, webinar *domain.Webinar) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.webinars[webinar.ID()]; !ok {
		return domain.ErrWebinarNotFound
	}
	r.webinars[webinar.ID()] = webinar.Props()
	return nil
}

func (r *WebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	props, ok := r.webinars[id]
	if !ok {
		return nil, nil
	}
	return domain.RestoreWebinar(props), nil
}

// Len returns the number of stored webinars.
func (r *WebinarRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.webinars)
}
