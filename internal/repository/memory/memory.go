// Package memory implements the repositories with process-local maps. It
// backs unit tests and the "memory" database driver.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/webinars/internal/domain"
)

// DB holds the in-memory repositories and satisfies domain.Database.
type DB struct {
	webinars *WebinarRepository
	users    *UserRepository
}

// New returns an empty in-memory database.
func New() *DB {
	return &DB{
		webinars: NewWebinarRepository(),
		users:    NewUserRepository(),
	}
}

func (db *DB) Migrate(ctx context.Context) error { return nil }

func (db *DB) Ping(ctx context.Context) error { return nil }

func (db *DB) Close() error { return nil }

func (db *DB) Webinars() domain.WebinarRepository { return db.webinars }

func (db *DB) Users() domain.UserRepository { return db.users }

// UserRepository stores users by ID with a secondary email index.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	if _, ok := r.byID[user.ID]; ok {
		return domain.NewError(domain.KindConflict, "user already exists")
	}
	r.byID[user.ID] = *user
	r.byEmail[user.Email] = user.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := r.byID[id]
	return &u, nil
}
