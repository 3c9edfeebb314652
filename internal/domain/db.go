package domain

import "context"

// Database defines lifecycle operations for the underlying store and hands
// out its repositories. Each implementation (SQLite, Postgres, in-memory)
// owns its own schema strategy, so the backend is swappable from main.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	Webinars() WebinarRepository
	Users() UserRepository
}
