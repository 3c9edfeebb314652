// Package postgres implements the repositories on PostgreSQL through a pgx
// connection pool. The schema is managed by golang-migrate.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/msomdec/webinars/internal/domain"
	"github.com/msomdec/webinars/internal/repository/postgres/migrations"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second

	uniqueViolation = "23505"
)

// DB wraps a pgx pool and implements domain.Database.
type DB struct {
	Pool *pgxpool.Pool
}

// New connects to the database at dsn, retrying while the server comes up.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	cfg.MaxConns = 20
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	var pool *pgxpool.Pool
	for attempt := 1; ; attempt++ {
		pool, err = pgxpool.NewWithConfig(ctx, cfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		if attempt == connectAttempts {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		slog.Warn("postgres connect failed, retrying", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	return &DB{Pool: pool}, nil
}

// Migrate brings the schema up to the latest embedded version. golang-migrate
// holds a Postgres advisory lock while it runs, so concurrent instances are
// safe.
func (db *DB) Migrate(ctx context.Context) error {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{})
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		sqlDB.Close()
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, _, _ := m.Version()
	slog.Info("migrations complete", "version", version)
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *DB) Close() error {
	db.Pool.Close()
	return nil
}

func (db *DB) Webinars() domain.WebinarRepository {
	return NewWebinarRepository(db.Pool)
}

func (db *DB) Users() domain.UserRepository {
	return NewUserRepository(db.Pool)
}

func isUniqueViolation(err error) bool {
	_, ok := violatedUniqueConstraint(err)
	return ok
}

// violatedUniqueConstraint returns the constraint name when err is a unique
// violation.
func violatedUniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}
