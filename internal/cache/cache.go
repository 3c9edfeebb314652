// Package cache provides a Redis read-through cache in front of a
// domain.WebinarRepository.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/webinars/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "webinar:"

// NewRedisClient connects to Redis and verifies the connection with a PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// record is the cached JSON form of a webinar.
type record struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizerId"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Seats       int       `json:"seats"`
}

// WebinarRepository serves FindByID from Redis when possible and drops the
// cached entry on every write. Redis failures are logged and never fail the
// call; the wrapped repository stays the source of truth.
type WebinarRepository struct {
	next   domain.WebinarRepository
	client redis.Cmdable
	ttl    time.Duration
}

func NewWebinarRepository(next domain.WebinarRepository, client redis.Cmdable, ttl time.Duration) *WebinarRepository {
	return &WebinarRepository{next: next, client: client, ttl: ttl}
}

func (r *WebinarRepository) Create(ctx context.Context, webinar *domain.Webinar) error {
	if err := r.next.Create(ctx, webinar); err != nil {
		return err
	}
	r.invalidate(ctx, webinar.ID())
	return nil
}

func (r *WebinarRepository) Update(ctx context.Context, webinar *domain.Webinar) error {
	if err := r.next.Update(ctx, webinar); err != nil {
		return err
	}
	r.invalidate(ctx, webinar.ID())
	return nil
}

func (r *WebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	key := keyPrefix + id

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec record
		if err := json.Unmarshal(raw, &rec); err == nil {
			return domain.RestoreWebinar(domain.WebinarProps(rec)), nil
		}
		slog.Warn("discarding malformed cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	webinar, err := r.next.FindByID(ctx, id)
	if err != nil || webinar == nil {
		return webinar, err
	}

	payload, err := json.Marshal(record(webinar.Props()))
	if err != nil {
		return webinar, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
	return webinar, nil
}

// FindByIDFresh reads from the wrapped repository without consulting or
// filling the cache. A failed invalidation can leave an old entry behind
// until it expires, so reads that decide a write must come from here.
func (r *WebinarRepository) FindByIDFresh(ctx context.Context, id string) (*domain.Webinar, error) {
	return r.next.FindByID(ctx, id)
}

func (r *WebinarRepository) invalidate(ctx context.Context, id string) {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", keyPrefix+id, "error", err)
	}
}
