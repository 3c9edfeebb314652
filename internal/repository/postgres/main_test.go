package postgres_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/msomdec/webinars/internal/repository/postgres"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

var (
	testDSN    string
	skipReason string
)

// TestMain points the tests at TEST_DATABASE_URL when set. Otherwise it
// starts a throwaway Postgres container, and the tests skip when Docker is
// not reachable.
func TestMain(m *testing.M) {
	testDSN = os.Getenv("TEST_DATABASE_URL")
	if testDSN != "" {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err == nil {
		err = pool.Client.Ping()
	}
	if err != nil {
		skipReason = fmt.Sprintf("docker unavailable: %v", err)
		os.Exit(m.Run())
	}
	pool.MaxWait = 60 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=webinars",
			"POSTGRES_PASSWORD=webinars",
			"POSTGRES_DB=webinars_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("start postgres container: %v", err)
	}
	_ = resource.Expire(120)

	testDSN = fmt.Sprintf("postgres://webinars:webinars@%s/webinars_test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, testDSN)
		if err != nil {
			return err
		}
		return db.Close()
	}); err != nil {
		_ = pool.Purge(resource)
		log.Fatalf("connect to postgres container: %v", err)
	}

	code := m.Run()
	if err := pool.Purge(resource); err != nil {
		log.Printf("purge postgres container: %v", err)
	}
	os.Exit(code)
}

func newTestDB(t *testing.T) *postgres.DB {
	t.Helper()
	if skipReason != "" {
		t.Skip(skipReason)
	}

	ctx := context.Background()
	db, err := postgres.New(ctx, testDSN)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if _, err := db.Pool.Exec(ctx, `TRUNCATE webinars, users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}
