package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/webinars/internal/clock"
	"github.com/msomdec/webinars/internal/handler"
	"github.com/msomdec/webinars/internal/repository/memory"
	"github.com/msomdec/webinars/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	srv  *httptest.Server
	db   *memory.DB
	auth *service.AuthService
}

func newTestEnv(t *testing.T, limiter *service.TokenBucket) *testEnv {
	t.Helper()
	db := memory.New()
	clk := clock.NewFixed(now)
	ids := service.UUIDGenerator{}

	auth := service.NewAuthService(db.Users(), ids, clk, testJWTSecret, 4)
	webinars := service.NewWebinarService(db.Webinars(), ids, clk)

	srv := httptest.NewServer(handler.NewRouter(handler.Services{
		Auth:     auth,
		Webinars: webinars,
		Store:    db,
		Limiter:  limiter,
	}))
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, db: db, auth: auth}
}

// login registers email and returns a bearer token for it.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	ctx := context.Background()
	if _, err := e.auth.Register(ctx, email, "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := e.auth.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return token
}

// do sends body as JSON and decodes the JSON response into a map.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode, out
}

func organizeBody(seats any, start time.Time) map[string]any {
	return map[string]any{
		"title":     "My first webinar",
		"seats":     seats,
		"startDate": start.Format(time.RFC3339),
		"endDate":   start.Add(time.Hour).Format(time.RFC3339),
	}
}
