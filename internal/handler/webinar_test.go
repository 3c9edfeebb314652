package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestWebinars_OrganizeAndGet(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.login(t, "alice@example.com")

	status, body := env.do(t, http.MethodPost, "/webinars", alice, organizeBody(100, now.Add(4*24*time.Hour)))
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", status, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("expected id in response, got %v", body)
	}

	status, body = env.do(t, http.MethodGet, "/webinars/"+id, alice, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["seats"] != float64(100) || body["title"] != "My first webinar" {
		t.Fatalf("unexpected webinar %v", body)
	}
	if body["startDate"] != now.Add(4*24*time.Hour).Format(time.RFC3339) {
		t.Fatalf("unexpected start date %v", body["startDate"])
	}
}

func TestWebinars_OrganizeTooSoon(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.login(t, "alice@example.com")

	status, body := env.do(t, http.MethodPost, "/webinars", alice, organizeBody(100, now))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %v", status, body)
	}
	msg, _ := body["message"].(string)
	if !strings.Contains(msg, "at least 3 days in advance") {
		t.Fatalf("unexpected message %q", msg)
	}
	if body["code"] != "validation" {
		t.Fatalf("expected validation code, got %v", body["code"])
	}
	if n := env.db.Webinars().(interface{ Len() int }).Len(); n != 0 {
		t.Fatalf("expected no stored webinar, got %d", n)
	}
}

func TestWebinars_OrganizeSeatsAsString(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.login(t, "alice@example.com")

	status, body := env.do(t, http.MethodPost, "/webinars", alice, organizeBody("250", now.Add(5*24*time.Hour)))
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", status, body)
	}

	status, body = env.do(t, http.MethodGet, "/webinars/"+body["id"].(string), alice, nil)
	if status != http.StatusOK || body["seats"] != float64(250) {
		t.Fatalf("unexpected response %d %v", status, body)
	}
}

func TestWebinars_OrganizeBadRequests(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.login(t, "alice@example.com")
	start := now.Add(5 * 24 * time.Hour)

	missingTitle := organizeBody(10, start)
	delete(missingTitle, "title")

	unknownField := organizeBody(10, start)
	unknownField["room"] = "A"

	tests := []struct {
		name string
		body any
	}{
		{"malformed json", `{"title":`},
		{"empty body", ""},
		{"seats not numeric", organizeBody("many", start)},
		{"seats above maximum", organizeBody(1001, start)},
		{"seats zero", organizeBody(0, start)},
		{"missing title", missingTitle},
		{"unknown field", unknownField},
		{"bad date", map[string]any{"title": "x", "seats": 1, "startDate": "tomorrow", "endDate": "later"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/webinars", alice, tc.body)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %v", status, body)
			}
			if body["code"] != "validation" {
				t.Fatalf("expected validation code, got %v", body)
			}
		})
	}
}

func TestWebinars_ChangeSeats(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.login(t, "alice@example.com")
	bob := env.login(t, "bob@example.com")

	_, created := env.do(t, http.MethodPost, "/webinars", alice, organizeBody(100, now.Add(4*24*time.Hour)))
	id := created["id"].(string)
	seatsPath := "/webinars/" + id + "/seats"

	seatsOf := func() any {
		_, body := env.do(t, http.MethodGet, "/webinars/"+id, alice, nil)
		return body["seats"]
	}

	status, body := env.do(t, http.MethodPost, seatsPath, alice, map[string]any{"seats": "200"})
	if status != http.StatusOK || body["message"] != "Seats updated" {
		t.Fatalf("expected 200 Seats updated, got %d %v", status, body)
	}
	if got := seatsOf(); got != float64(200) {
		t.Fatalf("expected 200 seats, got %v", got)
	}

	status, body = env.do(t, http.MethodPost, seatsPath, bob, map[string]any{"seats": 300})
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %v", status, body)
	}
	if body["message"] != "User is not allowed to update this webinar" {
		t.Fatalf("unexpected message %v", body["message"])
	}

	status, body = env.do(t, http.MethodPost, seatsPath, alice, map[string]any{"seats": 50})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %v", status, body)
	}
	if body["message"] != "You cannot reduce the number of seats" {
		t.Fatalf("unexpected message %v", body["message"])
	}

	status, _ = env.do(t, http.MethodPost, seatsPath, alice, map[string]any{"seats": 1001})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 above maximum, got %d", status)
	}

	if got := seatsOf(); got != float64(200) {
		t.Fatalf("expected seats to remain 200, got %v", got)
	}
}

func TestWebinars_ChangeSeatsNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	alice := env.login(t, "alice@example.com")

	status, body := env.do(t, http.MethodPost, "/webinars/missing/seats", alice, map[string]any{"seats": 10})
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d %v", status, body)
	}
	if body["message"] != "Webinar not found" || body["code"] != "not_found" {
		t.Fatalf("unexpected body %v", body)
	}

	status, _ = env.do(t, http.MethodGet, "/webinars/missing", alice, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestWebinars_RequireAuthentication(t *testing.T) {
	env := newTestEnv(t, nil)

	status, body := env.do(t, http.MethodPost, "/webinars", "", organizeBody(100, now.Add(4*24*time.Hour)))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d %v", status, body)
	}

	status, _ = env.do(t, http.MethodPost, "/webinars/any/seats", "not-a-token", map[string]any{"seats": 10})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", status)
	}
}
