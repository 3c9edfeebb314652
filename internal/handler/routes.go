package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/msomdec/webinars/internal/service"
)

// Services bundles what the router needs. Limiter may be nil to disable
// rate limiting.
type Services struct {
	Auth         *service.AuthService
	Webinars     *service.WebinarService
	Store        Pinger
	Limiter      *service.TokenBucket
	CookieSecure bool
}

// NewRouter builds the HTTP API.
func NewRouter(s Services) http.Handler {
	authHandler := NewAuthHandler(s.Auth, s.CookieSecure)
	webinarHandler := NewWebinarHandler(s.Webinars)

	limit := func(next http.Handler) http.Handler { return next }
	if s.Limiter != nil {
		limit = RateLimit(s.Limiter)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(SecurityHeaders)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
	})

	r.Get("/healthz", HandleHealthz(s.Store))

	r.Route("/auth", func(r chi.Router) {
		r.With(limit).Post("/register", authHandler.HandleRegister)
		r.With(limit).Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)
	})

	r.Route("/webinars", func(r chi.Router) {
		r.Use(RequireAuth(s.Auth))
		r.With(limit).Post("/", webinarHandler.HandleOrganize)
		r.Get("/{id}", webinarHandler.HandleGet)
		r.With(limit).Post("/{id}/seats", webinarHandler.HandleChangeSeats)
	})

	return r
}
