package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msomdec/webinars/internal/service"
)

// WebinarHandler exposes the webinar use cases over HTTP. Every route
// expects RequireAuth to have run.
type WebinarHandler struct {
	webinars *service.WebinarService
}

func NewWebinarHandler(webinars *service.WebinarService) *WebinarHandler {
	return &WebinarHandler{webinars: webinars}
}

// HandleOrganize handles POST /webinars.
func (h *WebinarHandler) HandleOrganize(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req organizeWebinarRequest
	if err := readJSON(w, r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := h.webinars.OrganizeWebinar(r.Context(), service.OrganizeWebinarInput{
		UserID:    user.ID,
		Title:     req.Title,
		Seats:     int(req.Seats),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": res.ID})
}

// HandleChangeSeats handles POST /webinars/{id}/seats.
func (h *WebinarHandler) HandleChangeSeats(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req changeSeatsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeDomainError(w, r, err)
		return
	}

	err := h.webinars.ChangeSeats(r.Context(), service.ChangeSeatsInput{
		User:      *user,
		WebinarID: chi.URLParam(r, "id"),
		Seats:     int(req.Seats),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Seats updated"})
}

// HandleGet handles GET /webinars/{id}.
func (h *WebinarHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	webinar, err := h.webinars.GetWebinar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWebinarDTO(webinar))
}
