package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/msomdec/webinars/internal/domain"
)

// seatCount accepts either a JSON number or a string holding an integer.
type seatCount int

func (s *seatCount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = seatCount(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("seats must be an integer")
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return fmt.Errorf("seats must be an integer, got %q", str)
	}
	*s = seatCount(n)
	return nil
}

type organizeWebinarRequest struct {
	Title     string    `json:"title" validate:"required"`
	Seats     seatCount `json:"seats"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

type changeSeatsRequest struct {
	Seats seatCount `json:"seats"`
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// WebinarDTO is the JSON representation of a webinar.
type WebinarDTO struct {
	ID          string `json:"id"`
	OrganizerID string `json:"organizerId"`
	Title       string `json:"title"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Seats       int    `json:"seats"`
}

func toWebinarDTO(w *domain.Webinar) WebinarDTO {
	p := w.Props()
	return WebinarDTO{
		ID:          p.ID,
		OrganizerID: p.OrganizerID,
		Title:       p.Title,
		StartDate:   p.StartDate.UTC().Format(time.RFC3339),
		EndDate:     p.EndDate.UTC().Format(time.RFC3339),
		Seats:       p.Seats,
	}
}

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}
