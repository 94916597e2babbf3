package entities

import (
	"time"

	"ristorante/internal/db"
	"ristorante/internal/slot"
)

type ReservationRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	NumberOfPeople int    `json:"numberOfPeople"`
	Notes          string `json:"notes,omitempty"`
}

type ReservationResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	NumberOfPeople int       `json:"numberOfPeople"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ReservationFromDB(res *db.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:             res.ID.String(),
		FullName:       res.FullName,
		Email:          res.Email,
		Phone:          res.Phone,
		Date:           res.Date.Format(slot.DateLayout),
		Time:           res.Time,
		NumberOfPeople: res.NumberOfPeople,
		Notes:          res.Notes,
		Status:         res.Status,
		CreatedAt:      res.CreatedAt,
		UpdatedAt:      res.UpdatedAt,
	}
}
