package db

import (
	"time"

	"github.com/google/uuid"
)

// Reservation statuses. A reservation is created as pending and holds
// a seat until it reaches a terminal status (cancelled or completed).
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation is the persisted booking record. Date is the restaurant's
// local calendar day; Time is the slot start as "HH:MM" on the grid.
type Reservation struct {
	ID             uuid.UUID
	FullName       string
	Email          string
	Phone          string
	Date           time.Time
	Time           string
	NumberOfPeople int
	Notes          string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HoldsSeat reports whether the reservation still counts toward slot
// occupancy. Cancelled reservations never count; completed ones are
// historical and capacity-exempt.
func (r *Reservation) HoldsSeat() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// KnownStatus reports whether s is one of the four reservation statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}
