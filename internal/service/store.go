package service

import (
	"time"

	"github.com/google/uuid"

	"ristorante/internal/db"
)

// ReservationStore is the persistence contract the reservation
// services depend on. repository.ReservationRepository implements it
// against PostgreSQL; tests use an in-memory implementation.
type ReservationStore interface {
	// BookSlot atomically re-checks the slot's occupancy and inserts
	// res if the party fits within capacity, returning
	// *reserr.CapacityExceededError when it does not.
	BookSlot(res *db.Reservation, capacity int) error

	GetByID(id uuid.UUID) (*db.Reservation, error)
	ListByDateRange(from, to time.Time) ([]db.Reservation, error)
	List(date, status string) ([]db.Reservation, error)

	// UpdateStatus re-reads the current status, passes it through
	// check, and applies newStatus only if check returns nil. The
	// read, check and write are atomic with respect to other
	// mutations of the same record.
	UpdateStatus(id uuid.UUID, newStatus string, check func(current string) error) (*db.Reservation, error)

	// Delete removes the record, subject to the same check protocol
	// as UpdateStatus.
	Delete(id uuid.UUID, check func(current string) error) error
}
