package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ristorante/internal/db"
	"ristorante/internal/entities"
	"ristorante/internal/reserr"
	"ristorante/internal/slot"
)

// ReservationService is the sole gate for creating reservations and
// for every subsequent status change or deletion. Admission holds a
// per-slot lock around the store's check-and-insert so two requests
// that individually fit but jointly overflow can never both succeed.
type ReservationService struct {
	store    ReservationStore
	grid     slot.Grid
	capacity int
	loc      *time.Location
	locks    *slotLocks
}

func NewReservationService(store ReservationStore, grid slot.Grid, capacity int, loc *time.Location) *ReservationService {
	return &ReservationService{
		store:    store,
		grid:     grid,
		capacity: capacity,
		loc:      loc,
		locks:    newSlotLocks(),
	}
}

// CreateReservation validates the request, then atomically checks the
// slot's occupancy and persists the reservation as pending.
func (s *ReservationService) CreateReservation(req *entities.ReservationRequest) (*entities.ReservationResponse, error) {
	date, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	res := &db.Reservation{
		ID:             uuid.New(),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Date:           date,
		Time:           req.Time,
		NumberOfPeople: req.NumberOfPeople,
		Notes:          req.Notes,
		Status:         db.StatusPending,
	}

	lock := s.locks.get(slot.Key(date, req.Time))
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.BookSlot(res, s.capacity); err != nil {
		return nil, err
	}
	return entities.ReservationFromDB(res), nil
}

// validate applies the admission checks in order: required fields,
// party size, time grid, date. It returns the parsed reservation date.
func (s *ReservationService) validate(req *entities.ReservationRequest) (time.Time, error) {
	required := []struct {
		field, value string
	}{
		{"fullName", req.FullName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"date", req.Date},
		{"time", req.Time},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return time.Time{}, reserr.NewValidationError(f.field, "is required")
		}
	}

	if req.NumberOfPeople < 1 || req.NumberOfPeople > s.capacity {
		return time.Time{}, reserr.NewValidationError("numberOfPeople",
			fmt.Sprintf("must be between 1 and %d", s.capacity))
	}

	if !s.grid.Contains(req.Time) {
		return time.Time{}, reserr.NewValidationError("time",
			fmt.Sprintf("%q is not a bookable time slot", req.Time))
	}

	date, err := slot.ParseDate(req.Date, s.loc)
	if err != nil {
		return time.Time{}, reserr.NewValidationError("date",
			fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD)", req.Date))
	}

	now := time.Now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if date.Before(today) {
		return time.Time{}, reserr.NewValidationError("date", "cannot be in the past")
	}
	if date.Equal(today) {
		start, err := s.grid.StartOn(date, req.Time)
		if err == nil && start.Before(now) {
			return time.Time{}, reserr.NewValidationError("time", "slot has already started today")
		}
	}

	return date, nil
}

func (s *ReservationService) GetReservation(id uuid.UUID) (*entities.ReservationResponse, error) {
	res, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	return entities.ReservationFromDB(res), nil
}

func (s *ReservationService) ListReservations(date, status string) (*entities.ReservationsList, error) {
	if status != "" && !db.KnownStatus(status) {
		return nil, reserr.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	reservations, err := s.store.List(date, status)
	if err != nil {
		return nil, err
	}
	list := &entities.ReservationsList{
		Total:        len(reservations),
		Reservations: make([]entities.ReservationResponse, 0, len(reservations)),
	}
	for i := range reservations {
		list.Reservations = append(list.Reservations, *entities.ReservationFromDB(&reservations[i]))
	}
	return list, nil
}

// UpdateStatus applies a lifecycle transition. The current status is
// re-read under a row lock by the store, so a record that has already
// reached a terminal status can never be reverted by a stale client.
func (s *ReservationService) UpdateStatus(id uuid.UUID, newStatus string) (*entities.ReservationResponse, error) {
	if !db.KnownStatus(newStatus) {
		return nil, reserr.NewValidationError("status", fmt.Sprintf("unknown status %q", newStatus))
	}
	res, err := s.store.UpdateStatus(id, newStatus, func(current string) error {
		return CheckTransition(current, newStatus)
	})
	if err != nil {
		return nil, err
	}
	return entities.ReservationFromDB(res), nil
}

// DeleteReservation removes a record. Completed reservations are
// immutable and cannot be deleted.
func (s *ReservationService) DeleteReservation(id uuid.UUID) error {
	return s.store.Delete(id, func(current string) error {
		if current == db.StatusCompleted {
			return &reserr.ImmutableRecordError{ID: id.String(), Status: current}
		}
		return nil
	})
}
