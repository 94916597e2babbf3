// Package storetest provides an in-memory reservation store with the
// same atomicity contract as the SQL repository, for use in tests.
package storetest

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ristorante/internal/db"
	"ristorante/internal/reserr"
	"ristorante/internal/slot"
)

type MemStore struct {
	mu           sync.Mutex
	reservations map[uuid.UUID]db.Reservation
}

func NewMemStore() *MemStore {
	return &MemStore{reservations: make(map[uuid.UUID]db.Reservation)}
}

// Seed inserts a reservation directly, bypassing admission. Returns
// the generated ID.
func (m *MemStore) Seed(date time.Time, timeStr string, people int, status string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := db.Reservation{
		ID:             uuid.New(),
		FullName:       "Seed Guest",
		Email:          "seed@example.com",
		Phone:          "+10000000000",
		Date:           date,
		Time:           timeStr,
		NumberOfPeople: people,
		Status:         status,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	m.reservations[res.ID] = res
	return res.ID
}

func (m *MemStore) occupancyLocked(date time.Time, timeStr string) int {
	total := 0
	key := slot.Key(date, timeStr)
	for _, res := range m.reservations {
		if res.HoldsSeat() && slot.Key(res.Date, res.Time) == key {
			total += res.NumberOfPeople
		}
	}
	return total
}

func (m *MemStore) BookSlot(res *db.Reservation, capacity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.occupancyLocked(res.Date, res.Time)
	if current+res.NumberOfPeople > capacity {
		return &reserr.CapacityExceededError{
			Date:      res.Date.Format(slot.DateLayout),
			Time:      res.Time,
			Requested: res.NumberOfPeople,
			Current:   current,
			Remaining: capacity - current,
		}
	}

	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	m.reservations[res.ID] = *res
	return nil
}

func (m *MemStore) GetByID(id uuid.UUID) (*db.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.reservations[id]
	if !ok {
		return nil, &reserr.NotFoundError{ID: id.String()}
	}
	return &res, nil
}

func (m *MemStore) ListByDateRange(from, to time.Time) ([]db.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Reservation
	for _, res := range m.reservations {
		if res.Date.Before(from) || res.Date.After(to) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (m *MemStore) List(date, status string) ([]db.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Reservation
	for _, res := range m.reservations {
		if date != "" && res.Date.Format(slot.DateLayout) != date {
			continue
		}
		if status != "" && res.Status != status {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (m *MemStore) UpdateStatus(id uuid.UUID, newStatus string, check func(current string) error) (*db.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.reservations[id]
	if !ok {
		return nil, &reserr.NotFoundError{ID: id.String()}
	}
	if err := check(res.Status); err != nil {
		return nil, err
	}
	res.Status = newStatus
	res.UpdatedAt = time.Now()
	m.reservations[id] = res
	return &res, nil
}

func (m *MemStore) Delete(id uuid.UUID, check func(current string) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.reservations[id]
	if !ok {
		return &reserr.NotFoundError{ID: id.String()}
	}
	if err := check(res.Status); err != nil {
		return err
	}
	delete(m.reservations, id)
	return nil
}
