package service

import (
	"fmt"
	"time"

	"ristorante/internal/db"
	"ristorante/internal/entities"
	"ristorante/internal/reserr"
	"ristorante/internal/slot"
)

// AvailabilityService is the read path: it derives per-day, per-slot
// occupancy from the reservation store. Results are advisory; the
// authoritative capacity check happens at admission time.
type AvailabilityService struct {
	store    ReservationStore
	grid     slot.Grid
	capacity int
	loc      *time.Location
}

func NewAvailabilityService(store ReservationStore, grid slot.Grid, capacity int, loc *time.Location) *AvailabilityService {
	return &AvailabilityService{store: store, grid: grid, capacity: capacity, loc: loc}
}

// SlotIndex aggregates the booked-seat count per slot time for the
// given day: the sum of party sizes over reservations that still hold
// a seat. Absent keys mean zero occupancy. Pure aggregation, no side
// effects.
func SlotIndex(day time.Time, reservations []db.Reservation) map[string]int {
	index := make(map[string]int)
	dayKey := day.Format(slot.DateLayout)
	for i := range reservations {
		res := &reservations[i]
		if !res.HoldsSeat() {
			continue
		}
		if res.Date.Format(slot.DateLayout) != dayKey {
			continue
		}
		index[res.Time] += res.NumberOfPeople
	}
	return index
}

// AvailableDates computes, for every day in the inclusive
// [startDate, endDate] range, the occupancy of each bookable slot,
// the day's minimum remaining capacity, and whether the day is full.
func (s *AvailabilityService) AvailableDates(startDate, endDate string) (map[string]entities.DayAvailability, error) {
	if startDate == "" || endDate == "" {
		return nil, &reserr.InvalidRangeError{Message: "startDate and endDate are required"}
	}
	start, err := slot.ParseDate(startDate, s.loc)
	if err != nil {
		return nil, &reserr.InvalidRangeError{Message: fmt.Sprintf("invalid startDate %q", startDate)}
	}
	end, err := slot.ParseDate(endDate, s.loc)
	if err != nil {
		return nil, &reserr.InvalidRangeError{Message: fmt.Sprintf("invalid endDate %q", endDate)}
	}
	if end.Before(start) {
		return nil, &reserr.InvalidRangeError{Message: fmt.Sprintf("endDate %s is before startDate %s", endDate, startDate)}
	}

	reservations, err := s.store.ListByDateRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("error loading reservations for range: %w", err)
	}

	result := make(map[string]entities.DayAvailability)
	times := s.grid.Times()
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		index := SlotIndex(day, reservations)

		timeSlots := make(map[string]int, len(times))
		minRemaining := s.capacity
		full := true
		for _, t := range times {
			occupied := index[t]
			timeSlots[t] = occupied
			remaining := s.capacity - occupied
			if remaining < 0 {
				remaining = 0
			}
			if remaining < minRemaining {
				minRemaining = remaining
			}
			if remaining > 0 {
				full = false
			}
		}

		result[day.Format(slot.DateLayout)] = entities.DayAvailability{
			TimeSlots:         timeSlots,
			RemainingCapacity: minRemaining,
			IsFull:            full,
		}
	}
	return result, nil
}
