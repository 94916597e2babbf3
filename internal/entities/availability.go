package entities

// DayAvailability is the per-day view a booking client uses to decide
// what to offer. TimeSlots maps every bookable slot start to its
// current occupancy; RemainingCapacity is the minimum remaining seats
// across the day's slots, a coarse day-level hint.
type DayAvailability struct {
	TimeSlots         map[string]int `json:"timeSlots"`
	RemainingCapacity int            `json:"remainingCapacity"`
	IsFull            bool           `json:"isFull"`
}

type ReservationsList struct {
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}
