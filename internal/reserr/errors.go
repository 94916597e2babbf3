package reserr

import "fmt"

// ValidationError reports malformed or out-of-range input on a
// reservation request. Always recoverable by correcting the input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvalidRangeError reports a malformed availability query range.
type InvalidRangeError struct {
	Message string
}

func (e *InvalidRangeError) Error() string {
	return e.Message
}

// CapacityExceededError reports that a slot cannot fit the requested
// party. Current and Remaining let the caller present a precise
// message instead of guessing.
type CapacityExceededError struct {
	Date      string
	Time      string
	Requested int
	Current   int
	Remaining int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("slot %s %s cannot seat %d more people: %d already booked, %d remaining",
		e.Date, e.Time, e.Requested, e.Current, e.Remaining)
}

// IllegalTransitionError reports a status change the lifecycle does
// not permit, naming the current and requested status.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot change reservation status from %q to %q", e.From, e.To)
}

// ImmutableRecordError reports an attempt to mutate or delete a
// completed reservation.
type ImmutableRecordError struct {
	ID     string
	Status string
}

func (e *ImmutableRecordError) Error() string {
	return fmt.Sprintf("reservation %s is %s and can no longer be modified or deleted", e.ID, e.Status)
}

// NotFoundError reports a lookup for a reservation that does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reservation %s not found", e.ID)
}
