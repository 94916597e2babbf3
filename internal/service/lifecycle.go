package service

import (
	"ristorante/internal/db"
	"ristorante/internal/reserr"
)

// legalTransitions is the reservation state machine. Missing entries
// are illegal; cancelled and completed have no outgoing transitions.
var legalTransitions = map[string]map[string]bool{
	db.StatusPending: {
		db.StatusConfirmed: true,
		db.StatusCancelled: true,
		db.StatusCompleted: true,
	},
	db.StatusConfirmed: {
		db.StatusCancelled: true,
		db.StatusCompleted: true,
	},
}

// CheckTransition returns nil if the status change from → to is legal,
// and an *reserr.IllegalTransitionError naming both statuses otherwise.
func CheckTransition(from, to string) error {
	if legalTransitions[from][to] {
		return nil
	}
	return &reserr.IllegalTransitionError{From: from, To: to}
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(status string) bool {
	return status == db.StatusCancelled || status == db.StatusCompleted
}
