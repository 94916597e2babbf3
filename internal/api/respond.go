package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ristorante/internal/reserr"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

// writeError maps the domain error taxonomy onto HTTP statuses.
// Unexpected errors are logged and surfaced generically.
func writeError(w http.ResponseWriter, err error) {
	var (
		validation *reserr.ValidationError
		badRange   *reserr.InvalidRangeError
		capacity   *reserr.CapacityExceededError
		transition *reserr.IllegalTransitionError
		immutable  *reserr.ImmutableRecordError
		notFound   *reserr.NotFoundError
	)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &validation), errors.As(err, &badRange):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.As(err, &capacity), errors.As(err, &transition):
		status = http.StatusConflict
		message = err.Error()
	case errors.As(err, &immutable):
		status = http.StatusForbidden
		message = err.Error()
	case errors.As(err, &notFound):
		status = http.StatusNotFound
		message = err.Error()
	default:
		log.Printf("Internal error: %v", err)
	}

	writeJSON(w, status, Envelope{Success: false, Error: message})
}
