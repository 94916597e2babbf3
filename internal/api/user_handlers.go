package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"ristorante/internal/entities"
	"ristorante/internal/reserr"
	"ristorante/internal/service"
)

type UserReservationHandler struct {
	Reservations *service.ReservationService
	Availability *service.AvailabilityService
}

func NewUserReservationHandler(reservations *service.ReservationService, availability *service.AvailabilityService) *UserReservationHandler {
	return &UserReservationHandler{Reservations: reservations, Availability: availability}
}

// AvailableDates handles
// GET /api/available-dates?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD.
func (h *UserReservationHandler) AvailableDates(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")

	days, err := h.Availability.AvailableDates(startDate, endDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, days)
}

// CreateReservation handles POST /api/reservations.
func (h *UserReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, reserr.NewValidationError("", "invalid request body"))
		return
	}

	res, err := h.Reservations.CreateReservation(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, res)
}

// GetReservation handles GET /api/reservations/{id}.
func (h *UserReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, reserr.NewValidationError("id", "must be a valid UUID"))
		return
	}

	res, err := h.Reservations.GetReservation(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}
