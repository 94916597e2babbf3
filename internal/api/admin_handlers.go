package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"ristorante/internal/reserr"
	"ristorante/internal/service"
)

type AdminHandler struct {
	Reservations *service.ReservationService
}

func NewAdminHandler(reservations *service.ReservationService) *AdminHandler {
	return &AdminHandler{Reservations: reservations}
}

// ListReservations handles GET /admin/reservations?date=&status=.
func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	status := r.URL.Query().Get("status")

	list, err := h.Reservations.ListReservations(date, status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, list)
}

// UpdateReservationStatus handles PATCH /admin/reservations/{id}/status.
func (h *AdminHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, reserr.NewValidationError("id", "must be a valid UUID"))
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, reserr.NewValidationError("", "invalid request body"))
		return
	}

	res, err := h.Reservations.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, res)
}

// DeleteReservation handles DELETE /admin/reservations/{id}.
func (h *AdminHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, reserr.NewValidationError("id", "must be a valid UUID"))
		return
	}

	if err := h.Reservations.DeleteReservation(id); err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "Reservation deleted"})
}
