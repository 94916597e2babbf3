package api

import (
	"encoding/json"
	"net/http"

	"ristorante/internal/reserr"
	"ristorante/internal/service"
)

type AdminAuthHandler struct {
	service service.AdminAuthService
}

func NewAdminAuthHandler(svc service.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc}
}

// Login handles POST /admin/login.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, reserr.NewValidationError("", "invalid request body"))
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Error: "invalid credentials"})
		return
	}
	writeData(w, http.StatusOK, LoginResponse{Token: token})
}
