package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Haitham314s/blog-api/internal/service"
)

// ==========================
// ResetHandler
// ==========================
type ResetHandler struct {
	Resets *service.ResetService
}

// ==========================
// Request Reset (POST /password/request)
// ==========================
func (h *ResetHandler) Request(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if input.Email == "" {
		JSONValidationError(w, "validation failed", map[string]string{"email": "required"}, http.StatusBadRequest)
		return
	}

	if err := h.Resets.RequestReset(r.Context(), input.Email); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			JSONError(w, "user with this email not found", http.StatusNotFound)
			return
		}
		ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "email has been sent with instructions to reset your password",
	})
}

// ==========================
// Confirm Reset (PUT /password/reset?token=...)
// ==========================
func (h *ResetHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		JSONError(w, "token could not be verified or is expired", http.StatusUnauthorized)
		return
	}

	var input struct {
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	if input.Password == "" {
		JSONValidationError(w, "validation failed", map[string]string{"password": "required"}, http.StatusBadRequest)
		return
	}

	user, err := h.Resets.ConfirmReset(r.Context(), token, input.Password)
	if err != nil {
		ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newUserView(user, false))
}
