package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Haitham314s/blog-api/internal/metrics"
	"github.com/Haitham314s/blog-api/internal/service"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Accounts *service.AccountService
}

// ==========================
// Login (username may be a display name or an email)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	token, err := h.Accounts.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		metrics.IncLogins("failure")
		if errors.Is(err, service.ErrForbidden) {
			// One message for unknown identifier and wrong password alike.
			JSONError(w, "invalid user credentials", http.StatusForbidden)
			return
		}
		ServiceError(w, err)
		return
	}

	metrics.IncLogins("success")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
