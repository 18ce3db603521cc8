package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"time"

	"github.com/Haitham314s/blog-api/internal/middleware"
	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/service"
)

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Accounts *service.AccountService
}

// userView is the public shape of a user. The password hash never leaves the
// server; the API key is included only in the registration response.
type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	APIKey    string    `json:"api_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *models.User, withAPIKey bool) userView {
	v := userView{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
	if withAPIKey {
		v.APIKey = u.APIKey
	}
	return v
}

// ==========================
// Register (POST /users/registration)
// ==========================
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}
	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "required"
	}
	if input.Email == "" {
		fields["email"] = "required"
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if input.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	user, err := h.Accounts.Register(r.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(newUserView(user, true))
}

// ==========================
// Details (POST /users/details, auth required)
// ==========================
func (h *UserHandler) Details(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "token could not be verified or is expired", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(newUserView(user, false))
}
