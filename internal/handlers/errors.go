package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Haitham314s/blog-api/internal/service"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// ServiceError maps a service-layer failure to the HTTP status contract:
// NotFound 404, Conflict 409, Unauthorized 401, Forbidden 403, everything
// else 500 with the generic message.
func ServiceError(w http.ResponseWriter, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		msg := "email already exists"
		if conflict.Field == "name" {
			msg = "username is already taken"
		}
		JSONError(w, msg, http.StatusConflict)
	case errors.Is(err, service.ErrNotFound):
		JSONError(w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrUnauthorized):
		JSONError(w, "token could not be verified or is expired", http.StatusUnauthorized)
	case errors.Is(err, service.ErrForbidden):
		JSONError(w, "forbidden", http.StatusForbidden)
	default:
		slog.Error("internal error", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
	}
}
