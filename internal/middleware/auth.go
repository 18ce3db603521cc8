package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/service"
)

type key string

const userKey key = "user"

// Auth resolves the bearer token through the authentication gate and stores
// the resulting user in the request context. Invalid tokens and tokens for
// vanished accounts get the same 401; store failures get a 500.
func Auth(gate *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := gate.CurrentUser(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					unauthorized(w)
				} else {
					jsonError(w, "internal server error", http.StatusInternalServerError)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user stored by Auth.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying user as the authenticated identity.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func unauthorized(w http.ResponseWriter) {
	jsonError(w, "token could not be verified or is expired", http.StatusUnauthorized)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
