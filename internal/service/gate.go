package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Haitham314s/blog-api/internal/auth"
	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/repo"
)

// AuthService resolves bearer tokens to user records. Every protected
// operation goes through CurrentUser, either via the HTTP auth middleware or
// directly for flows that receive a raw token (password reset confirm).
type AuthService struct {
	users  *repo.UserRepo
	tokens *auth.TokenService
}

func NewAuthService(users *repo.UserRepo, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// CurrentUser verifies the token and loads the subject user. An invalid or
// expired token and a token whose subject no longer exists both return
// ErrUnauthorized, so callers cannot probe which accounts exist.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return user, nil
}
