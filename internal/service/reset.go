package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Haitham314s/blog-api/internal/auth"
	"github.com/Haitham314s/blog-api/internal/mail"
	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/repo"
)

// ResetService implements the password reset flow.
//
// The token mailed out is an ordinary access token bound to the user: it is
// not scope-restricted to password changes and will authenticate any
// protected endpoint until it expires. That is inherited behavior, kept on
// purpose rather than silently tightened.
type ResetService struct {
	users  *repo.UserRepo
	gate   *AuthService
	tokens *auth.TokenService
	hasher *auth.PasswordHasher
	mailer mail.Mailer

	// resetLinkBase is the URL the token is appended to, e.g.
	// https://blog.example.com/reset -> .../reset?token=<token>.
	resetLinkBase string
}

func NewResetService(users *repo.UserRepo, gate *AuthService, tokens *auth.TokenService, hasher *auth.PasswordHasher, mailer mail.Mailer, resetLinkBase string) *ResetService {
	return &ResetService{
		users:         users,
		gate:          gate,
		tokens:        tokens,
		hasher:        hasher,
		mailer:        mailer,
		resetLinkBase: resetLinkBase,
	}
}

// RequestReset mints a token for the user with the given email and mails a
// reset link. Mail delivery is fire-and-forget: a failed send is logged and
// the request still succeeds, so callers cannot observe SMTP health.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("look up user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	vars := map[string]any{
		"title":      "Password Reset",
		"name":       user.Name,
		"reset_link": fmt.Sprintf("%s?token=%s", s.resetLinkBase, token),
	}
	if err := s.mailer.Send(ctx, mail.TemplatePasswordReset, user.Email, vars); err != nil {
		slog.Error("password reset mail failed", "user_id", user.ID, "err", err)
	}
	return nil
}

// ConfirmReset resolves the token through the authentication gate, replaces
// the user's password hash, and returns the updated record. A bad token
// mutates nothing.
func (s *ResetService) ConfirmReset(ctx context.Context, token, newPassword string) (*models.User, error) {
	user, err := s.gate.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Account vanished between gate resolution and the write.
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("update password: %w", err)
	}

	updated, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return updated, nil
}
