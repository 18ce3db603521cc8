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

// AccountService handles registration and login.
type AccountService struct {
	users  *repo.UserRepo
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	mailer mail.Mailer

	// SendWelcomeMail controls the registration confirmation mail.
	// Mail failures never fail the registration itself.
	SendWelcomeMail bool
}

func NewAccountService(users *repo.UserRepo, hasher *auth.PasswordHasher, tokens *auth.TokenService, mailer mail.Mailer) *AccountService {
	return &AccountService{users: users, hasher: hasher, tokens: tokens, mailer: mailer}
}

// Register creates a user. Name uniqueness is checked before email, so when
// both collide the reported conflict is always the name.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if taken, err := s.exists(ctx, s.users.GetByName, name); err != nil {
		return nil, fmt.Errorf("check name: %w", err)
	} else if taken {
		return nil, &ConflictError{Field: "name"}
	}

	if taken, err := s.exists(ctx, s.users.GetByEmail, email); err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	} else if taken {
		return nil, &ConflictError{Field: "email"}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	apiKey, err := auth.NewAPIKey()
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	user, err := s.users.Create(ctx, name, email, hash, apiKey)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.SendWelcomeMail && s.mailer != nil {
		vars := map[string]any{"title": "Registration Successful", "name": user.Name}
		if err := s.mailer.Send(ctx, mail.TemplateRegistered, user.Email, vars); err != nil {
			slog.Error("welcome mail failed", "user_id", user.ID, "err", err)
		}
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token. The identifier is
// tried as a display name first, then as an email. Unknown identifier and
// wrong password both return the same ErrForbidden.
func (s *AccountService) Login(ctx context.Context, nameOrEmail, password string) (string, error) {
	user, err := s.users.GetByName(ctx, nameOrEmail)
	if errors.Is(err, sql.ErrNoRows) {
		user, err = s.users.GetByEmail(ctx, nameOrEmail)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrForbidden
	}
	if err != nil {
		return "", fmt.Errorf("look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrForbidden
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (s *AccountService) exists(ctx context.Context, lookup func(context.Context, string) (*models.User, error), value string) (bool, error) {
	_, err := lookup(ctx, value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
