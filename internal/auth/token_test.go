package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_IssueVerify(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "user-123" {
		t.Errorf("subject: got %q, want %q", got, "user-123")
	}
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), -time.Second)

	tok, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("test-secret"), time.Hour)

	tok, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = svc.Verify(tok[:len(tok)-2] + "xx")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}

	_, err = svc.Verify("not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage token, got %v", err)
	}
}

func TestTokenService_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	svc := NewTokenService(secret, time.Hour)

	// A well-signed token without a subject claim must still be rejected.
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
