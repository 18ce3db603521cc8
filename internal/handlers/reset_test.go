package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Haitham314s/blog-api/internal/auth"
	"github.com/Haitham314s/blog-api/internal/repo"
	"github.com/Haitham314s/blog-api/internal/service"
	"golang.org/x/crypto/bcrypt"
)

type nopMailer struct{}

func (nopMailer) Send(ctx context.Context, templateName, to string, vars map[string]any) error {
	return nil
}

func newResetHandler(t *testing.T) (*ResetHandler, *auth.TokenService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	users := repo.NewUserRepo(db)
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	gate := service.NewAuthService(users, tokens)
	resets := service.NewResetService(users, gate, tokens, hasher, nopMailer{}, "http://localhost:8001/reset")
	return &ResetHandler{Resets: resets}, tokens, mock, func() { db.Close() }
}

func TestResetHandler_Request(t *testing.T) {
	h, _, mock, done := newResetHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "alice", "alice@example.com", "hash", "key", time.Now()))

	body, _ := json.Marshal(map[string]string{"email": "alice@example.com"})
	req := httptest.NewRequest("POST", "/password/request", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Request(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Request status: got %d, want 200", rr.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["message"] == "" {
		t.Error("missing confirmation message")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestResetHandler_Request_UnknownEmail(t *testing.T) {
	h, _, mock, done := newResetHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com"})
	req := httptest.NewRequest("POST", "/password/request", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Request(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Request status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestResetHandler_Confirm(t *testing.T) {
	h, tokens, mock, done := newResetHandler(t)
	defer done()

	tok, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "alice", "alice@example.com", "oldhash", "key", time.Now()))
	mock.ExpectExec(`UPDATE users SET password_hash = \$1 WHERE id = \$2`).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "alice", "alice@example.com", "newhash", "key", time.Now()))

	body, _ := json.Marshal(map[string]string{"password": "new_secret"})
	req := httptest.NewRequest("PUT", "/password/reset?token="+tok, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Confirm(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Confirm status: got %d, want 200", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestResetHandler_Confirm_BadToken(t *testing.T) {
	h, _, mock, done := newResetHandler(t)
	defer done()

	// No store expectations: a tampered token must not mutate anything.
	body, _ := json.Marshal(map[string]string{"password": "new_secret"})
	req := httptest.NewRequest("PUT", "/password/reset?token=tampered", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Confirm(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("Confirm status: got %d, want 401", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
