package handlers

import (
	"bytes"
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

func newAuthHandler(t *testing.T) (*AuthHandler, *auth.PasswordHasher, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	accounts := service.NewAccountService(repo.NewUserRepo(db), hasher, tokens, nil)
	return &AuthHandler{Accounts: accounts}, hasher, mock, func() { db.Close() }
}

func loginRequest(t *testing.T, h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	return rr
}

func TestAuthHandler_Login(t *testing.T) {
	h, hasher, mock, done := newAuthHandler(t)
	defer done()

	hash, _ := hasher.Hash("secret_code")
	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "alice", "alice@example.com", hash, "key", time.Now()))

	rr := loginRequest(t, h, "alice", "secret_code")

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200", rr.Code)
	}
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.AccessToken == "" || out.TokenType != "bearer" {
		t.Errorf("unexpected response: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_FailuresIndistinguishable(t *testing.T) {
	h, hasher, mock, done := newAuthHandler(t)
	defer done()

	hash, _ := hasher.Hash("secret_code")

	// Wrong password for an existing user.
	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "alice", "alice@example.com", hash, "key", time.Now()))
	wrongPw := loginRequest(t, h, "alice", "wrongpw")

	// Unknown identifier: name miss, then email miss.
	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("nosuchuser").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name, email, password_hash, api_key, created_at`).
		WithArgs("nosuchuser").
		WillReturnError(sql.ErrNoRows)
	noUser := loginRequest(t, h, "nosuchuser", "secret_code")

	if wrongPw.Code != http.StatusForbidden || noUser.Code != http.StatusForbidden {
		t.Fatalf("statuses: got %d and %d, want 403 for both", wrongPw.Code, noUser.Code)
	}
	if wrongPw.Body.String() != noUser.Body.String() {
		t.Errorf("login failure bodies differ: %q vs %q", wrongPw.Body.String(), noUser.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h, _, mock, done := newAuthHandler(t)
	defer done()

	req := httptest.NewRequest("POST", "/login", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Login status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
