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
	"github.com/Haitham314s/blog-api/internal/middleware"
	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/repo"
	"github.com/Haitham314s/blog-api/internal/service"
	"github.com/go-chi/chi/v5"
)

var postCols = []string{"id", "title", "content", "author_id", "author_name", "created_at"}

// newBlogRouter mounts the blog handler behind a router that injects actor as
// the authenticated user, standing in for the auth middleware.
func newBlogRouter(t *testing.T, actor *models.User) (*chi.Mux, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &BlogHandler{Blogs: service.NewBlogService(repo.NewPostRepo(db))}

	r := chi.NewRouter()
	if actor != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middleware.WithUser(req.Context(), actor)))
			})
		})
	}
	r.Post("/blog", h.Create)
	r.Get("/blog", h.List)
	r.Get("/blog/{id}", h.Get)
	r.Put("/blog/{id}", h.Update)
	r.Delete("/blog/{id}", h.Delete)

	return r, mock, func() { db.Close() }
}

func TestBlogHandler_Create(t *testing.T) {
	r, mock, done := newBlogRouter(t, &models.User{ID: "u1", Name: "alice"})
	defer done()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(sqlmock.AnyArg(), "Title", "Content", "u1", "alice").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p1", "Title", "Content", "u1", "alice", time.Now()))

	body, _ := json.Marshal(map[string]string{"title": "Title", "content": "Content"})
	req := httptest.NewRequest("POST", "/blog", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Create status: got %d, want 201", rr.Code)
	}
	var out models.Post
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.ID != "p1" || out.AuthorID != "u1" || out.AuthorName != "alice" {
		t.Errorf("unexpected post: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Get_NotFound(t *testing.T) {
	r, mock, done := newBlogRouter(t, nil)
	defer done()

	mock.ExpectQuery(`SELECT id, title, content, author_id, author_name, created_at`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/blog/ghost", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Get status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Update_NonOwner(t *testing.T) {
	r, mock, done := newBlogRouter(t, &models.User{ID: "u2", Name: "mallory"})
	defer done()

	mock.ExpectQuery(`SELECT id, title, content, author_id, author_name, created_at`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p1", "Title", "Content", "u1", "alice", time.Now()))

	body, _ := json.Marshal(map[string]string{"title": "Hacked", "content": "x"})
	req := httptest.NewRequest("PUT", "/blog/p1", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Update status: got %d, want 403", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Update_MissingPost(t *testing.T) {
	r, mock, done := newBlogRouter(t, &models.User{ID: "u1", Name: "alice"})
	defer done()

	// Missing post is 404 even for a would-be owner: existence before ownership.
	mock.ExpectQuery(`SELECT id, title, content, author_id, author_name, created_at`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	body, _ := json.Marshal(map[string]string{"title": "T", "content": "c"})
	req := httptest.NewRequest("PUT", "/blog/ghost", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("Update status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_Delete_Owner(t *testing.T) {
	r, mock, done := newBlogRouter(t, &models.User{ID: "u1", Name: "alice"})
	defer done()

	mock.ExpectQuery(`SELECT id, title, content, author_id, author_name, created_at`).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p1", "Title", "Content", "u1", "alice", time.Now()))
	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/blog/p1", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("Delete status: got %d, want 204", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestBlogHandler_List(t *testing.T) {
	r, mock, done := newBlogRouter(t, nil)
	defer done()

	mock.ExpectQuery(`SELECT id, title, content, author_id, author_name, created_at FROM posts`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(postCols).
			AddRow("p1", "Title", "Content", "u1", "alice", time.Now()))

	req := httptest.NewRequest("GET", "/blog?limit=5", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("List status: got %d, want 200", rr.Code)
	}
	var out []models.Post
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p1" {
		t.Errorf("unexpected posts: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
