package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Haitham314s/blog-api/internal/metrics"
	"github.com/Haitham314s/blog-api/internal/middleware"
	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/Haitham314s/blog-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// ==========================
// BlogHandler
// ==========================
type BlogHandler struct {
	Blogs *service.BlogService
}

type blogInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func decodeBlogInput(w http.ResponseWriter, r *http.Request) (blogInput, bool) {
	var input blogInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return input, false
	}
	fields := make(map[string]string)
	if input.Title == "" {
		fields["title"] = "required"
	}
	if input.Content == "" {
		fields["content"] = "required"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return input, false
	}
	return input, true
}

// ==========================
// Create Post (POST /blog, auth required)
// ==========================
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "token could not be verified or is expired", http.StatusUnauthorized)
		return
	}

	input, ok := decodeBlogInput(w, r)
	if !ok {
		return
	}

	post, err := h.Blogs.CreatePost(r.Context(), user, input.Title, input.Content)
	if err != nil {
		ServiceError(w, err)
		return
	}

	metrics.IncPostMutations("create")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(post)
}

// ==========================
// List Posts (GET /blog?limit=)
// ==========================
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 {
			limit = val
		}
	}

	posts, err := h.Blogs.ListPosts(r.Context(), limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// ==========================
// Get Post (GET /blog/{id})
// ==========================
func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.Blogs.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			JSONError(w, "blog post not found", http.StatusNotFound)
			return
		}
		ServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Update Post (PUT /blog/{id}, auth + ownership required)
// ==========================
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "token could not be verified or is expired", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	input, ok := decodeBlogInput(w, r)
	if !ok {
		return
	}

	post, err := h.Blogs.UpdatePost(r.Context(), user, id, input.Title, input.Content)
	if err != nil {
		h.mutationError(w, err)
		return
	}

	metrics.IncPostMutations("update")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// ==========================
// Delete Post (DELETE /blog/{id}, auth + ownership required)
// ==========================
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		JSONError(w, "token could not be verified or is expired", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.Blogs.DeletePost(r.Context(), user, id); err != nil {
		h.mutationError(w, err)
		return
	}

	metrics.IncPostMutations("delete")
	w.WriteHeader(http.StatusNoContent)
}

// mutationError keeps the 404 vs 403 split explicit for post mutations.
func (h *BlogHandler) mutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		JSONError(w, "blog post not found", http.StatusNotFound)
	case errors.Is(err, service.ErrForbidden):
		JSONError(w, "not the author of this blog post", http.StatusForbidden)
	default:
		ServiceError(w, err)
	}
}
