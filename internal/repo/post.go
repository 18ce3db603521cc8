package repo

import (
	"context"
	"database/sql"

	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/google/uuid"
)

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

// ==========================
// Create Post
// ==========================
func (r *PostRepo) Create(ctx context.Context, title, content, authorID, authorName string) (*models.Post, error) {
	query := `
		INSERT INTO posts (id, title, content, author_id, author_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, content, author_id, author_name, created_at
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, uuid.NewString(), title, content, authorID, authorName).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.AuthorName, &post.CreatedAt)

	if err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// Get By ID
// ==========================
func (r *PostRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT id, title, content, author_id, author_name, created_at
		FROM posts
		WHERE id = $1
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.AuthorName, &post.CreatedAt)

	if err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// List Posts (newest first)
// ==========================
func (r *PostRepo) List(ctx context.Context, limit int) ([]models.Post, error) {
	query := `
		SELECT id, title, content, author_id, author_name, created_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.AuthorName, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// ==========================
// Update Post (title and content only; author fields are immutable)
// ==========================
func (r *PostRepo) Update(ctx context.Context, id, title, content string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = $1, content = $2
		WHERE id = $3
		RETURNING id, title, content, author_id, author_name, created_at
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, title, content, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID, &post.AuthorName, &post.CreatedAt)

	if err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// Delete Post
// ==========================
func (r *PostRepo) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
