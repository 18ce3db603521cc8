package repo

import (
	"context"
	"database/sql"

	"github.com/Haitham314s/blog-api/internal/models"
	"github.com/google/uuid"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, apiKey string) (*models.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, api_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, api_key, created_at
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, uuid.NewString(), name, email, passwordHash, apiKey).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.APIKey, &user.CreatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, `id`, id)
}

// ==========================
// Get By Name
// ==========================
func (r *UserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	return r.getBy(ctx, `name`, name)
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, `email`, email)
}

func (r *UserRepo) getBy(ctx context.Context, column, value string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, api_key, created_at
		FROM users
		WHERE ` + column + ` = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, value).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.APIKey, &user.CreatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Update Password
// ==========================
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
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
