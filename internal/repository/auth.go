// Package repository provides PostgreSQL persistence for the auth service.
package repository

import (
	"context"
	"database/sql"

	"github.com/identityhub/idhub/internal/models"
)

// PostgresAuthRepository implements the auth persistence operations on
// PostgreSQL.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a repository with the given database
// connection.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// EmailExists checks whether a user with the given email exists.
func (r *PostgresAuthRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists)
	return exists, err
}

// CreateUser inserts a new user record.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, full_name, email, phone, password_hash) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.FullName, user.Email, user.Phone, user.PasswordHash,
	)
	return err
}

// UserByEmail fetches a user by email. Returns sql.ErrNoRows when absent.
func (r *PostgresAuthRepository) UserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, full_name, email, phone, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash)
	return u, err
}

// CreateSession stores an issued session token for a user.
func (r *PostgresAuthRepository) CreateSession(ctx context.Context, token, userID string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO sessions (token, user_id) VALUES ($1, $2)`,
		token, userID,
	)
	return err
}
