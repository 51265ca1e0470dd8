// Package service provides registration and login business logic,
// delegating persistence to an AuthRepository.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/identityhub/idhub/internal/models"
)

// ErrEmailTaken is returned when registering an email that already has an
// account.
var ErrEmailTaken = errors.New("email already registered")

// ErrInvalidCredentials is returned when login credentials do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthRepository defines the persistence operations required by the
// authentication service.
type AuthRepository interface {
	// EmailExists returns true if a user with the given email exists.
	EmailExists(ctx context.Context, email string) (bool, error)
	// CreateUser stores a new user record.
	CreateUser(ctx context.Context, user models.User) error
	// UserByEmail fetches a user by email; sql.ErrNoRows when absent.
	UserByEmail(ctx context.Context, email string) (models.User, error)
	// CreateSession stores an issued session token for a user.
	CreateSession(ctx context.Context, token, userID string) error
}

// Service implements registration and login on top of an AuthRepository.
type Service struct {
	repo AuthRepository
}

// NewAuthService constructs a Service using the provided repository.
func NewAuthService(repo AuthRepository) *Service {
	return &Service{repo: repo}
}

// RegisterUser creates an account for req, hashing the password before it
// is stored. Returns ErrEmailTaken when the email already has an account.
func (s *Service) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown emails and
// wrong passwords both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.repo.UserByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.repo.CreateSession(ctx, token, user.ID); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}
