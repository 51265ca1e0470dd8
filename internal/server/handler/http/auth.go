// Package http provides the HTTP handlers for user registration and login.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/identityhub/idhub/internal/models"
	"github.com/identityhub/idhub/internal/service"
	"github.com/identityhub/idhub/internal/validation"
)

// registerMessages are the server-side messages for payload validation.
var registerMessages = map[string]string{
	"fullName.required": "Full name is required",
	"fullName.min":      "Full name must be at least 2 characters",
	"fullName.fullname": "Full name can only contain letters and spaces",
	"email.required":    "Email is required",
	"email.email":       "Please enter a valid email address",
	"phone.required":    "Phone number is required",
	"phone.phone":       "Phone number must be exactly 10 digits",
	"password.required": "Password is required",
	"password.min":      "Password must be at least 8 characters",
}

// AuthService defines the operations required by the HTTP handlers.
type AuthService interface {
	// RegisterUser creates an account; service.ErrEmailTaken on duplicates.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	AuthService AuthService
	Log         *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Register handles POST /auth/user/register. The payload is validated
// field-by-field before any persistence work; a duplicate email yields 409
// with the message the client surfaces verbatim.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request"})
		return
	}

	if errs := validation.Validate(req, registerMessages); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "validation failed",
			"errors":  errs,
		})
		return
	}

	user, err := h.AuthService.RegisterUser(r.Context(), req)
	if errors.Is(err, service.ErrEmailTaken) {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered"})
		return
	}
	if err != nil {
		h.Log.Error("register user", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID})
}

// Login handles POST /auth/user/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request"})
		return
	}

	token, err := h.AuthService.Login(r.Context(), req)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		h.Log.Error("login", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{Token: token})
}
