// Package models defines the backend's request, response and user records.
package models

// RegisterRequest is the JSON payload for user registration. Password
// confirmation and terms agreement are validated client-side and never
// transmitted.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,fullname"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the JSON payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token issued on successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// FullName is the display name given at registration.
	FullName string
	// Email is the login email address, unique per account.
	Email string
	// Phone is the contact phone number.
	Phone string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash []byte
}
