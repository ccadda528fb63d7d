package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "ADMIN"
	RoleDriver = "DRIVER"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleDriver
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidToken = errors.New("invalid token")
var ErrUserNotFound = errors.New("user not found")

// ErrAccessDenied is returned for any single-resource operation where the
// resource is absent or owned by a different user. The two cases are never
// distinguished in responses.
var ErrAccessDenied = errors.New("access to resource denied")

// User models an authenticated actor. Every owned resource carries the id of
// the user that created it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
