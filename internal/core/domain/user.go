package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("unable to login")
	ErrUnauthorized       = errors.New("please authenticate")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
	ErrConcurrentUpdate   = errors.New("entries were modified by another request")
	ErrInvalidInput       = errors.New("invalid input")
)

// User models an account and owns its entries.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Entries      Entries   `json:"entries"`
	Version      int64     `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail returns the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
