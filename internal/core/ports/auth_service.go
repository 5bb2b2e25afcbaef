package ports

import (
	"context"

	"github.com/brandbook/entries-api/internal/core/domain"
)

// RegisterInput carries the fields accepted by registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by every operation that issues a token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, user *domain.User, current, next string) (*AuthResult, error)
	// VerifyToken resolves a bearer token to its user.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// LoginThrottle limits repeated failed logins per email.
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
