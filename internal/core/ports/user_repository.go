package ports

import (
	"context"

	"github.com/brandbook/entries-api/internal/core/domain"
)

// UserRepository defines persistence operations for user documents.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SaveEntries rewrites the user's whole entry list. user.Version is the
	// revision the caller read; it is bumped on success.
	SaveEntries(ctx context.Context, user *domain.User) error
}
