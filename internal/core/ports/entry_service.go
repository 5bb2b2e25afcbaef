package ports

import (
	"context"

	"github.com/brandbook/entries-api/internal/core/domain"
)

// EntryService implements the per-user entry collection.
type EntryService interface {
	List(ctx context.Context, user *domain.User) (domain.Entries, error)
	Create(ctx context.Context, user *domain.User, fields domain.EntryFields) (domain.Entries, error)
	Update(ctx context.Context, user *domain.User, id string, fields domain.EntryFields) (domain.Entries, error)
	Delete(ctx context.Context, user *domain.User, id string) (domain.Entries, error)
}
