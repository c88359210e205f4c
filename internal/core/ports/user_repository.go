package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// UserPatch lists the account fields a user may change. Nil fields are kept.
type UserPatch struct {
	Name  *string
	Email *string
}

// UserRepository defines the persistence operations on user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateDetails(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
