package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// BootcampPatch holds the fields of a partial bootcamp update. Nil fields are kept.
type BootcampPatch struct {
	Name          *string
	Slug          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *domain.Address
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGI      *bool
}

// BootcampRepository defines persistence operations for bootcamps.
//
// Update and Delete take an ownerID; when non-empty the write only matches a
// document owned by that user. A write that matches nothing returns
// domain.ErrBootcampNotFound.
type BootcampRepository interface {
	Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error)
	FindByID(ctx context.Context, id string) (*domain.Bootcamp, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Bootcamp, int64, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Update(ctx context.Context, id, ownerID string, patch BootcampPatch) (*domain.Bootcamp, error)
	Delete(ctx context.Context, id, ownerID string) error
	DeleteAll(ctx context.Context) (int64, error)
	SetAverageCost(ctx context.Context, id string, cost float64) error
	SetAverageRating(ctx context.Context, id string, rating float64) error
}
