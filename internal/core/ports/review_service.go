package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// ReviewInput carries the fields of a new review.
type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

// ReviewService defines use-case operations for reviews.
type ReviewService interface {
	List(ctx context.Context, q ListQuery) (*Page[*domain.Review], error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Review, error)
	Get(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, who domain.Identity, bootcampID string, in ReviewInput) (*domain.Review, error)
	Update(ctx context.Context, who domain.Identity, id string, patch ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, who domain.Identity, id string) error
}
