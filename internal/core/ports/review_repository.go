package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// ReviewPatch holds the fields of a partial review update. Nil fields are kept.
type ReviewPatch struct {
	Title  *string
	Text   *string
	Rating *int
}

// ReviewRepository defines persistence operations for reviews. Create returns
// domain.ErrDuplicateReview when the user already reviewed the bootcamp.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Review, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Review, error)
	Update(ctx context.Context, id, ownerID string, patch ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id, ownerID string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	AverageRating(ctx context.Context, bootcampID string) (float64, error)
}
