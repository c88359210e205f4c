package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// CoursePatch holds the fields of a partial course update. Nil fields are kept.
type CoursePatch struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *domain.MinimumSkill
	ScholarshipAvailable *bool
}

// CourseRepository defines persistence operations for courses. The ownerID
// argument of Update and Delete has the same meaning as in BootcampRepository.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindInBootcamp(ctx context.Context, bootcampID, id string) (*domain.Course, error)
	List(ctx context.Context, q ListQuery) ([]*domain.Course, int64, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Course, error)
	Update(ctx context.Context, id, ownerID string, patch CoursePatch) (*domain.Course, error)
	Delete(ctx context.Context, id, ownerID string) error
	DeleteByBootcamp(ctx context.Context, bootcampID string) (int64, error)
	// AverageTuition returns the mean tuition of a bootcamp's courses, 0 when it has none.
	AverageTuition(ctx context.Context, bootcampID string) (float64, error)
}
