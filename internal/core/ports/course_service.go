package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// CourseInput carries the fields of a new course.
type CourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         domain.MinimumSkill
	ScholarshipAvailable bool
}

// CourseService defines use-case operations for courses.
type CourseService interface {
	List(ctx context.Context, q ListQuery) (*Page[*domain.Course], error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	GetInBootcamp(ctx context.Context, bootcampID, id string) (*domain.Course, error)
	Create(ctx context.Context, who domain.Identity, bootcampID string, in CourseInput) (*domain.Course, error)
	Update(ctx context.Context, who domain.Identity, id string, patch CoursePatch) (*domain.Course, error)
	Delete(ctx context.Context, who domain.Identity, id string) error
}
