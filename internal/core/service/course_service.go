package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type CourseService struct {
	courses   ports.CourseRepository
	bootcamps ports.BootcampRepository
	log       zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, bootcamps ports.BootcampRepository, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, bootcamps: bootcamps, log: log}
}

func (s *CourseService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Course], error) {
	q = q.Normalize()
	items, total, err := s.courses.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ports.Page[*domain.Course]{Items: items, Total: total, Query: q}, nil
}

func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Course, error) {
	return s.courses.ListByBootcamp(ctx, bootcampID)
}

// Get returns the course with a short view of its bootcamp attached.
func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := s.bootcamps.FindByID(ctx, c.Bootcamp)
	switch {
	case err == nil:
		c.BootcampInfo = refOf(b)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return c, nil
}

func (s *CourseService) GetInBootcamp(ctx context.Context, bootcampID, id string) (*domain.Course, error) {
	return s.courses.FindInBootcamp(ctx, bootcampID, id)
}

// Create adds a course to a bootcamp the caller owns. The course records the
// caller as its owner.
func (s *CourseService) Create(ctx context.Context, who domain.Identity, bootcampID string, in ports.CourseInput) (*domain.Course, error) {
	if err := validateCourse(in); err != nil {
		return nil, err
	}

	b, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(s.log, who, "add a course to", "bootcamp", bootcampID, b); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	created, err := s.courses.Create(ctx, &domain.Course{
		Title:                strings.TrimSpace(in.Title),
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
		Bootcamp:             b.ID,
		User:                 who.ID,
		CreatedAt:            time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to create course")
		return nil, err
	}

	s.refreshAverageCost(ctx, b.ID)
	s.log.Info().Str("course_id", created.ID).Str("bootcamp_id", b.ID).Str("user_id", who.ID).Msg("course created")
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, who domain.Identity, id string, patch ports.CoursePatch) (*domain.Course, error) {
	if err := validateCoursePatch(patch); err != nil {
		return nil, err
	}

	current, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(s.log, who, "update", "course", id, current); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	updated, err := s.courses.Update(ctx, id, who.OwnerScope(), patch)
	if err != nil {
		return nil, err
	}

	if patch.Tuition != nil {
		s.refreshAverageCost(ctx, updated.Bootcamp)
	}
	s.log.Info().Str("course_id", id).Str("user_id", who.ID).Msg("course updated")
	return updated, nil
}

func (s *CourseService) Delete(ctx context.Context, who domain.Identity, id string) error {
	current, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeWrite(s.log, who, "delete", "course", id, current); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	if err := s.courses.Delete(ctx, id, who.OwnerScope()); err != nil {
		return err
	}

	s.refreshAverageCost(ctx, current.Bootcamp)
	s.log.Info().Str("course_id", id).Str("user_id", who.ID).Msg("course deleted")
	return nil
}

// refreshAverageCost recomputes the bootcamp's average tuition, rounded up to
// the next multiple of ten. Failures are logged and do not fail the write that
// triggered them.
func (s *CourseService) refreshAverageCost(ctx context.Context, bootcampID string) {
	avg, err := s.courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		s.log.Warn().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to compute average cost")
		return
	}
	avg = math.Ceil(avg/10) * 10
	if err := s.bootcamps.SetAverageCost(ctx, bootcampID, avg); err != nil {
		s.log.Warn().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to store average cost")
	}
}

func validateCourse(in ports.CourseInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}
	if in.Weeks <= 0 {
		return fmt.Errorf("%w: weeks must be greater than 0", domain.ErrValidation)
	}
	if in.Tuition < 0 {
		return fmt.Errorf("%w: tuition cannot be negative", domain.ErrValidation)
	}
	return validateSkill(in.MinimumSkill)
}

func validateCoursePatch(p ports.CoursePatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}
	if p.Weeks != nil && *p.Weeks <= 0 {
		return fmt.Errorf("%w: weeks must be greater than 0", domain.ErrValidation)
	}
	if p.Tuition != nil && *p.Tuition < 0 {
		return fmt.Errorf("%w: tuition cannot be negative", domain.ErrValidation)
	}
	if p.MinimumSkill != nil {
		return validateSkill(*p.MinimumSkill)
	}
	return nil
}

func validateSkill(s domain.MinimumSkill) error {
	switch s {
	case domain.SkillBeginner, domain.SkillIntermediate, domain.SkillAdvanced:
		return nil
	}
	return fmt.Errorf("%w: minimum skill must be one of beginner, intermediate, advanced", domain.ErrValidation)
}
