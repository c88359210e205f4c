package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type BootcampService struct {
	bootcamps ports.BootcampRepository
	courses   ports.CourseRepository
	reviews   ports.ReviewRepository
	log       zerolog.Logger
}

func NewBootcampService(
	bootcamps ports.BootcampRepository,
	courses ports.CourseRepository,
	reviews ports.ReviewRepository,
	log zerolog.Logger,
) *BootcampService {
	return &BootcampService{bootcamps: bootcamps, courses: courses, reviews: reviews, log: log}
}

func (s *BootcampService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Bootcamp], error) {
	q = q.Normalize()
	items, total, err := s.bootcamps.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ports.Page[*domain.Bootcamp]{Items: items, Total: total, Query: q}, nil
}

func (s *BootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	return s.bootcamps.FindByID(ctx, id)
}

// Create stores a new bootcamp owned by the caller. Non-admin callers may own
// at most one bootcamp.
func (s *BootcampService) Create(ctx context.Context, who domain.Identity, in ports.BootcampInput) (*domain.Bootcamp, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: name and description are required", domain.ErrValidation)
	}

	ctx = context.WithoutCancel(ctx)
	if !who.IsAdmin() {
		n, err := s.bootcamps.CountByOwner(ctx, who.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			return nil, domain.ErrAlreadyPublished
		}
	}

	created, err := s.bootcamps.Create(ctx, &domain.Bootcamp{
		Name:          name,
		Slug:          slug.Make(name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGI:      in.AcceptGI,
		User:          who.ID,
		CreatedAt:     time.Now().UTC(),
		Exclusive:     !who.IsAdmin(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", who.ID).Msg("failed to create bootcamp")
		return nil, err
	}

	s.log.Info().Str("bootcamp_id", created.ID).Str("user_id", who.ID).Msg("bootcamp created")
	return created, nil
}

func (s *BootcampService) Update(ctx context.Context, who domain.Identity, id string, patch ports.BootcampPatch) (*domain.Bootcamp, error) {
	current, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(s.log, who, "update", "bootcamp", id, current); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		sl := slug.Make(name)
		patch.Name, patch.Slug = &name, &sl
	}

	updated, err := s.bootcamps.Update(ctx, id, who.OwnerScope(), patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("bootcamp_id", id).Str("user_id", who.ID).Msg("bootcamp updated")
	return updated, nil
}

// Delete removes the bootcamp together with its courses and reviews. The
// children go first so a failed cascade leaves the bootcamp in place and the
// delete can be retried.
func (s *BootcampService) Delete(ctx context.Context, who domain.Identity, id string) error {
	current, err := s.bootcamps.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeWrite(s.log, who, "delete", "bootcamp", id, current); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	courses, err := s.courses.DeleteByBootcamp(ctx, id)
	if err != nil {
		return fmt.Errorf("delete bootcamp courses: %w", err)
	}
	reviews, err := s.reviews.DeleteByBootcamp(ctx, id)
	if err != nil {
		return fmt.Errorf("delete bootcamp reviews: %w", err)
	}
	if err := s.bootcamps.Delete(ctx, id, who.OwnerScope()); err != nil {
		return err
	}

	s.log.Info().
		Str("bootcamp_id", id).
		Str("user_id", who.ID).
		Int64("courses", courses).
		Int64("reviews", reviews).
		Msg("bootcamp deleted")
	return nil
}

// DeleteAll wipes the bootcamp collection. Admin only.
func (s *BootcampService) DeleteAll(ctx context.Context, who domain.Identity) (int64, error) {
	if !who.IsAdmin() {
		return 0, fmt.Errorf("user %s is not authorized to delete all bootcamps: %w", who.ID, domain.ErrForbidden)
	}
	n, err := s.bootcamps.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.log.Warn().Str("user_id", who.ID).Int64("deleted", n).Msg("all bootcamps deleted")
	return n, nil
}
