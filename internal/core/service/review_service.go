package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type ReviewService struct {
	reviews   ports.ReviewRepository
	bootcamps ports.BootcampRepository
	log       zerolog.Logger
}

func NewReviewService(reviews ports.ReviewRepository, bootcamps ports.BootcampRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, bootcamps: bootcamps, log: log}
}

func (s *ReviewService) List(ctx context.Context, q ports.ListQuery) (*ports.Page[*domain.Review], error) {
	q = q.Normalize()
	items, total, err := s.reviews.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &ports.Page[*domain.Review]{Items: items, Total: total, Query: q}, nil
}

func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID string) ([]*domain.Review, error) {
	return s.reviews.ListByBootcamp(ctx, bootcampID)
}

func (s *ReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	r, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b, err := s.bootcamps.FindByID(ctx, r.Bootcamp)
	switch {
	case err == nil:
		r.BootcampInfo = refOf(b)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	return r, nil
}

// Create records the caller's review of an existing bootcamp.
func (s *ReviewService) Create(ctx context.Context, who domain.Identity, bootcampID string, in ports.ReviewInput) (*domain.Review, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Text) == "" {
		return nil, fmt.Errorf("%w: title and text are required", domain.ErrValidation)
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}

	b, err := s.bootcamps.FindByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	created, err := s.reviews.Create(ctx, &domain.Review{
		Title:     strings.TrimSpace(in.Title),
		Text:      in.Text,
		Rating:    in.Rating,
		Bootcamp:  b.ID,
		User:      who.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.refreshAverageRating(ctx, b.ID)
	s.log.Info().Str("review_id", created.ID).Str("bootcamp_id", b.ID).Str("user_id", who.ID).Msg("review created")
	return created, nil
}

func (s *ReviewService) Update(ctx context.Context, who domain.Identity, id string, patch ports.ReviewPatch) (*domain.Review, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrValidation)
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
	}

	current, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeWrite(s.log, who, "update", "review", id, current); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	updated, err := s.reviews.Update(ctx, id, who.OwnerScope(), patch)
	if err != nil {
		return nil, err
	}

	if patch.Rating != nil {
		s.refreshAverageRating(ctx, updated.Bootcamp)
	}
	s.log.Info().Str("review_id", id).Str("user_id", who.ID).Msg("review updated")
	return updated, nil
}

func (s *ReviewService) Delete(ctx context.Context, who domain.Identity, id string) error {
	current, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeWrite(s.log, who, "delete", "review", id, current); err != nil {
		return err
	}
	ctx = context.WithoutCancel(ctx)

	if err := s.reviews.Delete(ctx, id, who.OwnerScope()); err != nil {
		return err
	}

	s.refreshAverageRating(ctx, current.Bootcamp)
	s.log.Info().Str("review_id", id).Str("user_id", who.ID).Msg("review deleted")
	return nil
}

func (s *ReviewService) refreshAverageRating(ctx context.Context, bootcampID string) {
	avg, err := s.reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		s.log.Warn().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to compute average rating")
		return
	}
	if err := s.bootcamps.SetAverageRating(ctx, bootcampID, avg); err != nil {
		s.log.Warn().Err(err).Str("bootcamp_id", bootcampID).Msg("failed to store average rating")
	}
}

func validateRating(r int) error {
	if r < domain.MinRating || r > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", domain.ErrValidation, domain.MinRating, domain.MaxRating)
	}
	return nil
}
