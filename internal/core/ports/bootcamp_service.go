package ports

import (
	"context"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// BootcampInput carries the fields of a new bootcamp.
type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       domain.Address
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGI      bool
}

// BootcampService defines use-case operations for bootcamps. Writes take the
// caller identity and enforce ownership.
type BootcampService interface {
	List(ctx context.Context, q ListQuery) (*Page[*domain.Bootcamp], error)
	Get(ctx context.Context, id string) (*domain.Bootcamp, error)
	Create(ctx context.Context, who domain.Identity, in BootcampInput) (*domain.Bootcamp, error)
	Update(ctx context.Context, who domain.Identity, id string, patch BootcampPatch) (*domain.Bootcamp, error)
	Delete(ctx context.Context, who domain.Identity, id string) error
	DeleteAll(ctx context.Context, who domain.Identity) (int64, error)
}
