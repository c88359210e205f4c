package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// authorizeWrite runs the ownership check for a loaded resource. It must be
// called after the resource was found and before any mutating call.
func authorizeWrite(log zerolog.Logger, who domain.Identity, action, kind, id string, resource domain.Owned) error {
	decision := domain.CheckOwnership(resource, who)
	if err := decision.Err(); err != nil {
		log.Warn().
			Str("user_id", who.ID).
			Str("role", who.Role.String()).
			Str("resource", kind).
			Str("resource_id", id).
			Str("action", action).
			Msg("ownership check denied")
		return fmt.Errorf("user %s is not authorized to %s %s %s: %w", who.ID, action, kind, id, err)
	}
	return nil
}

func refOf(b *domain.Bootcamp) *domain.BootcampRef {
	return &domain.BootcampRef{ID: b.ID, Name: b.Name, Description: b.Description}
}
