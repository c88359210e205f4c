package ports

import (
	"context"
	"time"
)

// TokenRevoker keeps the ids of credentials invalidated before their expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ResetTokenStore maps password-reset token digests to user ids.
// ConsumeResetToken removes the digest atomically and returns
// domain.ErrInvalidResetToken when it is unknown or expired.
type ResetTokenStore interface {
	SaveResetToken(ctx context.Context, digest, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, digest string) (string, error)
}
