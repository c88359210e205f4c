package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// TokenStore keeps revoked credential ids and pending password-reset tokens.
//
//	revoked:<jti>          "1"      expires with the credential
//	reset:<sha256 digest>  user id  expires with the reset token
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks tokenID as revoked until the credential would have expired.
// Already expired credentials need no entry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) SaveResetToken(ctx context.Context, digest, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKey(digest), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken returns the user id stored for digest and deletes it in
// the same step, so a reset token works at most once.
func (s *TokenStore) ConsumeResetToken(ctx context.Context, digest string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetKey(digest)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func revokedKey(tokenID string) string { return "revoked:" + tokenID }
func resetKey(digest string) string    { return "reset:" + digest }
