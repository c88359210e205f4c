//go:build integration

package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

func startRedis(t *testing.T) *TokenStore {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := Connect(ctx, Config{Addr: endpoint})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client)
}

func TestTokenStore(t *testing.T) {
	store := startRedis(t)
	ctx := context.Background()

	t.Run("revocation", func(t *testing.T) {
		revoked, err := store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
		revoked, err = store.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		require.NoError(t, store.Revoke(ctx, "jti-old", time.Now().Add(-time.Minute)))
		revoked, err = store.IsRevoked(ctx, "jti-old")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("reset token is single use", func(t *testing.T) {
		require.NoError(t, store.SaveResetToken(ctx, "digest", "user-1", time.Minute))

		id, err := store.ConsumeResetToken(ctx, "digest")
		require.NoError(t, err)
		assert.Equal(t, "user-1", id)

		_, err = store.ConsumeResetToken(ctx, "digest")
		assert.True(t, errors.Is(err, domain.ErrInvalidResetToken))
	})
}
