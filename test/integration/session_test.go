//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func TestSessionStore_Redis(t *testing.T) {
	client := startRedis(t)
	store := redis.NewSessionStore(client)
	ctx := context.Background()

	t.Run("会话读写与删除", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, "u-1", map[string]any{"email": "a@example.com"}, time.Minute))

		data, err := store.GetSession(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", data["email"])

		ttl, err := client.TTL(ctx, "session:u-1").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))

		require.NoError(t, store.DeleteSession(ctx, "u-1"))
		_, err = store.GetSession(ctx, "u-1")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Token黑名单", func(t *testing.T) {
		revoked, err := store.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.Revoke(ctx, "token-a", time.Minute))
		revoked, err = store.IsRevoked(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)

		// 已过期的Token无需写入黑名单
		require.NoError(t, store.Revoke(ctx, "token-b", 0))
		revoked, err = store.IsRevoked(ctx, "token-b")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
