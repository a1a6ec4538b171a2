package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	store := NewSessionStore(client)

	t.Run("保存和读取会话", func(t *testing.T) {
		err := store.SaveSession(ctx, 7, map[string]interface{}{"username": "alice", "login_at": "2024-01-01T00:00:00Z"}, time.Hour)
		require.NoError(t, err)

		session, err := store.GetSession(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "alice", session["username"])
		assert.Equal(t, time.Hour, mr.TTL("session:7"))
	})

	t.Run("会话过期", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)
		_, err := store.GetSession(ctx, 7)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("删除会话", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, 8, map[string]interface{}{"username": "bob"}, time.Hour))
		require.NoError(t, store.DeleteSession(ctx, 8))
		assert.False(t, mr.Exists("session:8"))
	})

	t.Run("黑名单", func(t *testing.T) {
		revoked, err := store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.AddToBlacklist(ctx, "token-a", time.Minute))
		revoked, err = store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.True(t, revoked)

		mr.FastForward(2 * time.Minute)
		revoked, err = store.IsInBlacklist(ctx, "token-a")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("已过期的Token不写入黑名单", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "token-b", 0))
		assert.False(t, mr.Exists("blacklist:token-b"))
	})
}

func TestSessionStore_RedisDown(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	mr.Close()

	_, err := store.IsInBlacklist(context.Background(), "token")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeRedisError, apperrors.GetAppError(err).Code)
}

func TestFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("超出配额被拒绝", func(t *testing.T) {
		_, client := newTestClient(t)
		limiter, err := NewFixedWindowLimiter(client, "test:ratelimit", 2, time.Minute)
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			ok, err := limiter.Allow(ctx, "10.0.0.1")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, ok)

		// 其他key不受影响
		ok, err = limiter.Allow(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("新窗口重新计数", func(t *testing.T) {
		_, client := newTestClient(t)
		limiter, err := NewFixedWindowLimiter(client, "", 1, time.Minute)
		require.NoError(t, err)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		limiter.now = func() time.Time { return now }

		ok, _ := limiter.Allow(ctx, "k")
		assert.True(t, ok)
		ok, _ = limiter.Allow(ctx, "k")
		assert.False(t, ok)

		now = now.Add(time.Minute)
		ok, err = limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Redis故障时拒绝", func(t *testing.T) {
		mr, client := newTestClient(t)
		limiter, err := NewFixedWindowLimiter(client, "", 5, time.Minute)
		require.NoError(t, err)
		mr.Close()

		ok, err := limiter.Allow(ctx, "k")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("参数校验", func(t *testing.T) {
		_, client := newTestClient(t)
		_, err := NewFixedWindowLimiter(client, "", 0, time.Minute)
		assert.Error(t, err)
		_, err = NewFixedWindowLimiter(nil, "", 1, time.Minute)
		assert.Error(t, err)
	})
}
