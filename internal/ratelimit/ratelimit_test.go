package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlimitedAllowsEverything(t *testing.T) {
	var l Limiter = Unlimited{}
	for i := 0; i < 100; i++ {
		ok, err := l.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRedisLimiterReportsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, "contact:", 5, time.Minute)
	ok, err := l.Allow(context.Background(), "abc")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}

func newMiniredisLimiter(t *testing.T, limit int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLimiter(client, "contact:", limit, window), mr
}

func TestRedisLimiterFixedWindow(t *testing.T) {
	tests := []struct {
		name  string
		limit int
	}{
		{"single hit", 1},
		{"default contact budget", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l, mr := newMiniredisLimiter(t, tt.limit, 10*time.Minute)

			for i := 0; i < tt.limit; i++ {
				ok, err := l.Allow(ctx, "abc")
				require.NoError(t, err)
				assert.True(t, ok, "hit %d", i+1)
			}
			ok, err := l.Allow(ctx, "abc")
			require.NoError(t, err)
			assert.False(t, ok, "hit past the limit")

			ok, err = l.Allow(ctx, "other")
			require.NoError(t, err)
			assert.True(t, ok, "keys are counted separately")

			assert.Equal(t, 10*time.Minute, mr.TTL("contact:abc"))

			mr.FastForward(10 * time.Minute)
			ok, err = l.Allow(ctx, "abc")
			require.NoError(t, err)
			assert.True(t, ok, "new window")
		})
	}
}

func TestRedisLimiterKeepsWindowStart(t *testing.T) {
	ctx := context.Background()
	l, mr := newMiniredisLimiter(t, 3, time.Minute)

	_, err := l.Allow(ctx, "abc")
	require.NoError(t, err)
	mr.FastForward(40 * time.Second)
	_, err = l.Allow(ctx, "abc")
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second, mr.TTL("contact:abc"), "later hits do not extend the window")
}
