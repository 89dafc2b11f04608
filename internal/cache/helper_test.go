package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	t.Run("populates on miss and serves from cache after", func(t *testing.T) {
		calls := 0
		var got int
		fetch := func() error {
			calls++
			got = 42
			return nil
		}

		require.NoError(t, Aside(ctx, "answer", &got, time.Minute, fetch))
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, calls)

		got = 0
		require.NoError(t, Aside(ctx, "answer", &got, time.Minute, fetch))
		assert.Equal(t, 42, got)
		assert.Equal(t, 1, calls, "second call should hit the cache")
	})

	t.Run("fetch error passes through without caching", func(t *testing.T) {
		boom := errors.New("boom")
		var dest string
		err := Aside(ctx, "failing", &dest, time.Minute, func() error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.False(t, GetJSON(ctx, "failing", &dest))
	})
}

func TestAsideWithoutRedis(t *testing.T) {
	SetClient(nil)

	var got string
	err := Aside(context.Background(), "k", &got, time.Minute, func() error {
		got = "direct"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", got)
}

func TestInvalidatePost(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	SetJSON(ctx, PostKey(7), map[string]int{"id": 7}, time.Minute)
	SetJSON(ctx, CandidateKey("latest"), []int{7}, time.Minute)
	SetJSON(ctx, CandidateKey(""), []int{7}, time.Minute)

	InvalidatePost(ctx, 7)

	assert.False(t, mr.Exists(PostKey(7)))
	assert.False(t, mr.Exists(CandidateKey("latest")))
	assert.False(t, mr.Exists(CandidateKey("unordered")))
}
