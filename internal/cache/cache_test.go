package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"referral-server/internal/clients/redis"
	"referral-server/internal/config"
	"referral-server/internal/observability"
	"referral-server/internal/store"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drivers(t *testing.T) map[string]Listing {
	t.Helper()
	out := map[string]Listing{"memory": NewMemory(time.Minute)}

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		return out
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	out["redis"] = NewRedis(redis.Wrap(client, observability.NewNopLogger()), time.Minute)
	return out
}

func TestListing_PageRoundTrip(t *testing.T) {
	for name, c := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := PageKey{Search: "ad-" + uuid.NewString(), Page: 1, PageSize: 10}
			rows := []store.Referral{{ID: uuid.New(), GivenName: "Ada"}}

			gen, err := c.Generation(ctx)
			require.NoError(t, err)

			_, ok, err := c.GetPage(ctx, gen, key)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.SetPage(ctx, gen, key, rows))
			got, ok, err := c.GetPage(ctx, gen, key)
			require.NoError(t, err)
			require.True(t, ok)
			require.Len(t, got, 1)
			assert.Equal(t, rows[0].ID, got[0].ID)
			assert.Equal(t, "Ada", got[0].GivenName)

			require.NoError(t, c.SetCount(ctx, gen, key.Search, 25))
			count, ok, err := c.GetCount(ctx, gen, key.Search)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 25, count)
		})
	}
}

func TestListing_InvalidateHidesEntries(t *testing.T) {
	for name, c := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			search := "inv-" + uuid.NewString()
			key := PageKey{Search: search, Page: 1, PageSize: 10}

			gen, err := c.Generation(ctx)
			require.NoError(t, err)
			require.NoError(t, c.SetPage(ctx, gen, key, []store.Referral{{GivenName: "Old"}}))
			require.NoError(t, c.SetCount(ctx, gen, search, 1))

			require.NoError(t, c.Invalidate(ctx))

			next, err := c.Generation(ctx)
			require.NoError(t, err)
			assert.NotEqual(t, gen, next)

			_, ok, err := c.GetPage(ctx, next, key)
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = c.GetCount(ctx, next, search)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestListing_LateFillIsNeverServed(t *testing.T) {
	for name, c := range drivers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := PageKey{Search: "late-" + uuid.NewString(), Page: 1, PageSize: 10}

			// A fetch starts, then a mutation invalidates before the fetch stores its result.
			started, err := c.Generation(ctx)
			require.NoError(t, err)
			require.NoError(t, c.Invalidate(ctx))
			require.NoError(t, c.SetPage(ctx, started, key, []store.Referral{{GivenName: "Stale"}}))

			current, err := c.Generation(ctx)
			require.NoError(t, err)
			_, ok, err := c.GetPage(ctx, current, key)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMemory_GetPageReturnsCopy(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	key := PageKey{Page: 1, PageSize: 10}

	require.NoError(t, c.SetPage(ctx, 0, key, []store.Referral{{GivenName: "Ada"}}))
	got, _, _ := c.GetPage(ctx, 0, key)
	got[0].GivenName = "Mutated"

	again, ok, err := c.GetPage(ctx, 0, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Ada", again[0].GivenName)
}

func TestNew_FallsBackToMemory(t *testing.T) {
	c := New(config.CacheConfig{Driver: config.CacheDriverRedis, TTL: time.Minute}, nil, observability.NewNopLogger())
	_, ok := c.(*Memory)
	assert.True(t, ok)
}
