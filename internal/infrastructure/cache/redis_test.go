package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Scalium-Tech/aligned/internal/domain/events"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := DefaultConfig()
	cfg.Addr = mr.Addr()

	client, err := NewRedisClient(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestCacheResponseReadThrough(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	calls := 0
	build := func() (interface{}, error) {
		calls++
		return map[string]interface{}{"current_streak": float64(4)}, nil
	}

	first, err := client.CacheResponse(ctx, "dashboard:u1", time.Minute, build)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	second, err := client.CacheResponse(ctx, "dashboard:u1", time.Minute, build)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second read should come from the cache")
	assert.Equal(t, first, second)

	metrics := client.ExportMetrics()
	assert.Equal(t, float64(1), metrics["cache_hits"])
	assert.Equal(t, float64(1), metrics["cache_misses"])
}

func TestInvalidateUserCacheLeavesLedgerKeys(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.CacheResponse(ctx, "dashboard:u1", time.Minute, func() (interface{}, error) {
		return map[string]interface{}{"identity_score": float64(72)}, nil
	})
	require.NoError(t, err)

	// Ledger keys use underscores, cached responses use colons. Only the
	// latter may be dropped on invalidation.
	require.NoError(t, client.Set(ctx, "aligned_analytics_u1", `{"currentStreak":4}`, 0))

	require.NoError(t, client.InvalidateUserCache(ctx, "u1"))

	_, err = client.Get(ctx, "dashboard:u1")
	assert.ErrorIs(t, err, ErrCacheNotFound)

	val, err := client.Get(ctx, "aligned_analytics_u1")
	require.NoError(t, err)
	assert.Equal(t, `{"currentStreak":4}`, val)
}

func TestEventChannelRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Event, 1)
	go func() {
		_ = client.SubscribeToEvents(ctx, func(event events.Event) error {
			select {
			case received <- event:
			default:
			}
			return nil
		})
	}()

	want := events.Event{EventType: events.EventTypeActivityLogged, UserID: "u1"}

	deadline := time.After(2 * time.Second)
	for {
		require.NoError(t, client.PublishEvent(ctx, want))
		select {
		case got := <-received:
			assert.Equal(t, want.EventType, got.EventType)
			assert.Equal(t, want.UserID, got.UserID)
			return
		case <-deadline:
			t.Fatal("timed out waiting for event on the shared channel")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	store := NewRedisStore(client)

	_, ok := store.Get("aligned_analytics_u1")
	assert.False(t, ok)

	require.NoError(t, store.Set("aligned_analytics_u1", `{"currentStreak":1}`))

	val, ok := store.Get("aligned_analytics_u1")
	require.True(t, ok)
	assert.Equal(t, `{"currentStreak":1}`, val)

	store.Remove("aligned_analytics_u1")
	_, ok = store.Get("aligned_analytics_u1")
	assert.False(t, ok)
}
