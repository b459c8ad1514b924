package redis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/backend/pkg/config"
)

func newDisabledCache(t *testing.T) *Cache {
	t.Helper()

	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	return NewCache(client, "lens")
}

func TestCacheDisabledIsNoOp(t *testing.T) {
	cache := newDisabledCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, TTLShort))

	var dest map[string]int
	found, err := cache.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found, "disabled cache must always miss")

	assert.NoError(t, cache.Delete(ctx, "k"))
	assert.NoError(t, cache.DeletePrefix(ctx, "rankings:"))
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "screener:q=apple&limit=10", ScreenerKey("q=apple&limit=10"))
	assert.Equal(t, "rankings:Technology:20", RankingsKey("Technology", 20))
	assert.Equal(t, "series:AAPL:365", SeriesKey("AAPL", 365))
}

func TestRankingsKeysShareInvalidationPrefix(t *testing.T) {
	// UpdateConfig invalidates with DeletePrefix("rankings:"); every variant
	// the read path can build must fall under that prefix.
	keys := []string{
		RankingsKey("", 50),
		RankingsKey("Technology", 20),
		RankingsKey("Consumer Cyclical", 500),
	}
	for _, key := range keys {
		assert.True(t, strings.HasPrefix(key, "rankings:"), "key %q", key)
	}
}
