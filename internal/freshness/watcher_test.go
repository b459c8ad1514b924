package freshness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/logger"
)

type fakeSource struct {
	date *time.Time
	err  error
}

func (f *fakeSource) LatestPriceDate(ctx context.Context) (*time.Time, error) {
	return f.date, f.err
}

func newWatcher(source PriceDateSource, maxAge time.Duration) *Watcher {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	cfg := config.FreshnessConfig{Enabled: true, Schedule: "0 0 * * * *", MaxAge: maxAge}
	return New(source, cfg, log)
}

func TestCheck_Fresh(t *testing.T) {
	recent := time.Now().UTC().Add(-24 * time.Hour)
	w := newWatcher(&fakeSource{date: &recent}, 72*time.Hour)

	result := w.Check(context.Background())
	require.NoError(t, result.Err)
	assert.False(t, result.Stale)
	require.NotNil(t, result.LatestPriceDate)
	assert.Equal(t, recent, *result.LatestPriceDate)
}

func TestCheck_Stale(t *testing.T) {
	old := time.Now().UTC().Add(-10 * 24 * time.Hour)
	w := newWatcher(&fakeSource{date: &old}, 72*time.Hour)

	result := w.Check(context.Background())
	require.NoError(t, result.Err)
	assert.True(t, result.Stale)
	assert.Greater(t, result.Age, 72*time.Hour)
}

func TestCheck_EmptyWarehouse(t *testing.T) {
	w := newWatcher(&fakeSource{date: nil}, 72*time.Hour)

	result := w.Check(context.Background())
	require.NoError(t, result.Err)
	assert.True(t, result.Stale)
	assert.Nil(t, result.LatestPriceDate)
}

func TestCheck_SourceError(t *testing.T) {
	w := newWatcher(&fakeSource{err: errors.New("connection refused")}, 72*time.Hour)

	result := w.Check(context.Background())
	require.Error(t, result.Err)
	assert.Nil(t, w.LastCheck())
}

func TestStartStop(t *testing.T) {
	recent := time.Now().UTC()
	w := newWatcher(&fakeSource{date: &recent}, 72*time.Hour)

	require.NoError(t, w.Start())

	// The immediate check runs in a goroutine; give it a moment.
	deadline := time.Now().Add(2 * time.Second)
	for w.LastCheck() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, w.LastCheck())
	assert.False(t, w.LastCheck().Stale)

	w.Stop()
}
