package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/backend/internal/compare"
	"github.com/marketlens/backend/internal/comparison"
	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/logger"
)

type staticFetcher struct {
	series map[string][]compare.SeriesPoint
}

func (s *staticFetcher) Series(ctx context.Context, ticker string, days int) ([]compare.SeriesPoint, error) {
	return s.series[ticker], nil
}

func newCompareHandler(t *testing.T) *CompareHandler {
	t.Helper()

	close1, close2 := 100.0, 110.0
	fetcher := &staticFetcher{
		series: map[string][]compare.SeriesPoint{
			"AAPL": {
				{Date: "2026-01-01", Close: &close1},
				{Date: "2026-01-02", Close: &close2},
			},
		},
	}

	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	service := comparison.NewService(fetcher, 2, log)
	cfg := config.CompareConfig{Workers: 2, DefaultDays: 365, MaxTickers: 5}
	return NewCompareHandler(service, cfg, log)
}

func TestCompareHandler_Get(t *testing.T) {
	h := newCompareHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/compare?tickers=aapl,MSFT", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Tickers    []string                 `json:"tickers"`
		Colors     map[string]string        `json:"colors"`
		Merged     []map[string]interface{} `json:"merged"`
		Normalized []map[string]interface{} `json:"normalized"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, []string{"AAPL", "MSFT"}, payload.Tickers)
	assert.Equal(t, compare.ColorFor("AAPL"), payload.Colors["AAPL"])

	require.Len(t, payload.Merged, 2)
	assert.Equal(t, "2026-01-01", payload.Merged[0]["date"])
	assert.Equal(t, 100.0, payload.Merged[0]["AAPL_close"])

	require.Len(t, payload.Normalized, 2)
	assert.InDelta(t, 110.0, payload.Normalized[1]["AAPL_perf"].(float64), 1e-9)
	// MSFT has no data: the chart gets nulls, never zeros
	assert.Nil(t, payload.Normalized[1]["MSFT_perf"])
}

func TestCompareHandler_RequiresTickers(t *testing.T) {
	h := newCompareHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/compare", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareHandler_RejectsTooManyTickers(t *testing.T) {
	h := newCompareHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/compare?tickers=A,B,C,D,E,F", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareHandler_RejectsBadDays(t *testing.T) {
	h := newCompareHandler(t)

	for _, days := range []string{"0", "6", "5001", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/compare?tickers=AAPL&days="+days, nil)
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", days)
	}
}
