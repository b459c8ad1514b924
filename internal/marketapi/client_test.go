package marketapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/httputil"
	"github.com/marketlens/backend/pkg/logger"
)

func newTestClient(serverURL string) *Client {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	httpClient := httputil.New(log).DisableRetry()
	return NewClient(serverURL, httpClient, log)
}

func TestClient_Series(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/company/AAPL/series", r.URL.Path)
		assert.Equal(t, "90", r.URL.Query().Get("days"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2026-01-01","close":100,"volume":5000,"ma50":null,"ma200":null,"rsi14":null},
			{"date":"2026-01-02","close":110,"volume":null,"ma50":98.5,"ma200":null,"rsi14":61.2}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	points, err := client.Series(context.Background(), "AAPL", 90)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2026-01-01", points[0].Date)
	require.NotNil(t, points[0].Close)
	assert.Equal(t, 100.0, *points[0].Close)
	assert.Nil(t, points[0].MA50)

	require.NotNil(t, points[1].MA50)
	assert.Equal(t, 98.5, *points[1].MA50)
	assert.Nil(t, points[1].Volume)
}

func TestClient_SeriesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Ticker not found or no data"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Series(context.Background(), "NOPE", 90)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestClient_Screener(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/screener", r.URL.Path)
		assert.Equal(t, "tech", r.URL.Query().Get("q"))
		assert.Equal(t, "30", r.URL.Query().Get("rsi_lte"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"ticker":"AAPL","name":"Apple Inc.","sector":"Technology","close_price":190.5,"rsi14":28.4}]`))
	}))
	defer server.Close()

	rsi := 30.0
	client := newTestClient(server.URL)
	rows, err := client.Screener(context.Background(), ScreenerQuery{Query: "tech", RSILte: &rsi})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "AAPL", rows[0].Ticker)
	require.NotNil(t, rows[0].ClosePrice)
	assert.Equal(t, 190.5, *rows[0].ClosePrice)
	assert.Nil(t, rows[0].MarketCap)
}

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/status", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"ok": true, "db_connected": true, "server_time": "2026-08-23T10:00:00Z",
			"screener_rows": 500, "dim_company_rows": 510,
			"fact_prices_rows": 120000, "fact_metrics_rows": 118000,
			"latest_price_date": "2026-08-22", "latest_metrics_date": "2026-08-22",
			"latest_fundamentals_date": null, "notes": null
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	status, err := client.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, status.OK)
	assert.Equal(t, 500, status.ScreenerRows)
	require.NotNil(t, status.LatestPriceDate)
	assert.Equal(t, "2026-08-22", *status.LatestPriceDate)
	assert.Nil(t, status.LatestFundamentalDate)
}
