// Package marketapi is a typed client for the dashboard REST API. It is the
// interface the CLI (and any other out-of-process consumer) uses; in-process
// callers read the warehouse directly.
package marketapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marketlens/backend/internal/api/handlers"
	"github.com/marketlens/backend/internal/compare"
	"github.com/marketlens/backend/internal/warehouse"
	"github.com/marketlens/backend/pkg/httputil"
	"github.com/marketlens/backend/pkg/logger"
)

// Client calls the dashboard REST API.
type Client struct {
	baseURL    string
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewClient creates a new API client.
func NewClient(baseURL string, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     log.WithField("module", "marketapi"),
	}
}

// ScreenerQuery mirrors the /api/screener filters.
type ScreenerQuery struct {
	Query   string
	Sector  string
	RSILte  *float64
	Bullish *bool
	Limit   int
}

// Series returns the daily series for a ticker, ascending by date.
// Implements comparison.SeriesFetcher.
func (c *Client) Series(ctx context.Context, ticker string, days int) ([]compare.SeriesPoint, error) {
	u := fmt.Sprintf("%s/api/company/%s/series?days=%d", c.baseURL, url.PathEscape(ticker), days)

	var points []compare.SeriesPoint
	if err := c.getJSON(ctx, u, &points); err != nil {
		return nil, fmt.Errorf("fetch series for %s: %w", ticker, err)
	}
	return points, nil
}

// Screener returns snapshot rows matching the query.
func (c *Client) Screener(ctx context.Context, query ScreenerQuery) ([]warehouse.ScreenerRow, error) {
	params := url.Values{}
	if query.Query != "" {
		params.Set("q", query.Query)
	}
	if query.Sector != "" {
		params.Set("sector", query.Sector)
	}
	if query.RSILte != nil {
		params.Set("rsi_lte", strconv.FormatFloat(*query.RSILte, 'f', -1, 64))
	}
	if query.Bullish != nil {
		params.Set("bullish", strconv.FormatBool(*query.Bullish))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	u := c.baseURL + "/api/screener"
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	var rows []warehouse.ScreenerRow
	if err := c.getJSON(ctx, u, &rows); err != nil {
		return nil, fmt.Errorf("fetch screener: %w", err)
	}
	return rows, nil
}

// Rankings returns the top composite-score rows.
func (c *Client) Rankings(ctx context.Context, sector string, limit int) ([]warehouse.RankingRow, error) {
	params := url.Values{}
	if sector != "" {
		params.Set("sector", sector)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	u := c.baseURL + "/api/rankings"
	if encoded := params.Encode(); encoded != "" {
		u += "?" + encoded
	}

	var rows []warehouse.RankingRow
	if err := c.getJSON(ctx, u, &rows); err != nil {
		return nil, fmt.Errorf("fetch rankings: %w", err)
	}
	return rows, nil
}

// RankingConfig returns the active weight configuration.
func (c *Client) RankingConfig(ctx context.Context) (*warehouse.RankingConfig, error) {
	var cfg warehouse.RankingConfig
	if err := c.getJSON(ctx, c.baseURL+"/api/ranking-config", &cfg); err != nil {
		return nil, fmt.Errorf("fetch ranking config: %w", err)
	}
	return &cfg, nil
}

// UpdateRankingConfig writes a new weight configuration.
func (c *Client) UpdateRankingConfig(ctx context.Context, cfg *warehouse.RankingConfig) error {
	resp, err := c.httpClient.PutJSON(ctx, c.baseURL+"/api/ranking-config", cfg)
	if err != nil {
		return fmt.Errorf("update ranking config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update ranking config: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Status returns warehouse freshness and row counts.
func (c *Client) Status(ctx context.Context) (*handlers.StatusResponse, error) {
	var status handlers.StatusResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/status", &status); err != nil {
		return nil, fmt.Errorf("fetch status: %w", err)
	}
	return &status, nil
}

// Compare returns the chart-ready comparison payload assembled server-side.
func (c *Client) Compare(ctx context.Context, tickers string, days int) (json.RawMessage, error) {
	u := fmt.Sprintf("%s/api/compare?tickers=%s&days=%d", c.baseURL, url.QueryEscape(tickers), days)

	var payload json.RawMessage
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("fetch comparison: %w", err)
	}
	return payload, nil
}

// getJSON performs a GET and decodes the JSON body. Any non-2xx response
// becomes a single opaque error for the caller to surface.
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
