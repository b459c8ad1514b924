// Package warehouse provides read/write access to the star-schema Postgres
// warehouse behind the dashboard: the latest-screener, price-series, metrics
// and rankings views plus the ranking weight configuration.
package warehouse

import (
	"encoding/json"
	"fmt"
)

// ScreenerRow is one snapshot row from warehouse.v_screener_latest.
// Pointer fields are nullable in the view.
type ScreenerRow struct {
	Ticker        string   `json:"ticker"`
	Name          *string  `json:"name"`
	Sector        *string  `json:"sector"`
	Industry      *string  `json:"industry"`
	PriceDate     *string  `json:"price_date"` // YYYY-MM-DD
	ClosePrice    *float64 `json:"close_price"`
	Volume        *int64   `json:"volume"`
	MA50          *float64 `json:"ma50"`
	MA200         *float64 `json:"ma200"`
	RSI14         *float64 `json:"rsi14"`
	MarketCap     *int64   `json:"market_cap"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	TrendBullish  *bool    `json:"trend_bullish"`
	RSIOversold   *bool    `json:"rsi_oversold"`
	RSIOverbought *bool    `json:"rsi_overbought"`
}

// ScreenerFilter narrows a screener query. Zero values mean "no filter".
type ScreenerFilter struct {
	Query   string   // matches ticker or name, case-insensitive substring
	Sector  string
	RSILte  *float64
	Bullish *bool
	Limit   int // clamped to 1..2000, default 200
}

// RankingRow is one row from warehouse.v_rankings_latest with the composite
// score already computed from the active weights.
type RankingRow struct {
	Ticker        string   `json:"ticker"`
	Name          *string  `json:"name"`
	Sector        *string  `json:"sector"`
	Industry      *string  `json:"industry"`
	PriceDate     *string  `json:"price_date"`
	ClosePrice    *float64 `json:"close_price"`
	RSI14         *float64 `json:"rsi14"`
	PERatio       *float64 `json:"pe_ratio"`
	DividendYield *float64 `json:"dividend_yield"`
	MarketCap     *int64   `json:"market_cap"`

	Score      float64 `json:"score"`
	TrendScore float64 `json:"trend_score"`
	RSIScore   float64 `json:"rsi_score"`
	ValueScore float64 `json:"value_score"`
	SizeScore  float64 `json:"size_score"`
	YieldScore float64 `json:"yield_score"`

	Reasons map[string]interface{} `json:"reasons"`
}

// RankingConfig is a named weighting configuration for the composite score.
type RankingConfig struct {
	Name    string                 `json:"name"`
	Weights map[string]float64     `json:"weights"`
	Params  map[string]interface{} `json:"params"`
	Active  bool                   `json:"active"`
}

// Weight keys every config must carry.
var requiredWeightKeys = []string{"trend", "rsi", "value", "size", "yield"}

// Validate checks a config before it is written: weights must be non-empty,
// cover the five known keys, and sum to 1.0 within a small tolerance.
func (c *RankingConfig) Validate() error {
	if len(c.Weights) == 0 {
		return fmt.Errorf("weights cannot be empty")
	}

	var sum float64
	for _, w := range c.Weights {
		sum += w
	}
	if sum <= 0.99 || sum >= 1.01 {
		return fmt.Errorf("weights must sum to 1.0 (got %g)", sum)
	}

	var missing []string
	for _, key := range requiredWeightKeys {
		if _, ok := c.Weights[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing weight keys: %v", missing)
	}

	return nil
}

// WeightOr returns the named weight, falling back when absent.
func (c *RankingConfig) WeightOr(key string, fallback float64) float64 {
	if c == nil || c.Weights == nil {
		return fallback
	}
	if w, ok := c.Weights[key]; ok {
		return w
	}
	return fallback
}

// StatusSnapshot reports warehouse row counts and freshness for the status
// page.
type StatusSnapshot struct {
	ScreenerRows          int     `json:"screener_rows"`
	DimCompanyRows        int     `json:"dim_company_rows"`
	FactPricesRows        int     `json:"fact_prices_rows"`
	FactMetricsRows       int     `json:"fact_metrics_rows"`
	LatestPriceDate       *string `json:"latest_price_date"`
	LatestMetricsDate     *string `json:"latest_metrics_date"`
	LatestFundamentalDate *string `json:"latest_fundamentals_date"`
}

// decodeJSONMap normalizes a jsonb column to a map. The driver usually hands
// back raw JSON bytes; anything undecodable is wrapped under "raw" instead of
// failing the whole row.
func decodeJSONMap(data []byte) map[string]interface{} {
	if len(data) == 0 {
		return map[string]interface{}{}
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]interface{}{"raw": string(data)}
	}
	return m
}
