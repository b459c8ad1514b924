package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Default weights applied when the active config misses a key.
const (
	defaultTrendWeight = 0.35
	defaultRSIWeight   = 0.25
	defaultValueWeight = 0.20
	defaultSizeWeight  = 0.10
	defaultYieldWeight = 0.10
)

// RankingRepository reads the precomputed ranking sub-scores and combines
// them into a composite score using the active weight configuration. The
// sub-scores themselves are produced upstream by the warehouse pipeline.
type RankingRepository struct {
	pool *pgxpool.Pool
}

// NewRankingRepository creates a new ranking repository.
func NewRankingRepository(pool *pgxpool.Pool) *RankingRepository {
	return &RankingRepository{pool: pool}
}

// Rankings returns the top rows by weighted composite score. A nil config
// falls back to the default weights.
func (r *RankingRepository) Rankings(ctx context.Context, cfg *RankingConfig, sector string, limit int) ([]RankingRow, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	args := []interface{}{
		cfg.WeightOr("trend", defaultTrendWeight),
		cfg.WeightOr("rsi", defaultRSIWeight),
		cfg.WeightOr("value", defaultValueWeight),
		cfg.WeightOr("size", defaultSizeWeight),
		cfg.WeightOr("yield", defaultYieldWeight),
	}

	whereSQL := ""
	if sector != "" {
		args = append(args, sector)
		whereSQL = fmt.Sprintf("WHERE sector = $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT
			ticker, name, sector, industry, price_date, close_price, rsi14,
			pe_ratio, dividend_yield, market_cap,

			ROUND((
				$1*trend_score
				+ $2*rsi_score
				+ $3*value_score
				+ $4*size_score
				+ $5*yield_score
			)::numeric, 4)::float8 AS score,

			trend_score, rsi_score, value_score, size_score, yield_score,
			reasons
		FROM warehouse.v_rankings_latest
		%s
		ORDER BY score DESC NULLS LAST
		LIMIT %d
	`, whereSQL, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rankings: %w", err)
	}
	defer rows.Close()

	out := make([]RankingRow, 0, limit)
	for rows.Next() {
		var row RankingRow
		var priceDate *time.Time
		var reasons []byte
		if err := rows.Scan(
			&row.Ticker, &row.Name, &row.Sector, &row.Industry, &priceDate,
			&row.ClosePrice, &row.RSI14, &row.PERatio, &row.DividendYield, &row.MarketCap,
			&row.Score,
			&row.TrendScore, &row.RSIScore, &row.ValueScore, &row.SizeScore, &row.YieldScore,
			&reasons,
		); err != nil {
			return nil, fmt.Errorf("scan ranking row: %w", err)
		}
		row.PriceDate = formatDate(priceDate)
		row.Reasons = decodeJSONMap(reasons)
		out = append(out, row)
	}
	return out, rows.Err()
}
