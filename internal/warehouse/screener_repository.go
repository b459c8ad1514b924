package warehouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ScreenerRepository reads the latest screener snapshot.
type ScreenerRepository struct {
	pool *pgxpool.Pool
}

// NewScreenerRepository creates a new screener repository.
func NewScreenerRepository(pool *pgxpool.Pool) *ScreenerRepository {
	return &ScreenerRepository{pool: pool}
}

// Find returns screener rows matching the filter, ordered by market cap
// descending with nulls last.
func (r *ScreenerRepository) Find(ctx context.Context, filter ScreenerFilter) ([]ScreenerRow, error) {
	var where []string
	var args []interface{}

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = append(where, fmt.Sprintf("(ticker ILIKE $%d OR name ILIKE $%d)", len(args), len(args)))
	}
	if filter.Sector != "" {
		args = append(args, filter.Sector)
		where = append(where, fmt.Sprintf("sector = $%d", len(args)))
	}
	if filter.RSILte != nil {
		args = append(args, *filter.RSILte)
		where = append(where, fmt.Sprintf("rsi14 <= $%d", len(args)))
	}
	if filter.Bullish != nil {
		args = append(args, *filter.Bullish)
		where = append(where, fmt.Sprintf("trend_bullish = $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit < 1 {
		limit = 200
	}
	if limit > 2000 {
		limit = 2000
	}

	query := fmt.Sprintf(`
		SELECT
			ticker, name, sector, industry, price_date, close_price, volume,
			ma50, ma200, rsi14, market_cap, pe_ratio, dividend_yield,
			trend_bullish, rsi_oversold, rsi_overbought
		FROM warehouse.v_screener_latest
		%s
		ORDER BY market_cap DESC NULLS LAST
		LIMIT %d
	`, whereSQL, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query screener: %w", err)
	}
	defer rows.Close()

	out := make([]ScreenerRow, 0)
	for rows.Next() {
		var row ScreenerRow
		var priceDate *time.Time
		if err := rows.Scan(
			&row.Ticker, &row.Name, &row.Sector, &row.Industry, &priceDate,
			&row.ClosePrice, &row.Volume, &row.MA50, &row.MA200, &row.RSI14,
			&row.MarketCap, &row.PERatio, &row.DividendYield,
			&row.TrendBullish, &row.RSIOversold, &row.RSIOverbought,
		); err != nil {
			return nil, fmt.Errorf("scan screener row: %w", err)
		}
		row.PriceDate = formatDate(priceDate)
		out = append(out, row)
	}
	return out, rows.Err()
}

// formatDate renders a nullable timestamp as an ISO calendar date string.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
