package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marketlens/backend/internal/compare"
)

// SeriesRepository reads per-ticker daily price and metrics series.
type SeriesRepository struct {
	pool *pgxpool.Pool
}

// NewSeriesRepository creates a new series repository.
func NewSeriesRepository(pool *pgxpool.Pool) *SeriesRepository {
	return &SeriesRepository{pool: pool}
}

// Series returns the newest `days` observations for a ticker in ascending
// date order. An unknown ticker yields an empty slice, not an error.
func (r *SeriesRepository) Series(ctx context.Context, ticker string, days int) ([]compare.SeriesPoint, error) {
	if days < 7 {
		days = 7
	}
	if days > 5000 {
		days = 5000
	}

	query := `
		SELECT
			ps.full_date AS date,
			ps.close_price AS close,
			ps.volume,
			ms.ma50,
			ms.ma200,
			ms.rsi14
		FROM warehouse.v_price_series ps
		LEFT JOIN warehouse.v_metrics_series ms
			ON ms.ticker = ps.ticker AND ms.full_date = ps.full_date
		WHERE ps.ticker = $1
		ORDER BY ps.full_date DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ticker, days)
	if err != nil {
		return nil, fmt.Errorf("query series for %s: %w", ticker, err)
	}
	defer rows.Close()

	points := make([]compare.SeriesPoint, 0, days)
	for rows.Next() {
		var p compare.SeriesPoint
		var date time.Time
		if err := rows.Scan(&date, &p.Close, &p.Volume, &p.MA50, &p.MA200, &p.RSI14); err != nil {
			return nil, fmt.Errorf("scan series point: %w", err)
		}
		p.Date = date.Format("2006-01-02")
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; charts want ascending.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
