package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatusRepository reports warehouse row counts and data freshness.
type StatusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository creates a new status repository.
func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pool: pool}
}

// Snapshot collects row counts and the latest loaded dates in one query.
func (r *StatusRepository) Snapshot(ctx context.Context) (*StatusSnapshot, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM warehouse.v_screener_latest) AS screener_rows,
			(SELECT COUNT(*) FROM warehouse.dim_company)       AS dim_company_rows,
			(SELECT COUNT(*) FROM warehouse.fact_prices)       AS fact_prices_rows,
			(SELECT COUNT(*) FROM warehouse.fact_metrics)      AS fact_metrics_rows,
			(SELECT MAX(full_date) FROM warehouse.v_price_series)   AS latest_price_date,
			(SELECT MAX(full_date) FROM warehouse.v_metrics_series) AS latest_metrics_date,
			(SELECT MAX(d.full_date)
			 FROM warehouse.fact_fundamentals ff
			 JOIN warehouse.dim_date d ON d.date_id = ff.date_id)   AS latest_fundamentals_date
	`

	var snap StatusSnapshot
	var latestPrice, latestMetrics, latestFundamentals *time.Time
	err := r.pool.QueryRow(ctx, query).Scan(
		&snap.ScreenerRows,
		&snap.DimCompanyRows,
		&snap.FactPricesRows,
		&snap.FactMetricsRows,
		&latestPrice,
		&latestMetrics,
		&latestFundamentals,
	)
	if err != nil {
		return nil, fmt.Errorf("query status snapshot: %w", err)
	}

	snap.LatestPriceDate = formatDate(latestPrice)
	snap.LatestMetricsDate = formatDate(latestMetrics)
	snap.LatestFundamentalDate = formatDate(latestFundamentals)
	return &snap, nil
}

// LatestPriceDate returns the newest loaded price date, nil when the
// warehouse is empty.
func (r *StatusRepository) LatestPriceDate(ctx context.Context) (*time.Time, error) {
	var latest *time.Time
	err := r.pool.QueryRow(ctx, `SELECT MAX(full_date) FROM warehouse.v_price_series`).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("query latest price date: %w", err)
	}
	return latest, nil
}
