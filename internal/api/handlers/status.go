package handlers

import (
	"net/http"
	"time"

	"github.com/marketlens/backend/internal/warehouse"
	"github.com/marketlens/backend/pkg/logger"
)

// StatusHandler handles the pipeline status endpoint.
type StatusHandler struct {
	repo   *warehouse.StatusRepository
	logger *logger.Logger
}

// NewStatusHandler creates a new status handler.
func NewStatusHandler(repo *warehouse.StatusRepository, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		repo:   repo,
		logger: log,
	}
}

// StatusResponse is the payload for the dashboard status page.
type StatusResponse struct {
	OK          bool      `json:"ok"`
	DBConnected bool      `json:"db_connected"`
	ServerTime  time.Time `json:"server_time"`

	ScreenerRows          int     `json:"screener_rows"`
	DimCompanyRows        int     `json:"dim_company_rows"`
	FactPricesRows        int     `json:"fact_prices_rows"`
	FactMetricsRows       int     `json:"fact_metrics_rows"`
	LatestPriceDate       *string `json:"latest_price_date"`
	LatestMetricsDate     *string `json:"latest_metrics_date"`
	LatestFundamentalDate *string `json:"latest_fundamentals_date"`

	Notes *string `json:"notes"`
}

// Get returns warehouse freshness and row counts. This endpoint never fails:
// a broken database yields ok:false so the status page can still render.
// GET /api/status
func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.Snapshot(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Status snapshot failed")
		notes := err.Error()
		respondJSON(w, http.StatusOK, StatusResponse{
			OK:          false,
			DBConnected: false,
			ServerTime:  time.Now().UTC(),
			Notes:       &notes,
		})
		return
	}

	respondJSON(w, http.StatusOK, StatusResponse{
		OK:                    true,
		DBConnected:           true,
		ServerTime:            time.Now().UTC(),
		ScreenerRows:          snap.ScreenerRows,
		DimCompanyRows:        snap.DimCompanyRows,
		FactPricesRows:        snap.FactPricesRows,
		FactMetricsRows:       snap.FactMetricsRows,
		LatestPriceDate:       snap.LatestPriceDate,
		LatestMetricsDate:     snap.LatestMetricsDate,
		LatestFundamentalDate: snap.LatestFundamentalDate,
	})
}
