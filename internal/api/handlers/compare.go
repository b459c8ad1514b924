package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/marketlens/backend/internal/comparison"
	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/logger"
)

// CompareHandler handles the multi-ticker comparison endpoint.
type CompareHandler struct {
	service *comparison.Service
	cfg     config.CompareConfig
	logger  *logger.Logger
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(service *comparison.Service, cfg config.CompareConfig, log *logger.Logger) *CompareHandler {
	return &CompareHandler{
		service: service,
		cfg:     cfg,
		logger:  log,
	}
}

// Get returns the chart-ready comparison payload for the requested tickers.
// GET /api/compare?tickers=AAPL,MSFT&days=N
func (h *CompareHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	raw := q.Get("tickers")
	if strings.TrimSpace(raw) == "" {
		respondError(w, http.StatusBadRequest, "tickers query parameter is required")
		return
	}
	tickers := strings.Split(raw, ",")
	if len(tickers) > h.cfg.MaxTickers {
		respondError(w, http.StatusBadRequest, "too many tickers requested")
		return
	}

	days := h.cfg.DefaultDays
	if rawDays := q.Get("days"); rawDays != "" {
		v, err := strconv.Atoi(rawDays)
		if err != nil || v < 7 || v > 5000 {
			respondError(w, http.StatusBadRequest, "days must be between 7 and 5000")
			return
		}
		days = v
	}

	result, err := h.service.Compare(ctx, tickers, days)
	if err != nil {
		h.logger.WithError(err).Error("Comparison failed")
		respondError(w, http.StatusInternalServerError, "Failed to build comparison")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
