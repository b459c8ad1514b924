package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/marketlens/backend/internal/compare"
	"github.com/marketlens/backend/internal/warehouse"
	"github.com/marketlens/backend/pkg/logger"
	"github.com/marketlens/backend/pkg/redis"
)

// SeriesHandler handles the per-company daily series endpoint.
type SeriesHandler struct {
	repo   *warehouse.SeriesRepository
	cache  *redis.Cache
	logger *logger.Logger
}

// NewSeriesHandler creates a new series handler.
func NewSeriesHandler(repo *warehouse.SeriesRepository, cache *redis.Cache, log *logger.Logger) *SeriesHandler {
	return &SeriesHandler{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// Get returns the ticker's series for the lookback window, ascending by date.
// GET /api/company/{ticker}/series?days=N
func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	days := 365
	if raw := r.URL.Query().Get("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 7 || v > 5000 {
			respondError(w, http.StatusBadRequest, "days must be between 7 and 5000")
			return
		}
		days = v
	}

	cacheKey := redis.SeriesKey(ticker, days)
	var cached []compare.SeriesPoint
	if found, _ := h.cache.Get(ctx, cacheKey, &cached); found {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	points, err := h.repo.Series(ctx, ticker, days)
	if err != nil {
		h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to query series")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve series")
		return
	}

	if len(points) == 0 {
		respondError(w, http.StatusNotFound, "Ticker not found or no data")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, points, redis.TTLMedium); err != nil {
		h.logger.WithError(err).Warn("Failed to cache series response")
	}

	respondJSON(w, http.StatusOK, points)
}
