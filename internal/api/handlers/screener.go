package handlers

import (
	"net/http"
	"strconv"

	"github.com/marketlens/backend/internal/warehouse"
	"github.com/marketlens/backend/pkg/logger"
	"github.com/marketlens/backend/pkg/redis"
)

// ScreenerHandler handles the screener snapshot endpoint.
type ScreenerHandler struct {
	repo   *warehouse.ScreenerRepository
	cache  *redis.Cache
	logger *logger.Logger
}

// NewScreenerHandler creates a new screener handler.
func NewScreenerHandler(repo *warehouse.ScreenerRepository, cache *redis.Cache, log *logger.Logger) *ScreenerHandler {
	return &ScreenerHandler{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

// Get returns screener rows matching the query filters.
// GET /api/screener?q=&sector=&rsi_lte=&bullish=&limit=
func (h *ScreenerHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := warehouse.ScreenerFilter{
		Query:  q.Get("q"),
		Sector: q.Get("sector"),
	}

	if raw := q.Get("rsi_lte"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "rsi_lte must be a number")
			return
		}
		filter.RSILte = &v
	}

	if raw := q.Get("bullish"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "bullish must be a boolean")
			return
		}
		filter.Bullish = &v
	}

	if raw := q.Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 2000 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 2000")
			return
		}
		filter.Limit = v
	}

	cacheKey := redis.ScreenerKey(r.URL.RawQuery)
	var cached []warehouse.ScreenerRow
	if found, _ := h.cache.Get(ctx, cacheKey, &cached); found {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	rows, err := h.repo.Find(ctx, filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query screener")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve screener rows")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, rows, redis.TTLShort); err != nil {
		h.logger.WithError(err).Warn("Failed to cache screener response")
	}

	respondJSON(w, http.StatusOK, rows)
}
