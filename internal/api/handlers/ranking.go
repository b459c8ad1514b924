package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/marketlens/backend/internal/warehouse"
	"github.com/marketlens/backend/pkg/logger"
	"github.com/marketlens/backend/pkg/redis"
)

// RankingHandler handles the rankings and ranking-config endpoints.
type RankingHandler struct {
	rankingRepo *warehouse.RankingRepository
	configRepo  *warehouse.ConfigRepository
	cache       *redis.Cache
	logger      *logger.Logger
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(
	rankingRepo *warehouse.RankingRepository,
	configRepo *warehouse.ConfigRepository,
	cache *redis.Cache,
	log *logger.Logger,
) *RankingHandler {
	return &RankingHandler{
		rankingRepo: rankingRepo,
		configRepo:  configRepo,
		cache:       cache,
		logger:      log,
	}
}

// GetRankings returns the top rows by composite score under the active
// weight configuration.
// GET /api/rankings?sector=&limit=
func (h *RankingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sector := r.URL.Query().Get("sector")

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 500 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = v
	}

	cacheKey := redis.RankingsKey(sector, limit)
	var cached []warehouse.RankingRow
	if found, _ := h.cache.Get(ctx, cacheKey, &cached); found {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	cfg, err := h.configRepo.GetActive(ctx)
	if err != nil && !errors.Is(err, warehouse.ErrNoActiveConfig) {
		h.logger.WithError(err).Error("Failed to load ranking config")
		respondError(w, http.StatusInternalServerError, "Failed to load ranking config")
		return
	}

	rows, err := h.rankingRepo.Rankings(ctx, cfg, sector, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query rankings")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve rankings")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, rows, redis.TTLShort); err != nil {
		h.logger.WithError(err).Warn("Failed to cache rankings response")
	}

	respondJSON(w, http.StatusOK, rows)
}

// GetConfig returns the active ranking weight configuration.
// GET /api/ranking-config
func (h *RankingHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configRepo.GetActive(r.Context())
	if errors.Is(err, warehouse.ErrNoActiveConfig) {
		respondError(w, http.StatusNotFound, "No active ranking config found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load ranking config")
		respondError(w, http.StatusInternalServerError, "Failed to load ranking config")
		return
	}

	respondJSON(w, http.StatusOK, cfg)
}

// UpdateConfig validates and stores new weights on the active config.
// PUT /api/ranking-config
func (h *RankingHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var cfg warehouse.RankingConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := cfg.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.configRepo.UpdateActive(ctx, &cfg); err != nil {
		h.logger.WithError(err).Error("Failed to update ranking config")
		respondError(w, http.StatusInternalServerError, "Failed to update ranking config")
		return
	}

	// Weights changed: every cached sector/limit variant is stale now
	if err := h.cache.DeletePrefix(ctx, "rankings:"); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate rankings cache")
	}

	respondJSON(w, http.StatusOK, cfg)
}
