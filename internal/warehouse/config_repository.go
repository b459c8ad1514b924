package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoActiveConfig is returned when no active ranking config row exists.
var ErrNoActiveConfig = errors.New("no active ranking config found")

// ConfigRepository reads and writes the ranking weight configuration.
type ConfigRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository creates a new config repository.
func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

// GetActive returns the most recently updated active config.
func (r *ConfigRepository) GetActive(ctx context.Context) (*RankingConfig, error) {
	query := `
		SELECT name, weights, params, active
		FROM warehouse.ranking_config
		WHERE active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var cfg RankingConfig
	var weights, params []byte
	err := r.pool.QueryRow(ctx, query).Scan(&cfg.Name, &weights, &params, &cfg.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveConfig
	}
	if err != nil {
		return nil, fmt.Errorf("query ranking config: %w", err)
	}

	if err := json.Unmarshal(weights, &cfg.Weights); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}
	cfg.Params = decodeJSONMap(params)
	return &cfg, nil
}

// UpdateActive replaces the weights and params of the active config row.
// The config must already be validated.
func (r *ConfigRepository) UpdateActive(ctx context.Context, cfg *RankingConfig) error {
	weights, err := json.Marshal(cfg.Weights)
	if err != nil {
		return fmt.Errorf("encode weights: %w", err)
	}
	params, err := json.Marshal(cfg.Params)
	if err != nil {
		return fmt.Errorf("encode params: %w", err)
	}

	query := `
		UPDATE warehouse.ranking_config
		SET weights = $1::jsonb,
			params = $2::jsonb,
			updated_at = NOW()
		WHERE active = TRUE
	`

	if _, err := r.pool.Exec(ctx, query, weights, params); err != nil {
		return fmt.Errorf("update ranking config: %w", err)
	}
	return nil
}
