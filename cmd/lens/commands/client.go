package commands

import (
	"fmt"

	"github.com/marketlens/backend/internal/marketapi"
	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/httputil"
	"github.com/marketlens/backend/pkg/logger"
)

// newAPIClient builds the upstream client every read command shares. The
// client is rate-limited per LENS_API_RATE_LIMIT so CLI fan-out (the compare
// workers in particular) cannot hammer the API server.
func newAPIClient() (*marketapi.Client, *config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	httpClient := httputil.NewWithTimeout(log, cfg.Upstream.Timeout)
	if cfg.Upstream.RateLimit > 0 {
		httpClient = httpClient.WithRateLimit(cfg.Upstream.RateLimit, cfg.Upstream.RateBurst)
	}

	return marketapi.NewClient(cfg.Upstream.BaseURL, httpClient, log), cfg, log, nil
}
