package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketlens/backend/internal/api"
	"github.com/marketlens/backend/internal/api/handlers"
	"github.com/marketlens/backend/internal/comparison"
	"github.com/marketlens/backend/internal/freshness"
	"github.com/marketlens/backend/internal/warehouse"
	"github.com/marketlens/backend/pkg/config"
	"github.com/marketlens/backend/pkg/database"
	"github.com/marketlens/backend/pkg/logger"
	"github.com/marketlens/backend/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the dashboard API server",
	Long: `Starts the REST API server for the dashboard frontend.

Endpoints:
  GET  /health                        - Health check
  GET  /api/screener                  - Latest snapshot with filters
  GET  /api/company/{ticker}/series   - Daily price and metrics series
  GET  /api/rankings                  - Composite-score rankings
  GET  /api/ranking-config            - Active ranking weights
  PUT  /api/ranking-config            - Update ranking weights
  GET  /api/status                    - Warehouse freshness and counts
  GET  /api/compare                   - Multi-ticker comparison payload

Example:
  go run ./cmd/lens api
  go run ./cmd/lens api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== MarketLens API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "lens")

	// 5. Create repositories
	screenerRepo := warehouse.NewScreenerRepository(db.Pool)
	seriesRepo := warehouse.NewSeriesRepository(db.Pool)
	rankingRepo := warehouse.NewRankingRepository(db.Pool)
	configRepo := warehouse.NewConfigRepository(db.Pool)
	statusRepo := warehouse.NewStatusRepository(db.Pool)

	// 6. Create comparison service backed by the warehouse
	compareService := comparison.NewService(seriesRepo, cfg.Compare.Workers, log)

	// 7. Create handlers
	h := &handlers.Handlers{
		Screener: handlers.NewScreenerHandler(screenerRepo, cache, log),
		Series:   handlers.NewSeriesHandler(seriesRepo, cache, log),
		Ranking:  handlers.NewRankingHandler(rankingRepo, configRepo, cache, log),
		Status:   handlers.NewStatusHandler(statusRepo, log),
		Compare:  handlers.NewCompareHandler(compareService, cfg.Compare, log),
	}

	// 8. Create router and server
	router := api.NewRouter(h, cfg.CORSOrigins, log)
	server := api.New(cfg, log, router)

	// 9. Start freshness watcher
	var watcher *freshness.Watcher
	if cfg.Freshness.Enabled {
		watcher = freshness.New(statusRepo, cfg.Freshness, log)
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("start freshness watcher: %w", err)
		}
	}

	// 10. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if watcher != nil {
		watcher.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
