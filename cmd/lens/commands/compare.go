package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketlens/backend/internal/comparison"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare TICKERS",
	Short: "Compare tickers' normalized performance",
	Long: `Fetches each ticker's daily series from the API server, aligns them by
date and prints the base-100 performance index side by side.

The first ticker argument is a comma-separated list.

Example:
  go run ./cmd/lens compare AAPL,MSFT
  go run ./cmd/lens compare AAPL,MSFT,GOOG --days 90 --rows 20`,
	Args: cobra.ExactArgs(1),
	RunE: runCompare,
}

var (
	compareDays int
	compareRows int
)

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().IntVar(&compareDays, "days", 0, "lookback window in days (default from config)")
	compareCmd.Flags().IntVar(&compareRows, "rows", 15, "number of most recent rows to print")
}

func runCompare(cmd *cobra.Command, args []string) error {
	client, cfg, log, err := newAPIClient()
	if err != nil {
		return err
	}
	service := comparison.NewService(client, cfg.Compare.Workers, log)

	days := cfg.Compare.DefaultDays
	if compareDays > 0 {
		days = compareDays
	}

	tickers := strings.Split(args[0], ",")
	if len(tickers) > cfg.Compare.MaxTickers {
		return fmt.Errorf("too many tickers: %d (max %d)", len(tickers), cfg.Compare.MaxTickers)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := service.Compare(ctx, tickers, days)
	if err != nil {
		return fmt.Errorf("build comparison: %w", err)
	}

	PrintHeader(fmt.Sprintf("Performance comparison (%d days, base 100)", days))
	fmt.Printf("  Tickers   : %s\n", strings.Join(result.Tickers, ", "))
	for _, ticker := range result.Tickers {
		fmt.Printf("  %-8s  color %s\n", ticker, result.Colors[ticker])
	}
	for ticker, msg := range result.Errors {
		fmt.Printf("  ⚠ %s: %s\n", ticker, msg)
	}
	fmt.Println("───────────────────────────────────────────────────────────")

	rows := result.Normalized
	if compareRows > 0 && len(rows) > compareRows {
		rows = rows[len(rows)-compareRows:]
	}

	fmt.Printf("  %-12s", "Date")
	for _, ticker := range result.Tickers {
		fmt.Printf("  %10s", ticker)
	}
	fmt.Println()

	for _, row := range rows {
		fmt.Printf("  %-12s", row.Date)
		for _, ticker := range result.Tickers {
			fmt.Printf("  %10s", fmtFloat(row.Value(ticker), 2))
		}
		fmt.Println()
	}

	PrintFooter()
	return nil
}
