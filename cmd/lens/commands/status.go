package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show warehouse status and freshness",
	Long: `Queries the API server for warehouse row counts and the newest loaded
dates.

Example:
  go run ./cmd/lens status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, _, _, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("fetch status: %w", err)
	}

	PrintHeader("Warehouse status")
	fmt.Printf("  OK            : %v\n", status.OK)
	fmt.Printf("  DB connected  : %v\n", status.DBConnected)
	fmt.Printf("  Server time   : %s\n", status.ServerTime.Format(time.RFC3339))
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Screener rows      : %d\n", status.ScreenerRows)
	fmt.Printf("  Companies          : %d\n", status.DimCompanyRows)
	fmt.Printf("  Price rows         : %d\n", status.FactPricesRows)
	fmt.Printf("  Metrics rows       : %d\n", status.FactMetricsRows)
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("  Latest prices       : %s\n", fmtString(status.LatestPriceDate))
	fmt.Printf("  Latest metrics      : %s\n", fmtString(status.LatestMetricsDate))
	fmt.Printf("  Latest fundamentals : %s\n", fmtString(status.LatestFundamentalDate))
	if status.Notes != nil {
		fmt.Printf("  Notes               : %s\n", *status.Notes)
	}
	PrintFooter()
	return nil
}
