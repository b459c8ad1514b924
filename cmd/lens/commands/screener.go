package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketlens/backend/internal/marketapi"
)

// screenerCmd represents the screener command
var screenerCmd = &cobra.Command{
	Use:   "screener",
	Short: "Query the latest screener snapshot",
	Long: `Prints the latest screener snapshot from the API server, filtered the
same way the dashboard filters it.

Example:
  go run ./cmd/lens screener
  go run ./cmd/lens screener --q apple
  go run ./cmd/lens screener --sector Technology --rsi-lte 30 --bullish`,
	RunE: runScreener,
}

var (
	screenerQuery   string
	screenerSector  string
	screenerRSILte  float64
	screenerBullish bool
	screenerLimit   int
)

func init() {
	rootCmd.AddCommand(screenerCmd)

	screenerCmd.Flags().StringVar(&screenerQuery, "q", "", "ticker or name substring")
	screenerCmd.Flags().StringVar(&screenerSector, "sector", "", "exact sector filter")
	screenerCmd.Flags().Float64Var(&screenerRSILte, "rsi-lte", 0, "keep rows with RSI14 <= this value")
	screenerCmd.Flags().BoolVar(&screenerBullish, "bullish", false, "keep only bullish-trend rows")
	screenerCmd.Flags().IntVar(&screenerLimit, "limit", 50, "maximum rows")
}

func runScreener(cmd *cobra.Command, args []string) error {
	client, _, _, err := newAPIClient()
	if err != nil {
		return err
	}

	query := marketapi.ScreenerQuery{
		Query:  screenerQuery,
		Sector: screenerSector,
		Limit:  screenerLimit,
	}
	if cmd.Flags().Changed("rsi-lte") {
		query.RSILte = &screenerRSILte
	}
	if cmd.Flags().Changed("bullish") {
		query.Bullish = &screenerBullish
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := client.Screener(ctx, query)
	if err != nil {
		return fmt.Errorf("fetch screener: %w", err)
	}

	PrintHeader(fmt.Sprintf("Screener (%d rows)", len(rows)))
	fmt.Printf("  %-8s  %-28s  %-18s  %10s  %12s  %16s  %8s  %8s\n",
		"Ticker", "Name", "Sector", "Close", "Volume", "MktCap", "RSI14", "Bullish")
	for _, row := range rows {
		name := fmtString(row.Name)
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		sector := fmtString(row.Sector)
		if len(sector) > 18 {
			sector = sector[:15] + "..."
		}
		fmt.Printf("  %-8s  %-28s  %-18s  %10s  %12s  %16s  %8s  %8s\n",
			row.Ticker, name, sector,
			fmtFloat(row.ClosePrice, 2), fmtInt(row.Volume), fmtInt(row.MarketCap),
			fmtFloat(row.RSI14, 1), fmtBool(row.TrendBullish))
	}
	PrintFooter()
	return nil
}
