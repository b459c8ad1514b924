package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marketlens/backend/internal/warehouse"
)

// rankingsCmd represents the rankings command
var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Show composite-score rankings",
	Long: `Prints the top rows by composite score under the active weight
configuration.

Example:
  go run ./cmd/lens rankings
  go run ./cmd/lens rankings --sector Technology --limit 20
  go run ./cmd/lens rankings config
  go run ./cmd/lens rankings set-weights --trend 0.4 --rsi 0.2 --value 0.2 --size 0.1 --yield 0.1`,
	RunE: runRankings,
}

// rankingsConfigCmd shows the active weight configuration.
var rankingsConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active ranking weight configuration",
	RunE:  runRankingsConfig,
}

// rankingsSetWeightsCmd updates the active weight configuration.
var rankingsSetWeightsCmd = &cobra.Command{
	Use:   "set-weights",
	Short: "Update the active ranking weights",
	Long: `Writes a new weight set to the active ranking configuration. The five
weights must sum to 1.0.

Example:
  go run ./cmd/lens rankings set-weights --trend 0.4 --rsi 0.2 --value 0.2 --size 0.1 --yield 0.1`,
	RunE: runRankingsSetWeights,
}

var (
	rankingsSector string
	rankingsLimit  int

	weightTrend float64
	weightRSI   float64
	weightValue float64
	weightSize  float64
	weightYield float64
)

func init() {
	rootCmd.AddCommand(rankingsCmd)
	rankingsCmd.AddCommand(rankingsConfigCmd)
	rankingsCmd.AddCommand(rankingsSetWeightsCmd)

	rankingsCmd.Flags().StringVar(&rankingsSector, "sector", "", "exact sector filter")
	rankingsCmd.Flags().IntVar(&rankingsLimit, "limit", 50, "maximum rows")

	rankingsSetWeightsCmd.Flags().Float64Var(&weightTrend, "trend", 0.35, "trend weight")
	rankingsSetWeightsCmd.Flags().Float64Var(&weightRSI, "rsi", 0.25, "RSI weight")
	rankingsSetWeightsCmd.Flags().Float64Var(&weightValue, "value", 0.20, "value weight")
	rankingsSetWeightsCmd.Flags().Float64Var(&weightSize, "size", 0.10, "size weight")
	rankingsSetWeightsCmd.Flags().Float64Var(&weightYield, "yield", 0.10, "yield weight")
}

func runRankings(cmd *cobra.Command, args []string) error {
	client, _, _, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := client.Rankings(ctx, rankingsSector, rankingsLimit)
	if err != nil {
		return fmt.Errorf("fetch rankings: %w", err)
	}

	PrintHeader(fmt.Sprintf("Rankings (%d rows)", len(rows)))
	fmt.Printf("  %4s  %-8s  %-24s  %8s  %7s  %7s  %7s  %7s  %7s\n",
		"#", "Ticker", "Name", "Score", "Trend", "RSI", "Value", "Size", "Yield")
	for i, row := range rows {
		name := fmtString(row.Name)
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Printf("  %4d  %-8s  %-24s  %8.4f  %7.3f  %7.3f  %7.3f  %7.3f  %7.3f\n",
			i+1, row.Ticker, name,
			row.Score, row.TrendScore, row.RSIScore, row.ValueScore, row.SizeScore, row.YieldScore)
	}
	PrintFooter()
	return nil
}

func runRankingsConfig(cmd *cobra.Command, args []string) error {
	client, _, _, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := client.RankingConfig(ctx)
	if err != nil {
		return fmt.Errorf("fetch ranking config: %w", err)
	}

	PrintHeader(fmt.Sprintf("Ranking config: %s", cfg.Name))
	for key, w := range cfg.Weights {
		fmt.Printf("  %-8s  %.3f\n", key, w)
	}
	PrintFooter()
	return nil
}

func runRankingsSetWeights(cmd *cobra.Command, args []string) error {
	client, _, _, err := newAPIClient()
	if err != nil {
		return err
	}

	newCfg := &warehouse.RankingConfig{
		Name: "default",
		Weights: map[string]float64{
			"trend": weightTrend,
			"rsi":   weightRSI,
			"value": weightValue,
			"size":  weightSize,
			"yield": weightYield,
		},
		Active: true,
	}
	// Fail fast locally; the server validates again.
	if err := newCfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.UpdateRankingConfig(ctx, newCfg); err != nil {
		return fmt.Errorf("update ranking config: %w", err)
	}

	fmt.Println("✅ Ranking weights updated")
	return nil
}
