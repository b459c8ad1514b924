package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lens",
	Short: "MarketLens - stock screener and comparison dashboard backend",
	Long: `MarketLens Unified CLI

Serves the dashboard REST API on top of the analytics warehouse and
provides terminal views of the same data.

Usage:
  go run ./cmd/lens [command]

Examples:
  go run ./cmd/lens api
  go run ./cmd/lens compare AAPL,MSFT --days 365
  go run ./cmd/lens screener --rsi-lte 30
  go run ./cmd/lens status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
