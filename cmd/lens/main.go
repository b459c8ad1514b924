package main

import (
	"os"

	"github.com/marketlens/backend/cmd/lens/commands"
)

// main is the entry point for the MarketLens CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
