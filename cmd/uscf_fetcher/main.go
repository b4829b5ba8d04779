// Package main provides the entry point for the USCF ratings fetcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uscf_fetcher",
	Short: "USCF tournament ratings fetcher",
	Long:  "uscf_fetcher scans tournament-registration pages for USCF member IDs, validates them against the ratings API, enriches each player with live rating changes mined from recent event pages, and exports the result as CSV.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
