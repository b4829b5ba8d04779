package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/config"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/pipeline"
)

var scanCommand = &cobra.Command{
	Use:   "scan",
	Short: "Scan a tournament page for USCF member IDs",
	Long: `Scans a page for member identifiers: IDs embedded in US Chess profile links are
trusted directly, while standalone 8-digit numbers in the page text are confirmed
against the ratings API before being reported.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runScanCmd,
}

var (
	scanConfigPath string
	scanPageURL    string
	scanAPIBase    string
	scanBatchSize  int
	scanUseBrowser bool
	scanVerbose    bool
)

func init() {
	scanCommand.Flags().StringVar(&scanConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	scanCommand.Flags().StringVarP(&scanPageURL, "url", "u", "", "Tournament page URL to scan")
	scanCommand.Flags().StringVar(&scanAPIBase, "api-base", "", "Ratings API base URL (defaults to the production host)")
	scanCommand.Flags().IntVar(&scanBatchSize, "batch-size", 0, "Concurrent lookups per validation batch")
	scanCommand.Flags().BoolVar(&scanUseBrowser, "use-browser", false, "Use headless browser for JS-rendered pages (requires Chrome)")
	scanCommand.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(scanCommand)
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd, scanConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("url") {
			cfg.PageURL = scanPageURL
		}
		if cmd.Flags().Changed("api-base") {
			cfg.RatingsAPIBase = scanAPIBase
		}
		if cmd.Flags().Changed("batch-size") {
			cfg.BatchSize = scanBatchSize
		}
		if cmd.Flags().Changed("use-browser") {
			cfg.UseBrowser = scanUseBrowser
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = scanVerbose
		}
	})
	if err != nil {
		return err
	}

	if cfg.PageURL == "" {
		return fmt.Errorf("--url must be provided (via flag or config)")
	}

	result, err := pipeline.ScanIdentifiers(context.Background(), pipeline.RunOptions{
		PageURL:        cfg.PageURL,
		RatingsAPIBase: cfg.RatingsAPIBase,
		BatchSize:      cfg.BatchSize,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
	})
	if err != nil {
		return err
	}

	if len(result.Merged) > 0 {
		fmt.Printf("%s\n", strings.Join(result.Merged, ", "))
	}
	return nil
}

// loadMergedConfig loads an optional config file, applies CLI overrides, and
// fills remaining gaps with defaults.
func loadMergedConfig(cmd *cobra.Command, configPath string, applyFlags func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loadedCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if cmd.Flags().Changed("verbose") {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", configPath)
		}
	}

	applyFlags(&cfg)

	cfg = cfg.MergeWithDefaults(config.Config{
		TableSelector: "#player-list",
		Output:        "uscf_ratings.csv",
		BatchSize:     5,
	})
	return cfg, nil
}
