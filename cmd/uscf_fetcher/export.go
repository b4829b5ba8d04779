package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/config"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/pipeline"
)

var exportCommand = &cobra.Command{
	Use:   "export",
	Short: "Export enriched player ratings from a registration page to CSV",
	Long: `Runs the full pipeline end-to-end: scan -> validate -> scrape registration table
-> resolve published ratings -> overlay live rating changes from recent events -> CSV.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runExportCmd,
}

var (
	exportConfigPath    string
	exportPageURL       string
	exportOutput        string
	exportTableSelector string
	exportAPIBase       string
	exportProfileBase   string
	exportBatchSize     int
	exportUseBrowser    bool
	exportVerbose       bool
)

func init() {
	exportCommand.Flags().StringVar(&exportConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	exportCommand.Flags().StringVarP(&exportPageURL, "url", "u", "", "Registration page URL")
	exportCommand.Flags().StringVarP(&exportOutput, "output", "o", "", "CSV output path")
	exportCommand.Flags().StringVar(&exportTableSelector, "table", "", "CSS selector of the registration table container")
	exportCommand.Flags().StringVar(&exportAPIBase, "api-base", "", "Ratings API base URL (defaults to the production host)")
	exportCommand.Flags().StringVar(&exportProfileBase, "profile-base", "", "Player-profile base URL (defaults to the production host)")
	exportCommand.Flags().IntVar(&exportBatchSize, "batch-size", 0, "Concurrent lookups per validation batch")
	exportCommand.Flags().BoolVar(&exportUseBrowser, "use-browser", false, "Use headless browser for JS-rendered pages (requires Chrome)")
	exportCommand.Flags().BoolVarP(&exportVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(exportCommand)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadMergedConfig(cmd, exportConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("url") {
			cfg.PageURL = exportPageURL
		}
		if cmd.Flags().Changed("output") {
			cfg.Output = exportOutput
		}
		if cmd.Flags().Changed("table") {
			cfg.TableSelector = exportTableSelector
		}
		if cmd.Flags().Changed("api-base") {
			cfg.RatingsAPIBase = exportAPIBase
		}
		if cmd.Flags().Changed("profile-base") {
			cfg.ProfileBase = exportProfileBase
		}
		if cmd.Flags().Changed("batch-size") {
			cfg.BatchSize = exportBatchSize
		}
		if cmd.Flags().Changed("use-browser") {
			cfg.UseBrowser = exportUseBrowser
		}
		if cmd.Flags().Changed("verbose") {
			cfg.Verbose = exportVerbose
		}
	})
	if err != nil {
		return err
	}

	if cfg.PageURL == "" {
		return fmt.Errorf("--url must be provided (via flag or config)")
	}

	_, err = pipeline.RunExport(context.Background(), pipeline.RunOptions{
		PageURL:        cfg.PageURL,
		TableSelector:  cfg.TableSelector,
		RatingsAPIBase: cfg.RatingsAPIBase,
		ProfileBase:    cfg.ProfileBase,
		OutputPath:     cfg.Output,
		BatchSize:      cfg.BatchSize,
		UseBrowser:     cfg.UseBrowser,
		Verbose:        cfg.Verbose,
	})
	return err
}
