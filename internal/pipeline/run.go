// Package pipeline provides the high-level orchestration for identifier
// discovery, validation, rating enrichment, and CSV export.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/export"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/observability"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/page"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/ratings"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/scan"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/types"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/uschess"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/validate"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names used in progress events.
const (
	StepLoadPage = "load_page"
	StepExtract  = "extract_identifiers"
	StepValidate = "validate_candidates"
	StepPlayers  = "scrape_players"
	StepResolve  = "resolve_ratings"
	StepWriteCSV = "write_csv"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	PageURL        string
	TableSelector  string
	RatingsAPIBase string
	ProfileBase    string
	OutputPath     string
	BatchSize      int
	UseBrowser     bool
	Verbose        bool
	OnProgress     ProgressCallback
}

// ScanResult holds the outcome of an identifier scan.
type ScanResult struct {
	Set       types.IdentifierSet
	Confirmed []string
	Merged    []string
}

// ExportResult holds the outcome of a full export run.
type ExportResult struct {
	Players    []types.EnrichedPlayer
	Merged     []string
	OutputPath string
}

type runner struct {
	opts    RunOptions
	runID   uuid.UUID
	printer *observability.Printer
}

func (r *runner) emit(step, message string) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   r.runID.String(),
		})
	}
}

// ScanIdentifiers loads the page, extracts identifiers, and confirms the
// free-text candidates against the ratings registry. A page that yields no
// identifiers at all is a reported terminal condition, not an error.
func ScanIdentifiers(ctx context.Context, opts RunOptions) (*ScanResult, error) {
	r := &runner{opts: opts, runID: uuid.New(), printer: observability.NewPrinter(os.Stdout)}

	set, err := r.loadAndExtract(ctx)
	if err != nil {
		return nil, err
	}

	if len(set.Candidates) > 0 {
		fmt.Printf("Step 2/2: Validating %d other numbers...\n", len(set.Candidates))
	}
	confirmed := r.validateCandidates(ctx, set.Candidates)

	merged := mergeIdentifiers(set.Trusted, confirmed)
	if len(merged) == 0 {
		fmt.Printf("No identifiers found. Try a page with player links or a visible entry list.\n")
	} else {
		fmt.Printf("Done! Found %d unique IDs. (Links: %d | Text scan: %d)\n",
			len(merged), len(set.Trusted), len(confirmed))
	}

	return &ScanResult{Set: set, Confirmed: confirmed, Merged: merged}, nil
}

// RunExport runs the full enrichment pipeline: identifier scan, registration
// table scrape, per-player rating resolution, and CSV export. Zero players is
// a reported terminal condition; no file is written in that case.
func RunExport(ctx context.Context, opts RunOptions) (*ExportResult, error) {
	r := &runner{opts: opts, runID: uuid.New(), printer: observability.NewPrinter(os.Stdout)}

	fmt.Printf("Step 1/4: Loading page: %s...\n", opts.PageURL)
	loader := page.NewLoader(opts.UseBrowser, opts.Verbose)
	doc, err := loader.Load(ctx, opts.PageURL)
	if err != nil {
		return nil, fmt.Errorf("page load failed: %w", err)
	}
	r.emit(StepLoadPage, fmt.Sprintf("Loaded %s", opts.PageURL))

	fmt.Printf("Step 2/4: Scanning for identifiers...\n")
	set := scan.ExtractIdentifiers(doc, nil)
	if opts.Verbose {
		r.printer.PrintIdentifierSet(set)
	}
	confirmed := r.validateCandidates(ctx, set.Candidates)
	merged := mergeIdentifiers(set.Trusted, confirmed)

	fmt.Printf("Step 3/4: Scraping registration table...\n")
	players := scan.ExtractPlayers(doc, opts.TableSelector)
	if opts.Verbose {
		r.printer.PrintPlayers(players)
	}
	r.emit(StepPlayers, fmt.Sprintf("Found %d players", len(players)))

	if len(players) == 0 {
		fmt.Printf("No players found. Try scrolling down or expanding the table before exporting.\n")
		return &ExportResult{Merged: merged}, nil
	}

	fmt.Printf("Step 4/4: Resolving ratings for %d players...\n", len(players))
	client := uschess.NewClient(opts.RatingsAPIBase, opts.ProfileBase)
	resolver := ratings.NewResolver(client)
	resolver.Verbose = opts.Verbose

	enriched := make([]types.EnrichedPlayer, 0, len(players))
	for i, player := range players {
		snap := resolver.Resolve(ctx, player.ID)
		enriched = append(enriched, types.EnrichedPlayer{
			PlayerEntry: player,
			Ratings:     snap,
		})
		r.emit(StepResolve, fmt.Sprintf("Resolved %d/%d", i+1, len(players)))
		if opts.Verbose {
			r.printer.PrintSnapshot(enriched[len(enriched)-1])
		}
	}

	result := &ExportResult{Players: enriched, Merged: merged}

	if opts.OutputPath != "" {
		if err := export.WriteFile(opts.OutputPath, enriched); err != nil {
			return result, fmt.Errorf("csv export failed: %w", err)
		}
		result.OutputPath = opts.OutputPath
		r.emit(StepWriteCSV, fmt.Sprintf("Wrote %s", opts.OutputPath))
		fmt.Printf("Done! Wrote %d players to %s.\n", len(enriched), opts.OutputPath)
	}

	return result, nil
}

// loadAndExtract loads the page and runs identifier extraction.
func (r *runner) loadAndExtract(ctx context.Context) (types.IdentifierSet, error) {
	fmt.Printf("Step 1/2: Loading page: %s...\n", r.opts.PageURL)
	loader := page.NewLoader(r.opts.UseBrowser, r.opts.Verbose)
	doc, err := loader.Load(ctx, r.opts.PageURL)
	if err != nil {
		return types.IdentifierSet{}, fmt.Errorf("page load failed: %w", err)
	}
	r.emit(StepLoadPage, fmt.Sprintf("Loaded %s", r.opts.PageURL))

	set := scan.ExtractIdentifiers(doc, nil)
	if r.opts.Verbose {
		r.printer.PrintIdentifierSet(set)
	}
	r.emit(StepExtract, fmt.Sprintf("Found %d linked IDs, %d candidates", len(set.Trusted), len(set.Candidates)))
	return set, nil
}

// validateCandidates confirms free-text candidates, reporting progress
// between batches.
func (r *runner) validateCandidates(ctx context.Context, candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}

	client := uschess.NewClient(r.opts.RatingsAPIBase, r.opts.ProfileBase)
	validator := validate.NewValidator(client)
	if r.opts.BatchSize > 0 {
		validator.BatchSize = r.opts.BatchSize
	}
	validator.OnBatch = func(checked, total int) {
		if r.opts.Verbose {
			fmt.Printf("[VERBOSE] API check: %d/%d\n", checked, total)
		}
		r.emit(StepValidate, fmt.Sprintf("API check: %d/%d", checked, total))
	}

	return validator.ConfirmCandidates(ctx, candidates)
}

// mergeIdentifiers unions trusted and confirmed identifiers, deduplicated.
// The inputs are already disjoint by the extractor's contract; the map guards
// against callers that merge overlapping sets.
func mergeIdentifiers(trusted, confirmed []string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, id := range append(append([]string{}, trusted...), confirmed...) {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged
}
