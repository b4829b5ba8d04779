// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintIdentifierSet outputs the result of an identifier scan.
func (p *Printer) PrintIdentifierSet(set types.IdentifierSet) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Trusted (linked):   %d\n", len(set.Trusted)))
	sb.WriteString(fmt.Sprintf("Candidates (text):  %d\n", len(set.Candidates)))
	sb.WriteString("\n")

	writeIDList(&sb, "Trusted", set.Trusted)
	writeIDList(&sb, "Candidates", set.Candidates)

	p.printBox("Identifier Scan", strings.TrimRight(sb.String(), "\n"))
}

// PrintPlayers outputs a summary of the scraped registration table.
func (p *Printer) PrintPlayers(players []types.PlayerEntry) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Players: %d\n\n", len(players)))
	count := min(len(players), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", players[i].ID, players[i].Name))
	}
	if len(players) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(players)-maxItemsToShow))
	}

	p.printBox("Registration Table", strings.TrimRight(sb.String(), "\n"))
}

// PrintSnapshot outputs one player's resolved ratings.
func (p *Printer) PrintSnapshot(player types.EnrichedPlayer) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s (%s)\n\n", player.Name, player.ID))
	for _, category := range types.Categories {
		sb.WriteString(fmt.Sprintf("  %-3s %s\n", category, player.Ratings[category]))
	}

	p.printBox("Rating Snapshot", strings.TrimRight(sb.String(), "\n"))
}

func writeIDList(sb *strings.Builder, label string, ids []string) {
	if len(ids) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	count := min(len(ids), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", ids[i]))
	}
	if len(ids) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(ids)-maxItemsToShow))
	}
}
