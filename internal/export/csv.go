// Package export assembles enriched players into the downloadable CSV table.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/types"
)

// Header is the fixed CSV header row.
var Header = []string{
	"USCF ID", "Name",
	"Regular", "Quick", "Blitz",
	"Online Reg", "Online Quick", "Online Blitz",
}

// Format renders players as CSV text. The header is always present; the name
// field is always quoted so embedded commas survive. No field validation is
// performed.
func Format(players []types.EnrichedPlayer) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(Header, ","))
	sb.WriteString("\n")

	for _, player := range players {
		fields := make([]string, 0, len(Header))
		fields = append(fields, player.ID, quote(player.Name))
		for _, category := range types.Categories {
			fields = append(fields, player.Ratings[category])
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteFile writes the CSV to path. The content is staged in a temp file and
// renamed into place so a failed write never clobbers an existing export.
func WriteFile(path string, players []types.EnrichedPlayer) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".uscf-export-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(Format(players)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close export: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to move export into place: %w", err)
	}
	return nil
}

// quote wraps a field in double quotes, doubling any embedded quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
