// Package scan extracts USCF member identifiers and registration-table
// players from tournament pages.
package scan

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/page"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/types"
)

// DefaultTrustedHosts are the link-target fragments that mark a hyperlink as
// a ratings-profile or ratings-API reference. An 8-digit number inside such a
// link is taken as a trusted identifier.
var DefaultTrustedHosts = []string{
	"uschess.org/player",
	"ratings-api.uschess.org",
}

// DefaultTableSelector is the container holding the registration table.
const DefaultTableSelector = "#player-list"

var (
	idDigits     = regexp.MustCompile(`\d{8}`)
	standaloneID = regexp.MustCompile(`\b\d{8}\b`)
	allDigits    = regexp.MustCompile(`^\d+$`)
)

// ExtractIdentifiers scans a page for identifier-shaped tokens and partitions
// them by provenance. Identifiers found in links matching one of the trusted
// host fragments are trusted; standalone 8-digit tokens in the visible text
// are candidates. An identifier never appears in both collections.
func ExtractIdentifiers(src page.Source, trustedHosts []string) types.IdentifierSet {
	if len(trustedHosts) == 0 {
		trustedHosts = DefaultTrustedHosts
	}

	trusted := make(map[string]bool)
	for _, link := range src.Links() {
		if !matchesTrustedHost(link.Href, trustedHosts) {
			continue
		}
		if id := idDigits.FindString(link.Href); id != "" {
			trusted[id] = true
		}
	}

	candidates := make(map[string]bool)
	for _, token := range standaloneID.FindAllString(src.Text(), -1) {
		if !trusted[token] {
			candidates[token] = true
		}
	}

	return types.IdentifierSet{
		Trusted:    sortedKeys(trusted),
		Candidates: sortedKeys(candidates),
	}
}

// ExtractPlayers scrapes the registration table into player entries. Rows
// with fewer than three cells, or whose identifier cell is not all digits,
// are discarded.
func ExtractPlayers(src page.Source, tableSelector string) []types.PlayerEntry {
	if tableSelector == "" {
		tableSelector = DefaultTableSelector
	}

	var players []types.PlayerEntry
	for _, cells := range src.TableRows(tableSelector) {
		if len(cells) < 3 {
			continue
		}
		id := strings.TrimSpace(cells[1])
		if !allDigits.MatchString(id) {
			continue
		}
		players = append(players, types.PlayerEntry{
			ID:   id,
			Name: strings.TrimSpace(cells[2]),
		})
	}
	return players
}

func matchesTrustedHost(href string, trustedHosts []string) bool {
	for _, fragment := range trustedHosts {
		if strings.Contains(href, fragment) {
			return true
		}
	}
	return false
}

// sortedKeys flattens a set into a slice. The sort keeps output stable for
// callers that log or diff results; consumers must not rely on it.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
