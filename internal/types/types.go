// Package types provides type definitions for structured data used throughout the ratings-fetcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// Unrated is the sentinel value for a rating category with no known rating.
const Unrated = "Unrated"

// Category identifies one of the six fixed rating categories.
type Category string

// Rating category codes as they appear in the ratings API and event pages.
const (
	CategoryRegular     Category = "R"
	CategoryQuick       Category = "Q"
	CategoryBlitz       Category = "B"
	CategoryOnlineReg   Category = "OR"
	CategoryOnlineQuick Category = "OQ"
	CategoryOnlineBlitz Category = "OB"
)

// Categories lists all six category codes in export order.
var Categories = []Category{
	CategoryRegular,
	CategoryQuick,
	CategoryBlitz,
	CategoryOnlineReg,
	CategoryOnlineQuick,
	CategoryOnlineBlitz,
}

// BaseCategories lists the three over-the-board codes that appear in
// event-page rating-change annotations.
var BaseCategories = []Category{
	CategoryRegular,
	CategoryQuick,
	CategoryBlitz,
}

// Online maps a base category to its online variant. Categories that are
// already online variants map to themselves.
func (c Category) Online() Category {
	switch c {
	case CategoryRegular:
		return CategoryOnlineReg
	case CategoryQuick:
		return CategoryOnlineQuick
	case CategoryBlitz:
		return CategoryOnlineBlitz
	}
	return c
}

// Known reports whether c is one of the six fixed category codes.
func (c Category) Known() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// RatingSnapshot maps every rating category to a value: a numeric string or
// the Unrated sentinel. Every category always has an entry.
type RatingSnapshot map[Category]string

// NewRatingSnapshot returns a snapshot with all six categories set to Unrated.
func NewRatingSnapshot() RatingSnapshot {
	snap := make(RatingSnapshot, len(Categories))
	for _, c := range Categories {
		snap[c] = Unrated
	}
	return snap
}

// IdentifierSet holds identifiers partitioned by provenance. Trusted holds
// identifiers derived from structured links; Candidates holds free-text
// tokens that still require confirmation. The two collections are disjoint
// and carry no ordering guarantee.
type IdentifierSet struct {
	Trusted    []string `json:"trusted"`
	Candidates []string `json:"candidates"`
}

// PlayerEntry is a single row scraped from a registration table.
type PlayerEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EventReference points at a rated-event page discovered on a player's
// profile. Date is parsed from the 8-digit YYYYMMDD prefix of the event path.
type EventReference struct {
	Date time.Time `json:"date"`
	URL  string    `json:"url"`
}

// EnrichedPlayer is a PlayerEntry merged with its final rating snapshot.
// It is created once the resolver completes and never mutated afterwards.
type EnrichedPlayer struct {
	PlayerEntry
	Ratings RatingSnapshot `json:"ratings"`
}
