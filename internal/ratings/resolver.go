package ratings

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/types"
	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/uschess"
)

var (
	// eventHref matches profile-page event links: an 8-digit YYYYMMDD date
	// prefix followed by the rest of the path segment.
	eventHref = regexp.MustCompile(`/event/(\d{8})[^\s"'<>]*`)

	// tagMarkup matches HTML tags in event-row fragments. Each tag is
	// replaced by a separator so adjacent cell texts do not run together.
	tagMarkup = regexp.MustCompile(`<[^>]*>`)

	// changePatterns match the inline "<code>: <old> => <new>" annotations
	// for the three over-the-board categories. The \b keeps R from matching
	// inside OR.
	changePatterns = map[types.Category]*regexp.Regexp{
		types.CategoryRegular: regexp.MustCompile(`\bR\s*:\s*(\d+)\s*=>\s*(\d+)`),
		types.CategoryQuick:   regexp.MustCompile(`\bQ\s*:\s*(\d+)\s*=>\s*(\d+)`),
		types.CategoryBlitz:   regexp.MustCompile(`\bB\s*:\s*(\d+)\s*=>\s*(\d+)`),
	}
)

// rowMarker splits event pages into row-like fragments.
const rowMarker = "<tr"

// Resolver produces a fully populated rating snapshot for a confirmed
// identifier. Every fetch and parse step is best-effort: a failure leaves
// the snapshot at whatever was already accumulated.
type Resolver struct {
	Client *uschess.Client

	// Now is the wall clock used for the cutoff computation. Overridable
	// for tests; defaults to time.Now.
	Now func() time.Time

	Verbose bool
}

// NewResolver returns a Resolver using the given client.
func NewResolver(client *uschess.Client) *Resolver {
	return &Resolver{
		Client: client,
		Now:    time.Now,
	}
}

// Resolve returns the snapshot for one identifier: published ratings from
// the members API, overlaid with live changes from qualifying event pages,
// newest event first. It never returns an error; the all-Unrated default is
// the floor.
func (r *Resolver) Resolve(ctx context.Context, id string) types.RatingSnapshot {
	snap := types.NewRatingSnapshot()

	r.applyPublished(ctx, id, snap)

	cutoff, err := CutoffDate(r.now())
	if err != nil {
		// Without a valid cutoff the live scan has no window; keep the
		// published baseline.
		return snap
	}

	profileHTML, err := r.Client.ProfilePage(ctx, id)
	if err != nil {
		return snap
	}

	events := DiscoverEvents(profileHTML, cutoff, r.Client.ResolveEventURL)

	// Processing order is newest to oldest. Once a newer event has written a
	// category, older events must not overwrite it.
	written := make(map[types.Category]bool)
	for _, event := range events {
		eventHTML, err := r.Client.EventPage(ctx, event.URL)
		if err != nil {
			continue
		}

		changes, online := ScanEventPage(eventHTML, id)
		for _, base := range types.BaseCategories {
			value, ok := changes[base]
			if !ok {
				continue
			}
			target := base
			if online {
				target = base.Online()
			}
			if written[target] {
				continue
			}
			snap[target] = value
			written[target] = true
		}
	}

	return snap
}

// applyPublished overlays the member endpoint's published ratings onto snap.
// Unknown category codes and empty values are skipped; any failure leaves
// snap untouched.
func (r *Resolver) applyPublished(ctx context.Context, id string, snap types.RatingSnapshot) {
	member, err := r.Client.LookupMember(ctx, id)
	if err != nil {
		return
	}
	for _, rating := range member.Ratings {
		code := types.Category(rating.RatingSystem)
		if !code.Known() {
			continue
		}
		if value := rating.Value(); value != "" {
			snap[code] = value
		}
	}
}

// DiscoverEvents extracts event references from profile-page HTML. Events
// are deduplicated by resolved URL, events dated before cutoff are dropped,
// and the result is sorted newest first.
func DiscoverEvents(profileHTML string, cutoff time.Time, resolveURL func(string) string) []types.EventReference {
	seen := make(map[string]bool)
	var events []types.EventReference

	for _, match := range eventHref.FindAllStringSubmatch(profileHTML, -1) {
		eventURL := match[0]
		if resolveURL != nil {
			eventURL = resolveURL(eventURL)
		}
		if seen[eventURL] {
			continue
		}
		seen[eventURL] = true

		date, err := time.Parse("20060102", match[1])
		if err != nil {
			continue
		}
		if date.Before(cutoff) {
			continue
		}

		events = append(events, types.EventReference{
			Date: date,
			URL:  eventURL,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})
	return events
}

// ScanEventPage mines an event page for the identifier's rating changes.
// The page is split into row fragments; each fragment containing the identifier
// is tag-stripped and matched against the change patterns. Returns the new
// values per base category and whether the event is online.
func ScanEventPage(eventHTML, id string) (map[types.Category]string, bool) {
	online := strings.Contains(strings.ToLower(eventHTML), "online")

	changes := make(map[types.Category]string)
	for _, fragment := range strings.Split(eventHTML, rowMarker) {
		if !strings.Contains(fragment, id) {
			continue
		}
		flattened := tagMarkup.ReplaceAllString(fragment, " ")
		for base, pattern := range changePatterns {
			if _, done := changes[base]; done {
				continue
			}
			if m := pattern.FindStringSubmatch(flattened); m != nil {
				changes[base] = m[2]
			}
		}
	}
	return changes, online
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}
