// Package validate confirms candidate identifiers against the US Chess
// ratings registry.
package validate

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Tomayhawk/uscf-ratings-fetcher/internal/uschess"
)

// DefaultBatchSize bounds the number of lookup requests in flight at once.
const DefaultBatchSize = 5

// datePrefixes are the leading digits of 8-digit tokens that are almost
// always dates, not member identifiers. They are rejected without a lookup.
var datePrefixes = []string{"202", "199"}

// BatchProgress reports validation progress between batches.
type BatchProgress func(checked, total int)

// Validator confirms candidate identifiers in rate-limited batches.
type Validator struct {
	Client    *uschess.Client
	BatchSize int
	OnBatch   BatchProgress
}

// NewValidator returns a Validator with the default batch size.
func NewValidator(client *uschess.Client) *Validator {
	return &Validator{
		Client:    client,
		BatchSize: DefaultBatchSize,
	}
}

// LooksLikeDate reports whether an identifier starts with a date prefix and
// should be rejected without a network call.
func LooksLikeDate(id string) bool {
	for _, prefix := range datePrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// ConfirmCandidates returns the subset of candidates that exist in the
// ratings registry. Lookups run concurrently within a batch; batches run
// sequentially. A failed lookup means "not confirmed", never a fatal error.
func (v *Validator) ConfirmCandidates(ctx context.Context, candidates []string) []string {
	batchSize := v.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var remaining []string
	for _, id := range candidates {
		if !LooksLikeDate(id) {
			remaining = append(remaining, id)
		}
	}

	var mu sync.Mutex
	var confirmed []string

	for start := 0; start < len(remaining); start += batchSize {
		end := start + batchSize
		if end > len(remaining) {
			end = len(remaining)
		}

		g := new(errgroup.Group)
		for _, id := range remaining[start:end] {
			g.Go(func() error {
				if v.confirm(ctx, id) {
					mu.Lock()
					confirmed = append(confirmed, id)
					mu.Unlock()
				}
				return nil
			})
		}
		// Goroutines never return errors; Wait only serializes the batch.
		_ = g.Wait()

		if v.OnBatch != nil {
			v.OnBatch(end, len(remaining))
		}
	}

	// Stable output for logging and tests; the set itself is unordered.
	sort.Strings(confirmed)
	return confirmed
}

// confirm looks up a single identifier. Confirmation requires a successful
// response carrying a matching id field.
func (v *Validator) confirm(ctx context.Context, id string) bool {
	member, err := v.Client.LookupMember(ctx, id)
	if err != nil {
		return false
	}
	return member.IdentifierString() == id
}
