// Package ratings resolves a player's six-category rating snapshot from the
// published ratings API and recent event-page history.
package ratings

import (
	"errors"
	"time"
)

// ErrNoThirdWednesday is returned when the previous month has no third
// Wednesday. Every real month has at least four of each weekday, so this only
// fires on a corrupted clock; it is surfaced rather than silently producing
// an invalid cutoff.
var ErrNoThirdWednesday = errors.New("previous month has no third Wednesday")

// CutoffDate computes the rating-period boundary: two days before the third
// Wednesday of the month preceding now. Events dated before the cutoff are
// ignored during live-rating reconciliation.
func CutoffDate(now time.Time) (time.Time, error) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastOfPrevious := firstOfMonth.AddDate(0, 0, -1)

	wednesdays := 0
	day := time.Date(lastOfPrevious.Year(), lastOfPrevious.Month(), 1, 0, 0, 0, 0, now.Location())
	for day.Month() == lastOfPrevious.Month() {
		if day.Weekday() == time.Wednesday {
			wednesdays++
			if wednesdays == 3 {
				return day.AddDate(0, 0, -2), nil
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	return time.Time{}, ErrNoThirdWednesday
}
