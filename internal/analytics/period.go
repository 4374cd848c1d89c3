// Package analytics computes habit statistics: current and longest
// streaks, completion rates, and ranked user overviews. All functions
// are pure and stateless; they operate on completion dates already
// fetched from storage and perform no I/O.
package analytics

import (
	"sort"
	"time"

	"github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
)

// Policy holds the tunable continuity rules for streak computation.
type Policy struct {
	// GracePeriods is the number of fully missed periods tolerated
	// before the current streak resets. With the default of 0 the most
	// recent completion must fall in the period containing the as-of
	// date or the period immediately before it.
	GracePeriods int
}

// DefaultPolicy requires a completion in the current or immediately
// preceding period to keep a streak alive.
var DefaultPolicy = Policy{GracePeriods: 0}

// dateOnly truncates a time to its calendar date at UTC midnight, so
// that period arithmetic is insensitive to timestamps and timezones.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole calendar days from one date
// to another. Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

// periodIndex returns the index of the fixed-length period a date falls
// into, counted backward from the as-of date. Period 0 contains the
// as-of date. Dates after the as-of date yield a negative index.
func periodIndex(freq models.Frequency, asOf, date time.Time) int {
	days := daysBetween(date, asOf)
	periodDays := freq.PeriodDays()
	if days < 0 {
		// Integer division truncates toward zero; force future dates
		// below period 0 so callers can filter them out uniformly.
		return -1
	}
	return days / periodDays
}

// completedPeriods maps completion dates to the sorted, deduplicated
// set of period indices that contain at least one completion. Dates
// after the as-of date are discarded.
func completedPeriods(freq models.Frequency, dates []time.Time, asOf time.Time) ([]int, error) {
	if freq.PeriodDays() == 0 {
		return nil, errors.InvalidStatef("frequency %q is not one of daily, weekly, monthly", freq)
	}

	seen := make(map[int]struct{}, len(dates))
	for _, d := range dates {
		idx := periodIndex(freq, asOf, d)
		if idx < 0 {
			continue
		}
		seen[idx] = struct{}{}
	}

	indices := make([]int, 0, len(seen))
	for idx := range seen {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, nil
}
