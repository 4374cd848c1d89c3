package analytics

import (
	"time"

	"github.com/mweber/cadence/internal/models"
)

// StreakResult holds the derived streak lengths for a single habit as
// of a given date. It is computed on every request and never stored.
type StreakResult struct {
	Current int       `json:"current_streak"`
	Longest int       `json:"longest_streak"`
	AsOf    time.Time `json:"as_of"`
}

// ComputeStreak computes the current and longest consecutive-period
// streaks for one habit. dates are the habit's completion dates in any
// order; completions after the as-of date are ignored. The computation
// is O(n) in the number of completions.
func ComputeStreak(freq models.Frequency, dates []time.Time, asOf time.Time, policy Policy) (StreakResult, error) {
	result := StreakResult{AsOf: dateOnly(asOf)}

	indices, err := completedPeriods(freq, dates, asOf)
	if err != nil {
		return StreakResult{}, err
	}
	if len(indices) == 0 {
		return result, nil
	}

	// Current streak: walk forward from the most recent completed
	// period. It only counts if that period is the as-of period, the
	// one immediately before it, or within the configured grace window.
	if indices[0] <= 1+policy.GracePeriods {
		result.Current = 1
		for i := 1; i < len(indices); i++ {
			if indices[i] != indices[i-1]+1 {
				break
			}
			result.Current++
		}
	}

	// Longest streak: maximal run of consecutive completed periods
	// anywhere in the history.
	longest, run := 1, 1
	for i := 1; i < len(indices); i++ {
		if indices[i] == indices[i-1]+1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	result.Longest = longest

	return result, nil
}
