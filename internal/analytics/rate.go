package analytics

import (
	"time"

	"github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
)

// ComputeRate computes the fraction of expected periods between the
// habit's creation date and the as-of date (inclusive of the creation
// period) that contain at least one completion. The result is a
// fraction in [0,1]; consumers format it as a percentage.
func ComputeRate(createdAt time.Time, freq models.Frequency, dates []time.Time, asOf time.Time) (float64, error) {
	periodDays := freq.PeriodDays()
	if periodDays == 0 {
		return 0, errors.InvalidStatef("frequency %q is not one of daily, weekly, monthly", freq)
	}

	elapsed := daysBetween(createdAt, asOf)
	if elapsed < 0 {
		return 0, errors.InvalidStatef("as-of date %s precedes habit creation date %s",
			dateOnly(asOf).Format("2006-01-02"), dateOnly(createdAt).Format("2006-01-02"))
	}

	// The creation period always counts, so a habit created today has
	// one expected period and never divides by zero.
	expected := elapsed/periodDays + 1

	indices, err := completedPeriods(freq, dates, asOf)
	if err != nil {
		return 0, err
	}

	rate := float64(len(indices)) / float64(expected)
	if rate > 1 {
		rate = 1
	}
	return rate, nil
}
