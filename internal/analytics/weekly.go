package analytics

import (
	"time"

	"github.com/mweber/cadence/internal/constants"
)

// WeekdayHistogram counts completions per weekday over the given
// number of weeks ending at the as-of date, for the "how does this
// habit distribute across the week" view. Completions outside the
// window are ignored.
func WeekdayHistogram(dates []time.Time, asOf time.Time, weeks int) map[time.Weekday]int {
	if weeks <= 0 {
		weeks = constants.WeeklyHistogramWeeks
	}

	end := dateOnly(asOf)
	start := end.AddDate(0, 0, -7*weeks)

	hist := make(map[time.Weekday]int)
	for _, d := range dates {
		day := dateOnly(d)
		if day.Before(start) || day.After(end) {
			continue
		}
		hist[day.Weekday()]++
	}
	return hist
}
