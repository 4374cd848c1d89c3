package analytics

import (
	"testing"
	"time"
)

func TestWeekdayHistogram(t *testing.T) {
	asOf := day("2024-06-10") // a Monday

	dates := days(
		"2024-06-10", // Monday, in window
		"2024-06-03", // Monday, in window
		"2024-06-05", // Wednesday, in window
		"2024-05-14", // Tuesday, in window (27 days back)
		"2024-04-01", // far outside the 4-week window
	)

	got := WeekdayHistogram(dates, asOf, 4)

	if got[time.Monday] != 2 {
		t.Errorf("Monday = %d, want 2", got[time.Monday])
	}
	if got[time.Wednesday] != 1 {
		t.Errorf("Wednesday = %d, want 1", got[time.Wednesday])
	}
	if got[time.Tuesday] != 1 {
		t.Errorf("Tuesday = %d, want 1", got[time.Tuesday])
	}
	if got[time.Sunday] != 0 {
		t.Errorf("Sunday = %d, want 0", got[time.Sunday])
	}

	total := 0
	for _, n := range got {
		total += n
	}
	if total != 4 {
		t.Errorf("total counted = %d, want 4", total)
	}
}

func TestWeekdayHistogramEmpty(t *testing.T) {
	got := WeekdayHistogram(nil, day("2024-06-10"), 4)
	if len(got) != 0 {
		t.Errorf("histogram = %v, want empty", got)
	}
}

func TestWeekdayHistogramDefaultWindow(t *testing.T) {
	asOf := day("2024-06-10")
	dates := days("2024-06-09", "2024-03-01")

	got := WeekdayHistogram(dates, asOf, 0)
	total := 0
	for _, n := range got {
		total += n
	}
	if total != 1 {
		t.Errorf("default window counted %d completions, want 1", total)
	}
}
