package analytics

import (
	"testing"
	"time"

	"github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(ss ...string) []time.Time {
	out := make([]time.Time, 0, len(ss))
	for _, s := range ss {
		out = append(out, day(s))
	}
	return out
}

func TestComputeStreakDaily(t *testing.T) {
	asOf := day("2024-06-10")

	tests := []struct {
		name        string
		dates       []time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "no completions",
			dates:       nil,
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name:        "completed every day since creation",
			dates:       days("2024-06-05", "2024-06-06", "2024-06-07", "2024-06-08", "2024-06-09", "2024-06-10"),
			wantCurrent: 6,
			wantLongest: 6,
		},
		{
			// Days D-5..D-3 and D-1..D with a gap at D-2: current streak
			// is the trailing pair, longest is the older triple.
			name:        "gap splits history into runs",
			dates:       days("2024-06-05", "2024-06-06", "2024-06-07", "2024-06-09", "2024-06-10"),
			wantCurrent: 2,
			wantLongest: 3,
		},
		{
			name:        "done yesterday but not today keeps streak alive",
			dates:       days("2024-06-07", "2024-06-08", "2024-06-09"),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			// No completion today or yesterday: streak is dead even
			// though older completions exist.
			name:        "stale history yields zero current streak",
			dates:       days("2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04"),
			wantCurrent: 0,
			wantLongest: 4,
		},
		{
			name:        "single completion today",
			dates:       days("2024-06-10"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "completions after the as-of date are ignored",
			dates:       days("2024-06-09", "2024-06-10", "2024-06-11", "2024-06-12"),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name:        "unordered input",
			dates:       days("2024-06-10", "2024-06-08", "2024-06-09"),
			wantCurrent: 3,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStreak(models.FrequencyDaily, tt.dates, asOf, DefaultPolicy)
			if err != nil {
				t.Fatalf("ComputeStreak() error = %v", err)
			}
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", got.Longest, tt.wantLongest)
			}
			if got.Longest < got.Current {
				t.Errorf("Longest (%d) < Current (%d)", got.Longest, got.Current)
			}
		})
	}
}

func TestComputeStreakWeekly(t *testing.T) {
	asOf := day("2024-06-10")

	tests := []struct {
		name        string
		dates       []time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			// Periods are 7-day windows ending at the as-of date:
			// [06-04..06-10] is period 0, [05-28..06-03] is period 1.
			name:        "one completion per week",
			dates:       days("2024-06-09", "2024-06-01", "2024-05-25"),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name:        "multiple completions in one week count once",
			dates:       days("2024-06-08", "2024-06-09", "2024-06-10"),
			wantCurrent: 1,
			wantLongest: 1,
		},
		{
			name:        "missed last two weeks",
			dates:       days("2024-05-20", "2024-05-13"),
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name:        "completion in previous week only",
			dates:       days("2024-06-01"),
			wantCurrent: 1,
			wantLongest: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStreak(models.FrequencyWeekly, tt.dates, asOf, DefaultPolicy)
			if err != nil {
				t.Fatalf("ComputeStreak() error = %v", err)
			}
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Longest = %d, want %d", got.Longest, tt.wantLongest)
			}
		})
	}
}

func TestComputeStreakMonthly(t *testing.T) {
	asOf := day("2024-06-10")

	// 30-day fixed windows: period 0 is [05-12..06-10], period 1 is
	// [04-12..05-11].
	got, err := ComputeStreak(models.FrequencyMonthly, days("2024-06-01", "2024-05-01", "2024-04-01"), asOf, DefaultPolicy)
	if err != nil {
		t.Fatalf("ComputeStreak() error = %v", err)
	}
	if got.Current != 3 {
		t.Errorf("Current = %d, want 3", got.Current)
	}
	if got.Longest != 3 {
		t.Errorf("Longest = %d, want 3", got.Longest)
	}
}

func TestComputeStreakGracePolicy(t *testing.T) {
	asOf := day("2024-06-10")
	// Last completion two days ago: dead under the default policy,
	// alive with a one-period grace window.
	dates := days("2024-06-07", "2024-06-08")

	strict, err := ComputeStreak(models.FrequencyDaily, dates, asOf, DefaultPolicy)
	if err != nil {
		t.Fatalf("ComputeStreak() error = %v", err)
	}
	if strict.Current != 0 {
		t.Errorf("strict policy Current = %d, want 0", strict.Current)
	}

	lenient, err := ComputeStreak(models.FrequencyDaily, dates, asOf, Policy{GracePeriods: 1})
	if err != nil {
		t.Fatalf("ComputeStreak() error = %v", err)
	}
	if lenient.Current != 2 {
		t.Errorf("grace policy Current = %d, want 2", lenient.Current)
	}
}

func TestComputeStreakInvalidFrequency(t *testing.T) {
	_, err := ComputeStreak(models.Frequency("hourly"), days("2024-06-10"), day("2024-06-10"), DefaultPolicy)
	if !errors.IsInvalidState(err) {
		t.Errorf("ComputeStreak() error = %v, want ErrInvalidState", err)
	}
}

func TestComputeStreakDeterministic(t *testing.T) {
	asOf := day("2024-06-10")
	dates := days("2024-06-10", "2024-06-09", "2024-06-05", "2024-06-04")

	first, err := ComputeStreak(models.FrequencyDaily, dates, asOf, DefaultPolicy)
	if err != nil {
		t.Fatalf("ComputeStreak() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ComputeStreak(models.FrequencyDaily, dates, asOf, DefaultPolicy)
		if err != nil {
			t.Fatalf("ComputeStreak() error = %v", err)
		}
		if again != first {
			t.Fatalf("ComputeStreak() not deterministic: %+v vs %+v", again, first)
		}
	}
}
