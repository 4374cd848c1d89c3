package analytics

import (
	"sort"

	"github.com/mweber/cadence/internal/constants"
	"github.com/mweber/cadence/internal/models"
)

// HabitStreak pairs a habit with its computed streak result. The
// caller assembles these from per-habit ComputeStreak calls.
type HabitStreak struct {
	Habit  models.Habit
	Streak StreakResult
}

// RankedHabit is one row of the overview's streak ranking.
type RankedHabit struct {
	HabitID       string `json:"habit_id"`
	Name          string `json:"habit_name"`
	CurrentStreak int    `json:"streak"`
}

// Overview is the aggregated statistics summary for one user.
type Overview struct {
	TotalHabits      int           `json:"total_habits"`
	TotalCompletions int           `json:"total_completions"`
	TopStreaks       []RankedHabit `json:"top_streaks"`
}

// ComputeOverview ranks a user's habits by current streak, descending,
// breaking ties by habit creation date ascending, and truncates the
// ranking to topN entries. It is a pure function of its inputs: the
// caller injects the per-habit streak results and the user's total
// completion count.
func ComputeOverview(entries []HabitStreak, totalCompletions, topN int) Overview {
	if topN <= 0 {
		topN = constants.DefaultTopStreaks
	}

	ranked := make([]HabitStreak, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Streak.Current != ranked[j].Streak.Current {
			return ranked[i].Streak.Current > ranked[j].Streak.Current
		}
		return ranked[i].Habit.CreatedAt.Before(ranked[j].Habit.CreatedAt)
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	top := make([]RankedHabit, 0, len(ranked))
	for _, e := range ranked {
		top = append(top, RankedHabit{
			HabitID:       e.Habit.ID,
			Name:          e.Habit.Name,
			CurrentStreak: e.Streak.Current,
		})
	}

	return Overview{
		TotalHabits:      len(entries),
		TotalCompletions: totalCompletions,
		TopStreaks:       top,
	}
}
