// Package stats glues the storage layer to the analytics engine: it
// loads a habit's completion log and produces streaks, completion
// rates, and the per-user overview.
package stats

import (
	"time"

	"github.com/mweber/cadence/internal/analytics"
	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/storage"
	"github.com/mweber/cadence/internal/utils"
)

// earliestDay sorts before any real completion day, so it serves as the
// open lower bound for full-history queries.
const earliestDay = "0001-01-01"

// HabitStats is the full statistics readout for one habit.
type HabitStats struct {
	Habit            models.Habit
	CurrentStreak    int
	LongestStreak    int
	CompletionRate   float64
	TotalCompletions int
	AsOf             time.Time
}

// TodayEntry is one habit's standing for the current day.
type TodayEntry struct {
	Habit          models.Habit
	CompletedToday bool
	CurrentStreak  int
}

type Service struct {
	store  storage.Provider
	policy analytics.Policy
}

func New(store storage.Provider, policy analytics.Policy) *Service {
	return &Service{
		store:  store,
		policy: policy,
	}
}

// HabitStats computes streaks and the completion rate for one habit as
// of the given day. The habit must belong to ownerID.
func (s *Service) HabitStats(ownerID, habitID string, asOf time.Time) (HabitStats, error) {
	habit, err := s.store.GetHabit(ownerID, habitID)
	if err != nil {
		return HabitStats{}, err
	}
	return s.statsFor(habit, asOf)
}

// HabitStatsByName is HabitStats with a name lookup.
func (s *Service) HabitStatsByName(ownerID, name string, asOf time.Time) (HabitStats, error) {
	habit, err := s.store.GetHabitByName(ownerID, name)
	if err != nil {
		return HabitStats{}, err
	}
	return s.statsFor(habit, asOf)
}

func (s *Service) statsFor(habit models.Habit, asOf time.Time) (HabitStats, error) {
	days, err := s.store.GetCompletionDates(habit.ID, earliestDay, utils.FormatDay(asOf))
	if err != nil {
		return HabitStats{}, err
	}

	dates, err := utils.ParseDays(days)
	if err != nil {
		return HabitStats{}, err
	}

	streak, err := analytics.ComputeStreak(habit.Frequency, dates, asOf, s.policy)
	if err != nil {
		return HabitStats{}, err
	}

	rate, err := analytics.ComputeRate(habit.CreatedAt, habit.Frequency, dates, asOf)
	if err != nil {
		return HabitStats{}, err
	}

	return HabitStats{
		Habit:            habit,
		CurrentStreak:    streak.Current,
		LongestStreak:    streak.Longest,
		CompletionRate:   rate,
		TotalCompletions: len(dates),
		AsOf:             streak.AsOf,
	}, nil
}

// WeekdayHistogram returns how many completions fell on each weekday
// in the recent lookback window for one habit.
func (s *Service) WeekdayHistogram(ownerID, habitID string, asOf time.Time, weeks int) (map[time.Weekday]int, error) {
	habit, err := s.store.GetHabit(ownerID, habitID)
	if err != nil {
		return nil, err
	}

	days, err := s.store.GetCompletionDates(habit.ID, earliestDay, utils.FormatDay(asOf))
	if err != nil {
		return nil, err
	}

	dates, err := utils.ParseDays(days)
	if err != nil {
		return nil, err
	}

	return analytics.WeekdayHistogram(dates, asOf, weeks), nil
}

// Overview aggregates all of a user's live habits into the streak
// ranking. Habits with no completions rank with a zero streak rather
// than being dropped.
func (s *Service) Overview(ownerID string, asOf time.Time, topN int) (analytics.Overview, error) {
	habits, err := s.store.GetAllHabits(ownerID, false, false)
	if err != nil {
		return analytics.Overview{}, err
	}

	allDates, err := s.store.GetHabitCompletionDates(ownerID)
	if err != nil {
		return analytics.Overview{}, err
	}

	entries := make([]analytics.HabitStreak, 0, len(habits))
	for _, habit := range habits {
		dates, err := utils.ParseDays(allDates[habit.ID])
		if err != nil {
			return analytics.Overview{}, err
		}

		streak, err := analytics.ComputeStreak(habit.Frequency, dates, asOf, s.policy)
		if err != nil {
			return analytics.Overview{}, err
		}

		entries = append(entries, analytics.HabitStreak{
			Habit:  habit,
			Streak: streak,
		})
	}

	totalCompletions, err := s.store.CountCompletions(ownerID)
	if err != nil {
		return analytics.Overview{}, err
	}

	return analytics.ComputeOverview(entries, totalCompletions, topN), nil
}

// Today reports each live, unarchived habit's standing for the given
// day: whether it was completed today and its current streak.
func (s *Service) Today(ownerID, today string) ([]TodayEntry, error) {
	if !utils.ValidDay(today) {
		return nil, errs.Validationf("invalid day %q, expected YYYY-MM-DD", today)
	}

	asOf, err := utils.ParseDay(today)
	if err != nil {
		return nil, err
	}

	habits, err := s.store.GetAllHabits(ownerID, false, false)
	if err != nil {
		return nil, err
	}

	allDates, err := s.store.GetHabitCompletionDates(ownerID)
	if err != nil {
		return nil, err
	}

	entries := make([]TodayEntry, 0, len(habits))
	for _, habit := range habits {
		days := allDates[habit.ID]

		completed := false
		for _, d := range days {
			if d == today {
				completed = true
				break
			}
		}

		dates, err := utils.ParseDays(days)
		if err != nil {
			return nil, err
		}

		streak, err := analytics.ComputeStreak(habit.Frequency, dates, asOf, s.policy)
		if err != nil {
			return nil, err
		}

		entries = append(entries, TodayEntry{
			Habit:          habit,
			CompletedToday: completed,
			CurrentStreak:  streak.Current,
		})
	}

	return entries, nil
}
