package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mweber/cadence/internal/constants"
)

type StatsCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Date   string `help:"Compute statistics as of this date (default: today)." default:""`
	Weekly bool   `help:"Show the per-weekday completion histogram."`
	Weeks  int    `help:"Lookback window for --weekly, in weeks." default:"4"`
	User   string `help:"Acting user (overrides default_user)."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	asOf, err := ctx.ResolveAsOf(c.Date)
	if err != nil {
		return err
	}

	st, err := ctx.Stats.HabitStatsByName(user.ID, c.Name, asOf)
	if err != nil {
		return err
	}

	fmt.Printf("Statistics for %q as of %s:\n\n", st.Habit.Name, asOf.Format(constants.DateFormat))
	fmt.Printf("  Frequency:       %s\n", st.Habit.Frequency)
	fmt.Printf("  Current streak:  %d\n", st.CurrentStreak)
	fmt.Printf("  Longest streak:  %d\n", st.LongestStreak)
	fmt.Printf("  Completion rate: %s\n", FormatRate(st.CompletionRate))
	fmt.Printf("  Completions:     %d\n", st.TotalCompletions)

	if !c.Weekly {
		return nil
	}

	hist, err := ctx.Stats.WeekdayHistogram(user.ID, st.Habit.ID, asOf, c.Weeks)
	if err != nil {
		return err
	}

	fmt.Printf("\nCompletions by weekday (last %d weeks):\n\n", c.Weeks)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		n := hist[wd]
		bar := strings.Repeat("█", n)
		if n == 0 {
			bar = "·"
		}
		fmt.Printf("  %-9s %s (%d)\n", wd.String(), bar, n)
	}

	return nil
}
