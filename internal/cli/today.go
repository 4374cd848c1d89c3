package cli

import (
	"fmt"
)

type TodayCmd struct {
	Date string `help:"Show standing for this date instead of today." default:""`
	User string `help:"Acting user (overrides default_user)."`
}

func (c *TodayCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	entries, err := ctx.Stats.Today(user.ID, day)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", day)
	done := 0
	for _, entry := range entries {
		status := "[ ]"
		if entry.CompletedToday {
			status = "[x]"
			done++
		}
		streak := ""
		if entry.CurrentStreak > 0 {
			streak = fmt.Sprintf("  (streak: %d)", entry.CurrentStreak)
		}
		fmt.Printf("%s %s%s\n", status, entry.Habit.Name, streak)
	}

	fmt.Printf("\nCompleted: %d/%d\n", done, len(entries))
	return nil
}
