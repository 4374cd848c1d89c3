package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

type OverviewCmd struct {
	Date string `help:"Compute the overview as of this date (default: today)." default:""`
	Top  int    `help:"Number of streaks to show (default from config)." default:"0"`
	JSON bool   `help:"Emit the overview as JSON."`
	User string `help:"Acting user (overrides default_user)."`
}

func (c *OverviewCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	asOf, err := ctx.ResolveAsOf(c.Date)
	if err != nil {
		return err
	}

	topN := c.Top
	if topN == 0 {
		topN = ctx.Config.TopStreaks
	}

	overview, err := ctx.Stats.Overview(user.ID, asOf, topN)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(overview)
	}

	fmt.Printf("Overview for %s:\n\n", user.Username)
	fmt.Printf("  Habits:      %d\n", overview.TotalHabits)
	fmt.Printf("  Completions: %d\n", overview.TotalCompletions)

	if len(overview.TopStreaks) == 0 {
		fmt.Println("\nNo streaks yet.")
		return nil
	}

	fmt.Println("\nTop streaks:")
	for i, entry := range overview.TopStreaks {
		fmt.Printf("  %d. %-30s %d\n", i+1, entry.Name, entry.CurrentStreak)
	}

	return nil
}
