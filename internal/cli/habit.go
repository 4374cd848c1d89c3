package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	errs "github.com/mweber/cadence/internal/errors"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Show    HabitShowCmd    `cmd:"" help:"Show one habit's details and statistics."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit a habit's name or description."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name. Omit for an interactive form."`
	Frequency   string `help:"Cadence: daily, weekly, or monthly." default:"daily" enum:"daily,weekly,monthly"`
	Description string `help:"Optional description." default:""`
	User        string `help:"Acting user (overrides default_user)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	name := c.Name
	frequency := c.Frequency
	description := c.Description

	// No name on the command line: collect everything with a form.
	if name == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Name").
					Value(&name).
					Validate(validation.ValidateHabitName),
				huh.NewSelect[string]().
					Title("Frequency").
					Options(
						huh.NewOption("Daily", string(models.FrequencyDaily)),
						huh.NewOption("Weekly", string(models.FrequencyWeekly)),
						huh.NewOption("Monthly", string(models.FrequencyMonthly)),
					).
					Value(&frequency),
				huh.NewInput().
					Title("Description").
					Value(&description),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	}

	if err := validation.ValidateHabitName(name); err != nil {
		return err
	}
	freq, err := models.ParseFrequency(frequency)
	if err != nil {
		return errs.Validationf("%v", err)
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		OwnerID:     user.ID,
		Name:        name,
		Description: description,
		Frequency:   freq,
		CreatedAt:   time.Now().UTC(),
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", name, freq)
	return nil
}

type HabitListCmd struct {
	Archived bool   `help:"Include archived habits."`
	Deleted  bool   `help:"Include deleted habits."`
	User     string `help:"Acting user (overrides default_user)."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(user.ID, c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}
		fmt.Printf("%-30s %s%s\n", habit.Name, habit.Frequency, status)
	}

	return nil
}

type HabitShowCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Compute statistics as of this date (default: today)." default:""`
	User string `help:"Acting user (overrides default_user)."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
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

	fmt.Printf("%s (%s)\n", st.Habit.Name, st.Habit.Frequency)
	if st.Habit.Description != "" {
		fmt.Printf("  %s\n", st.Habit.Description)
	}
	fmt.Printf("  Created:         %s\n", st.Habit.CreatedAt.Format("2006-01-02"))
	fmt.Printf("  Current streak:  %d\n", st.CurrentStreak)
	fmt.Printf("  Longest streak:  %d\n", st.LongestStreak)
	fmt.Printf("  Completion rate: %s\n", FormatRate(st.CompletionRate))
	fmt.Printf("  Completions:     %d\n", st.TotalCompletions)
	return nil
}

type HabitEditCmd struct {
	Name        string `arg:"" help:"Habit name."`
	NewName     string `help:"New habit name."`
	Description string `help:"New description."`
	Frequency   string `help:"New frequency." default:""`
	User        string `help:"Acting user (overrides default_user)."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(user.ID, c.Name)
	if err != nil {
		return err
	}

	// A habit's cadence is fixed for life: changing it would rewrite
	// the meaning of every recorded completion.
	if c.Frequency != "" && c.Frequency != string(habit.Frequency) {
		return errs.InvalidStatef("frequency cannot be changed after creation (create a new habit instead)")
	}

	changed := false
	if c.NewName != "" && c.NewName != habit.Name {
		if err := validation.ValidateHabitName(c.NewName); err != nil {
			return err
		}
		habit.Name = c.NewName
		changed = true
	}
	if c.Description != "" {
		habit.Description = c.Description
		changed = true
	}

	if !changed {
		fmt.Println("Nothing to change.")
		return nil
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
	User      string `help:"Acting user (overrides default_user)."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(user.ID, c.Name)
	if err != nil {
		return err
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveHabit(user.ID, habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", c.Name)
	} else {
		if err := ctx.Store.ArchiveHabit(user.ID, habit.ID); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", c.Name)
	}

	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
	User string `help:"Acting user (overrides default_user)."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(user.ID, c.Name)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(user.ID, habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	fmt.Println("(This is a soft delete. Use 'cadence habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
	User string `help:"Acting user (overrides default_user)."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	// Name lookups skip deleted habits, so scan the full listing.
	habits, err := ctx.Store.GetAllHabits(user.ID, true, true)
	if err != nil {
		return err
	}

	var habit *models.Habit
	for i, h := range habits {
		if h.Name == c.Name && h.DeletedAt != nil {
			habit = &habits[i]
			break
		}
	}

	if habit == nil {
		return errs.NotFoundf("deleted habit %q", c.Name)
	}

	if err := ctx.Store.RestoreHabit(user.ID, habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", c.Name)
	return nil
}
