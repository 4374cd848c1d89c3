package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/validation"
)

type DoneCmd struct {
	Name   string `arg:"" help:"Habit name."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note   string `help:"Optional note for this completion." default:""`
	Rating int    `help:"Optional rating from 1 to 5." default:"0"`
	User   string `help:"Acting user (overrides default_user)."`
}

func (c *DoneCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(user.ID, c.Name)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	var rating *int
	if c.Rating != 0 {
		rating = &c.Rating
	}
	if err := validation.ValidateRating(rating); err != nil {
		return err
	}

	completion := models.Completion{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       day,
		Note:      c.Note,
		Rating:    rating,
		CreatedAt: time.Now().UTC(),
	}

	if err := ctx.Store.AddCompletion(completion); err != nil {
		return err
	}

	fmt.Printf("Marked %q done for %s\n", c.Name, day)

	// Show where the streak stands now.
	asOf, err := ctx.ResolveAsOf(c.Date)
	if err == nil {
		if st, err := ctx.Stats.HabitStats(user.ID, habit.ID, asOf); err == nil {
			fmt.Printf("Current streak: %d\n", st.CurrentStreak)
		}
	}
	return nil
}

type UndoCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	User string `help:"Acting user (overrides default_user)."`
}

func (c *UndoCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(user.ID, c.Name)
	if err != nil {
		return err
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteCompletion(habit.ID, day); err != nil {
		return err
	}

	fmt.Printf("Removed completion of %q for %s\n", c.Name, day)
	return nil
}
