package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/validation"
)

type UserCmd struct {
	Add  UserAddCmd  `cmd:"" help:"Register a new user."`
	List UserListCmd `cmd:"" help:"List registered users."`
}

type UserAddCmd struct {
	Username string `arg:"" help:"Username."`
	Email    string `help:"Email address." default:""`
}

func (c *UserAddCmd) Run(ctx *Context) error {
	if err := validation.ValidateUsername(c.Username); err != nil {
		return err
	}
	if c.Email != "" {
		if err := validation.ValidateEmail(c.Email); err != nil {
			return err
		}
	}

	user := models.User{
		ID:        uuid.New().String(),
		Username:  c.Username,
		Email:     c.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := ctx.Store.AddUser(user); err != nil {
		return err
	}

	fmt.Printf("Added user: %s\n", c.Username)
	if ctx.Config.DefaultUser == "" {
		fmt.Println("Tip: set default_user in the config file to skip --user flags.")
	}
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(ctx *Context) error {
	users, err := ctx.Store.GetAllUsers()
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users found. Add one with 'cadence user add'.")
		return nil
	}

	for _, user := range users {
		marker := ""
		if user.Username == ctx.Config.DefaultUser {
			marker = " (default)"
		}
		fmt.Printf("%s%s\n", user.Username, marker)
	}

	return nil
}
