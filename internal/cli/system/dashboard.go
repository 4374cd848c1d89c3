package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mweber/cadence/internal/cli"
	"github.com/mweber/cadence/internal/tui"
)

type DashboardCmd struct {
	User string `help:"Act as this user instead of the configured default" short:"u"`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on dashboard startup (after successful load)
	ctx.PerformAutomaticBackup()

	user, err := ctx.ResolveUser(c.User)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Stats, user, ctx.Config.Timezone), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
