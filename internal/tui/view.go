package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = docStyle.Render(m.habitsModel.View())
	case StateOverview:
		content = docStyle.Render(m.viewOverview())
	case StateAddHabit:
		content = m.form.View()
	case StateConfirmArchive:
		content = m.viewConfirm("Archive this habit? Its history is kept but it drops out of the daily view.")
	case StateConfirmDelete:
		content = m.viewConfirm("Delete this habit? It can be restored later with 'r'.")
	case StateConfirmRestore:
		content = m.viewConfirm("Restore this habit?")
	}

	var banner string
	if m.formError != "" {
		banner = warningStyle.Render("⚠ " + m.formError)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Today", "Overview"}
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, inactiveTabStyle.Render(m.user.Username))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewOverview() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Habits: %d\n", m.overview.TotalHabits)
	fmt.Fprintf(&b, "Total completions: %d\n\n", m.overview.TotalCompletions)

	if len(m.overview.TopStreaks) == 0 {
		b.WriteString("No streaks yet. Mark a habit done to start one.")
		return b.String()
	}

	b.WriteString("Top streaks:\n")
	for i, ranked := range m.overview.TopStreaks {
		streak := streakStyle.Render(fmt.Sprintf("streak: %d", ranked.CurrentStreak))
		fmt.Fprintf(&b, "  %d. %-30s %s\n", i+1, ranked.Name, streak)
	}

	return b.String()
}

func (m Model) viewConfirm(prompt string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
