package habitlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mweber/cadence/internal/models"
)

type AddHabitMsg struct{}

type MarkHabitMsg struct {
	ID string
}

type UnmarkHabitMsg struct {
	ID string
}

type ArchiveHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type RestoreHabitMsg struct {
	ID string
}

// Row is one habit with its standing for the current day.
type Row struct {
	Habit          models.Habit
	CompletedToday bool
	CurrentStreak  int
	IsDeleted      bool
}

func (r Row) Title() string {
	title := r.Habit.Name
	if r.IsDeleted {
		title = "[DELETED] " + title
	} else if r.Habit.ArchivedAt != nil {
		title = "[ARCHIVED] " + title
	} else if r.CompletedToday {
		title = "✓ " + title
	} else {
		title = "○ " + title
	}
	return title
}

func (r Row) Description() string {
	if r.IsDeleted {
		return "can restore with 'r'"
	}
	if r.Habit.ArchivedAt != nil {
		return "archived"
	}
	desc := fmt.Sprintf("%s · streak: %d", r.Habit.Frequency, r.CurrentStreak)
	if r.CompletedToday {
		return desc + " · done today"
	}
	return desc
}

func (r Row) FilterValue() string { return r.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Mark    key.Binding
	Unmark  key.Binding
	Archive key.Binding
	Delete  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark done"),
		),
		Unmark: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unmark"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rows []Row, width, height int) Model {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Unmark, keys.Archive, keys.Delete, keys.Restore}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Unmark, keys.Archive, keys.Delete, keys.Restore}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func (m *Model) SetRows(rows []Row) {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Mark):
			if r, ok := m.list.SelectedItem().(Row); ok {
				if !r.IsDeleted && r.Habit.ArchivedAt == nil && !r.CompletedToday {
					return m, func() tea.Msg { return MarkHabitMsg{ID: r.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Unmark):
			if r, ok := m.list.SelectedItem().(Row); ok {
				if !r.IsDeleted && r.Habit.ArchivedAt == nil && r.CompletedToday {
					return m, func() tea.Msg { return UnmarkHabitMsg{ID: r.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Archive):
			if r, ok := m.list.SelectedItem().(Row); ok {
				if !r.IsDeleted && r.Habit.ArchivedAt == nil {
					return m, func() tea.Msg { return ArchiveHabitMsg{ID: r.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.list.SelectedItem().(Row); ok {
				if !r.IsDeleted {
					return m, func() tea.Msg { return DeleteHabitMsg{ID: r.Habit.ID} }
				}
			}
		case key.Matches(msg, m.keys.Restore):
			if r, ok := m.list.SelectedItem().(Row); ok {
				if r.IsDeleted {
					return m, func() tea.Msg { return RestoreHabitMsg{ID: r.Habit.ID} }
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
