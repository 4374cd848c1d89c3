package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mweber/cadence/internal/analytics"
	"github.com/mweber/cadence/internal/constants"
	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/stats"
	"github.com/mweber/cadence/internal/storage"
	"github.com/mweber/cadence/internal/tui/components/habitlist"
	"github.com/mweber/cadence/internal/utils"
)

// SessionState identifies which view the dashboard is showing
type SessionState int

const (
	StateToday SessionState = iota
	StateOverview
	StateAddHabit
	StateConfirmArchive
	StateConfirmDelete
	StateConfirmRestore
)

// HabitFormModel holds the add-habit form inputs
type HabitFormModel struct {
	Name        string
	Frequency   string
	Description string
}

type Model struct {
	store         storage.Provider
	stats         *stats.Service
	user          models.User
	timezone      string
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habitlist.Model
	overview      analytics.Overview
	form          *huh.Form
	habitForm     *HabitFormModel
	pendingID     string // habit awaiting archive/delete/restore confirmation
	formError     string
	quitting      bool
	width         int
	height        int
}

func NewModel(store storage.Provider, statsSvc *stats.Service, user models.User, timezone string) Model {
	m := Model{
		store:    store,
		stats:    statsSvc,
		user:     user,
		timezone: timezone,
		state:    StateToday,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}

	m.habitsModel = habitlist.New(m.loadRows(), 0, 0)
	m.refreshOverview()

	return m
}

// loadRows assembles the habit list: live habits with today's standing,
// plus archived and deleted habits so they can be restored in place.
func (m *Model) loadRows() []habitlist.Row {
	var entries []stats.TodayEntry
	if today, err := utils.TodayInTimezone(m.timezone); err == nil {
		entries, err = m.stats.Today(m.user.ID, today)
		if err != nil {
			entries = nil
		}
	}
	standing := make(map[string]stats.TodayEntry, len(entries))
	for _, e := range entries {
		standing[e.Habit.ID] = e
	}

	habits, err := m.store.GetAllHabits(m.user.ID, true, true)
	if err != nil {
		habits = nil
	}

	rows := make([]habitlist.Row, 0, len(habits))
	for _, h := range habits {
		row := habitlist.Row{
			Habit:     h,
			IsDeleted: h.DeletedAt != nil,
		}
		if e, ok := standing[h.ID]; ok {
			row.CompletedToday = e.CompletedToday
			row.CurrentStreak = e.CurrentStreak
		}
		rows = append(rows, row)
	}
	return rows
}

func (m *Model) refreshHabits() {
	m.habitsModel.SetRows(m.loadRows())
}

func (m *Model) refreshOverview() {
	today, err := utils.TodayInTimezone(m.timezone)
	if err != nil {
		return
	}
	asOf, err := utils.ParseDay(today)
	if err != nil {
		return
	}
	overview, err := m.stats.Overview(m.user.ID, asOf, constants.DefaultTopStreaks)
	if err != nil {
		return
	}
	m.overview = overview
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.Add)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	if m.state == StateToday {
		actions = []key.Binding{m.keys.Add}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.habitsModel.Init()
}
