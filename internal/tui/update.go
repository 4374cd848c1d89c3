package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/mweber/cadence/internal/models"
	"github.com/mweber/cadence/internal/tui/components/habitlist"
	"github.com/mweber/cadence/internal/utils"
	"github.com/mweber/cadence/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Add Habit State
	if m.state == StateAddHabit {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.state = m.previousState
			m.formError = ""
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.addHabitFromForm(); err != nil {
				// Stay in the form so the user can correct and retry
				m.formError = err.Error()
				m.form.State = huh.StateNormal
			} else {
				m.formError = ""
				m.refreshHabits()
				m.refreshOverview()
				m.state = StateToday
			}
		case huh.StateAborted:
			m.formError = ""
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	// Handle confirmation states
	if m.state == StateConfirmArchive || m.state == StateConfirmDelete || m.state == StateConfirmRestore {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				var err error
				switch m.state {
				case StateConfirmArchive:
					err = m.store.ArchiveHabit(m.user.ID, m.pendingID)
				case StateConfirmDelete:
					err = m.store.DeleteHabit(m.user.ID, m.pendingID)
				case StateConfirmRestore:
					err = m.store.RestoreHabit(m.user.ID, m.pendingID)
				}
				if err != nil {
					m.formError = err.Error()
				} else {
					m.formError = ""
				}
				m.pendingID = ""
				m.refreshHabits()
				m.refreshOverview()
				m.state = StateToday
			case "n", "N", "esc", "q":
				m.pendingID = ""
				m.state = StateToday
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Leave room for the tab bar and help line
		m.habitsModel.SetSize(msg.Width-4, msg.Height-6)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = m.nextState()
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = m.prevState()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case habitlist.AddHabitMsg:
		m.previousState = m.state
		m.state = StateAddHabit
		m.habitForm = &HabitFormModel{Frequency: string(models.FrequencyDaily)}
		m.form = newHabitForm(m.habitForm)
		return m, m.form.Init()

	case habitlist.MarkHabitMsg:
		if err := m.markHabit(msg.ID); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.refreshHabits()
		m.refreshOverview()
		return m, nil

	case habitlist.UnmarkHabitMsg:
		if err := m.unmarkHabit(msg.ID); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
		}
		m.refreshHabits()
		m.refreshOverview()
		return m, nil

	case habitlist.ArchiveHabitMsg:
		m.pendingID = msg.ID
		m.state = StateConfirmArchive
		return m, nil

	case habitlist.DeleteHabitMsg:
		m.pendingID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case habitlist.RestoreHabitMsg:
		m.pendingID = msg.ID
		m.state = StateConfirmRestore
		return m, nil
	}

	if m.state == StateToday {
		var cmd tea.Cmd
		m.habitsModel, cmd = m.habitsModel.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) nextState() SessionState {
	if m.state == StateToday {
		return StateOverview
	}
	return StateToday
}

func (m Model) prevState() SessionState {
	return m.nextState()
}

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(validation.ValidateHabitName),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", string(models.FrequencyDaily)),
					huh.NewOption("Weekly", string(models.FrequencyWeekly)),
					huh.NewOption("Monthly", string(models.FrequencyMonthly)),
				).
				Value(&f.Frequency),
			huh.NewInput().
				Title("Description").
				Value(&f.Description),
		),
	)
}

func (m *Model) addHabitFromForm() error {
	if err := validation.ValidateHabitName(m.habitForm.Name); err != nil {
		return err
	}
	freq, err := models.ParseFrequency(m.habitForm.Frequency)
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		OwnerID:     m.user.ID,
		Name:        m.habitForm.Name,
		Description: m.habitForm.Description,
		Frequency:   freq,
		CreatedAt:   time.Now().UTC(),
	}
	return m.store.AddHabit(habit)
}

func (m *Model) markHabit(habitID string) error {
	today, err := utils.TodayInTimezone(m.timezone)
	if err != nil {
		return err
	}
	return m.store.AddCompletion(models.Completion{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Day:       today,
		CreatedAt: time.Now().UTC(),
	})
}

func (m *Model) unmarkHabit(habitID string) error {
	today, err := utils.TodayInTimezone(m.timezone)
	if err != nil {
		return err
	}
	return m.store.DeleteCompletion(habitID, today)
}
