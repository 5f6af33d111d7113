package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgTasksLoaded:
		// Keep the cursor on the same task across reloads
		selected, hadSelection := m.SelectedTask()
		m.repository = msg.Repository
		m.lines = domain.Flatten(msg.Tasks)
		m.err = nil
		if hadSelection {
			m.selectIndex(selected.Index)
		}
		m.clampCursor()
		return m, nil

	case MsgTaskUpdated:
		return m, m.loadTasks()

	case MsgError:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.lines)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.lines) - 1
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.ToggleShowAll):
		m.showAll = !m.showAll
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	task, ok := m.SelectedTask()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleDone):
		return m, m.toggleDone(task)
	case key.Matches(msg, m.keys.Raise):
		return m, m.changePriority(task, usecase.PriorityRaise)
	case key.Matches(msg, m.keys.Lower):
		return m, m.changePriority(task, usecase.PriorityLower)
	}

	return m, nil
}

func (m *Model) selectIndex(index int) {
	for i, l := range m.lines {
		if l.Task.Index == index {
			m.cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.lines) {
		m.cursor = len(m.lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
