// Package tui provides an interactive task browser built on bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskwatch/internal/app"
	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase"
)

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	ctx       context.Context
	err       error

	// State
	lines      []domain.TaskLine
	repository domain.Repository
	repoName   string // Repository override (empty = current)

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Numeric state (smaller types last)
	width    int
	height   int
	cursor   int
	showAll  bool
	showHelp bool
}

// New creates a new TUI Model. repoName selects the repository to browse;
// empty means the current one.
func New(ctx context.Context, c *app.Container, repoName string) *Model {
	return &Model{
		container: c,
		ctx:       ctx,
		repoName:  repoName,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		showAll:   c.AppConfig.Display.ShowDone,
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, c *app.Container, repoName string) error {
	p := tea.NewProgram(New(ctx, c, repoName), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

// loadTasks returns a command that loads the task tree.
func (m *Model) loadTasks() tea.Cmd {
	showAll := m.showAll
	return func() tea.Msg {
		out, err := m.container.ListTasksUseCase().Execute(m.ctx, usecase.ListTasksInput{
			Repository: m.repoName,
			ShowDone:   showAll,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Repository: out.Repository, Tasks: out.Tasks}
	}
}

// toggleDone returns a command that flips the done mark of the task.
func (m *Model) toggleDone(task domain.Task) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.MarkDoneUseCase().Execute(m.ctx, usecase.MarkDoneInput{
			Repository: m.repoName,
			Index:      task.Index,
			Undone:     task.IsDone(),
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{Index: task.Index}
	}
}

// changePriority returns a command that raises or lowers the priority of the task.
func (m *Model) changePriority(task domain.Task, change usecase.PriorityChange) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.ChangePriorityUseCase().Execute(m.ctx, usecase.ChangePriorityInput{
			Repository: m.repoName,
			Index:      task.Index,
			Change:     change,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{Index: task.Index}
	}
}

// SelectedTask returns the task under the cursor.
func (m *Model) SelectedTask() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.lines) {
		return domain.Task{}, false
	}
	return m.lines[m.cursor].Task, true
}
