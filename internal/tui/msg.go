package tui

import "github.com/runoshun/taskwatch/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the task tree is loaded.
type MsgTasksLoaded struct {
	Repository domain.Repository
	Tasks      []domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskUpdated is sent after a task was changed and saved.
type MsgTaskUpdated struct {
	Index int
}

func (MsgTaskUpdated) sealed() {}

// MsgError is sent when a command fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
