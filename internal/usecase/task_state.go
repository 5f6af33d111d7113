package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// TaskStateInput contains the parameters shared by the task state commands.
type TaskStateInput struct {
	Repository string
	State      string // Target state (nextst only)
	Note       string
	Index      int
}

// TaskStateOutput contains the task after a state command.
type TaskStateOutput struct {
	Task  domain.Task
	State domain.StateRecord // Current state after the command; zero after clearing
}

// OpenTaskState is the use case for starting lifecycle tracking in the open state.
type OpenTaskState struct {
	tasks  *shared.TaskSession
	states *shared.StateSession
}

// NewOpenTaskState creates a new OpenTaskState use case.
func NewOpenTaskState(tasks *shared.TaskSession, states *shared.StateSession) *OpenTaskState {
	return &OpenTaskState{tasks: tasks, states: states}
}

// Execute starts the history of the task in the open state.
func (uc *OpenTaskState) Execute(ctx context.Context, in TaskStateInput) (*TaskStateOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	open, err := sm.OpenState()
	if err != nil {
		return nil, err
	}

	var task domain.Task
	_, err = uc.tasks.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		task, err = m.StartStateHistory(in.Index, open, in.Note)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("open state of task #%d", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return newTaskStateOutput(task), nil
}

// ClearTaskState is the use case for dropping a task's lifecycle history.
type ClearTaskState struct {
	tasks *shared.TaskSession
}

// NewClearTaskState creates a new ClearTaskState use case.
func NewClearTaskState(tasks *shared.TaskSession) *ClearTaskState {
	return &ClearTaskState{tasks: tasks}
}

// Execute clears the history.
func (uc *ClearTaskState) Execute(ctx context.Context, in TaskStateInput) (*TaskStateOutput, error) {
	var task domain.Task
	_, err := uc.tasks.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		task, err = m.ClearStateHistory(in.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("clear state of task #%d", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return newTaskStateOutput(task), nil
}

// NoteTaskState is the use case for replacing the note of the current state.
type NoteTaskState struct {
	tasks *shared.TaskSession
}

// NewNoteTaskState creates a new NoteTaskState use case.
func NewNoteTaskState(tasks *shared.TaskSession) *NoteTaskState {
	return &NoteTaskState{tasks: tasks}
}

// Execute sets the note.
func (uc *NoteTaskState) Execute(ctx context.Context, in TaskStateInput) (*TaskStateOutput, error) {
	var task domain.Task
	_, err := uc.tasks.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		task, err = m.SetStateNote(in.Index, in.Note)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("note state of task #%d", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return newTaskStateOutput(task), nil
}

// MoveTaskState is the use case for moving a task to the next state.
type MoveTaskState struct {
	tasks  *shared.TaskSession
	states *shared.StateSession
}

// NewMoveTaskState creates a new MoveTaskState use case.
func NewMoveTaskState(tasks *shared.TaskSession, states *shared.StateSession) *MoveTaskState {
	return &MoveTaskState{tasks: tasks, states: states}
}

// Execute validates the transition against the state graph and records it.
func (uc *MoveTaskState) Execute(ctx context.Context, in TaskStateInput) (*TaskStateOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}

	var task domain.Task
	_, err = uc.tasks.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		current, err := m.GetByIndex(in.Index)
		if err != nil {
			return "", err
		}
		rec, ok := current.CurrentState()
		if !ok {
			return "", fmt.Errorf("%w: #%d", domain.ErrNoActiveState, in.Index)
		}
		next, err := sm.MoveToNext(rec.State, in.State)
		if err != nil {
			return "", err
		}
		task, err = m.AppendState(in.Index, next, in.Note)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("move task #%d from %s to %s", in.Index, rec.State, next.Name), nil
	})
	if err != nil {
		return nil, err
	}
	return newTaskStateOutput(task), nil
}

func newTaskStateOutput(task domain.Task) *TaskStateOutput {
	rec, _ := task.CurrentState()
	return &TaskStateOutput{Task: task, State: rec}
}

// WhatNextInput contains the parameters for listing possible transitions.
type WhatNextInput struct {
	Repository string
	Index      int
}

// WhatNextOutput lists the states the task can move to.
type WhatNextOutput struct {
	Current domain.StateRecord
	Next    []domain.State
}

// WhatNext is the use case for showing the possible next states of a task.
type WhatNext struct {
	tasks  *shared.TaskSession
	states *shared.StateSession
}

// NewWhatNext creates a new WhatNext use case.
func NewWhatNext(tasks *shared.TaskSession, states *shared.StateSession) *WhatNext {
	return &WhatNext{tasks: tasks, states: states}
}

// Execute resolves the next states. Nothing is saved.
func (uc *WhatNext) Execute(ctx context.Context, in WhatNextInput) (*WhatNextOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	open, err := uc.tasks.Open(ctx, in.Repository)
	if err != nil {
		return nil, err
	}
	task, err := open.Manager.GetByIndex(in.Index)
	if err != nil {
		return nil, err
	}
	rec, ok := task.CurrentState()
	if !ok {
		return nil, fmt.Errorf("%w: #%d", domain.ErrNoActiveState, in.Index)
	}
	next, err := sm.NextStates(rec.State)
	if err != nil {
		return nil, err
	}
	return &WhatNextOutput{Current: rec, Next: next}, nil
}
