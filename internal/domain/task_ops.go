package domain

import (
	"fmt"
	"strings"
)

// SetName renames a task.
func (m *TaskManager) SetName(index int, name string) (Task, error) {
	return m.Edit(index, func(t Task) Task {
		t.Name = name
		return t
	})
}

// SetPriority sets the priority, clamped to the valid range.
func (m *TaskManager) SetPriority(index int, p Priority) (Task, error) {
	return m.Edit(index, func(t Task) Task {
		t.Priority = p
		return t
	})
}

// RaisePriority makes the task one step more urgent.
func (m *TaskManager) RaisePriority(index int) (Task, error) {
	return m.Edit(index, func(t Task) Task {
		t.Priority--
		return t
	})
}

// LowerPriority makes the task one step less urgent.
func (m *TaskManager) LowerPriority(index int) (Task, error) {
	return m.Edit(index, func(t Task) Task {
		t.Priority++
		return t
	})
}

// AddTag applies a tag to the task. Re-adding a tag keeps its original time.
func (m *TaskManager) AddTag(index int, tag string) (Task, error) {
	if strings.TrimSpace(tag) == "" {
		return Task{}, ErrInvalidTagName
	}
	now := m.clock.Now()
	return m.Edit(index, func(t Task) Task {
		t.Tags.Add(tag, now)
		return t
	})
}

// RemoveTag removes a tag the task must carry.
func (m *TaskManager) RemoveTag(index int, tag string) (Task, error) {
	n, err := m.node(index)
	if err != nil {
		return Task{}, err
	}
	if !n.task.Tags.Has(tag) {
		return Task{}, fmt.Errorf("%w: '%s' on task #%d", ErrTagNotFound, tag, index)
	}
	return m.Edit(index, func(t Task) Task {
		t.Tags.Remove(tag)
		return t
	})
}

// MarkDone tags the task and every descendant as done and returns the indices
// that were visited, parent first.
func (m *TaskManager) MarkDone(index int) ([]int, error) {
	if _, err := m.node(index); err != nil {
		return nil, err
	}
	now := m.clock.Now()
	var touched []int
	m.walk([]int{index}, func(idx int) bool {
		m.apply(m.nodes[idx], func(t Task) Task {
			t.Tags.Add(TagDone, now)
			return t
		})
		touched = append(touched, idx)
		return false
	})
	return touched, nil
}

// MarkUndone removes the done tag from the task only. Sub-tasks keep theirs.
func (m *TaskManager) MarkUndone(index int) (Task, error) {
	return m.Edit(index, func(t Task) Task {
		t.Tags.Remove(TagDone)
		return t
	})
}

// StartStateHistory begins lifecycle tracking in the given state, usually the open state.
func (m *TaskManager) StartStateHistory(index int, state State, note string) (Task, error) {
	n, err := m.node(index)
	if err != nil {
		return Task{}, err
	}
	if n.task.HasStateHistory() {
		return Task{}, fmt.Errorf("%w: #%d", ErrStateAlreadySet, index)
	}
	return m.appendState(index, state, note)
}

// AppendState records a transition. The transition itself must already have
// been validated by StateManager.MoveToNext.
func (m *TaskManager) AppendState(index int, state State, note string) (Task, error) {
	n, err := m.node(index)
	if err != nil {
		return Task{}, err
	}
	if !n.task.HasStateHistory() {
		return Task{}, fmt.Errorf("%w: #%d", ErrNoActiveState, index)
	}
	return m.appendState(index, state, note)
}

func (m *TaskManager) appendState(index int, state State, note string) (Task, error) {
	now := m.clock.Now()
	return m.Edit(index, func(t Task) Task {
		t.StateHistory = append(t.StateHistory, StateRecord{State: state.Name, Time: now, Note: note})
		return t
	})
}

// SetStateNote replaces the note of the current state.
func (m *TaskManager) SetStateNote(index int, note string) (Task, error) {
	n, err := m.node(index)
	if err != nil {
		return Task{}, err
	}
	if !n.task.HasStateHistory() {
		return Task{}, fmt.Errorf("%w: #%d", ErrNoActiveState, index)
	}
	return m.Edit(index, func(t Task) Task {
		t.StateHistory[t.currentStatePos()].Note = note
		return t
	})
}

// ClearStateHistory drops the lifecycle history of the task.
func (m *TaskManager) ClearStateHistory(index int) (Task, error) {
	return m.Edit(index, func(t Task) Task {
		t.StateHistory = nil
		return t
	})
}
