package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// RenameTaskInput contains the parameters for renaming a task.
type RenameTaskInput struct {
	Repository string
	Name       string
	Index      int
}

// RenameTaskOutput contains the result of renaming a task.
type RenameTaskOutput struct {
	Task domain.Task
}

// RenameTask is the use case for renaming a task.
type RenameTask struct {
	session *shared.TaskSession
}

// NewRenameTask creates a new RenameTask use case.
func NewRenameTask(session *shared.TaskSession) *RenameTask {
	return &RenameTask{session: session}
}

// Execute renames the task.
func (uc *RenameTask) Execute(ctx context.Context, in RenameTaskInput) (*RenameTaskOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidTaskName
	}
	var task domain.Task
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		task, err = m.SetName(in.Index, in.Name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rename task #%d", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return &RenameTaskOutput{Task: task}, nil
}

// PriorityChange selects how ChangePriority edits the priority.
type PriorityChange int

// Priority changes.
const (
	PriorityRaise PriorityChange = iota // One step more urgent
	PriorityLower                       // One step less urgent
	PrioritySet                         // Set to ChangePriorityInput.Priority
)

// ChangePriorityInput contains the parameters for changing a task's priority.
type ChangePriorityInput struct {
	Repository string
	Index      int
	Change     PriorityChange
	Priority   domain.Priority // Used with PrioritySet
}

// ChangePriorityOutput contains the result of changing a priority.
type ChangePriorityOutput struct {
	Task domain.Task
}

// ChangePriority is the use case for raising, lowering or setting a priority.
type ChangePriority struct {
	session *shared.TaskSession
}

// NewChangePriority creates a new ChangePriority use case.
func NewChangePriority(session *shared.TaskSession) *ChangePriority {
	return &ChangePriority{session: session}
}

// Execute changes the priority. Out-of-range results are clamped.
func (uc *ChangePriority) Execute(ctx context.Context, in ChangePriorityInput) (*ChangePriorityOutput, error) {
	var task domain.Task
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		switch in.Change {
		case PriorityRaise:
			task, err = m.RaisePriority(in.Index)
		case PriorityLower:
			task, err = m.LowerPriority(in.Index)
		default:
			task, err = m.SetPriority(in.Index, in.Priority)
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("set priority of task #%d to %s", in.Index, task.Priority), nil
	})
	if err != nil {
		return nil, err
	}
	return &ChangePriorityOutput{Task: task}, nil
}

// EditTagsInput contains the parameters for adding or removing a tag.
type EditTagsInput struct {
	Repository string
	Tag        string
	Index      int
	Remove     bool // Remove the tag instead of adding it
}

// EditTagsOutput contains the result of editing tags.
type EditTagsOutput struct {
	Task domain.Task
}

// EditTags is the use case for tagging and untagging a task.
type EditTags struct {
	session *shared.TaskSession
}

// NewEditTags creates a new EditTags use case.
func NewEditTags(session *shared.TaskSession) *EditTags {
	return &EditTags{session: session}
}

// Execute adds or removes the tag.
func (uc *EditTags) Execute(ctx context.Context, in EditTagsInput) (*EditTagsOutput, error) {
	var task domain.Task
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		if in.Remove {
			task, err = m.RemoveTag(in.Index, in.Tag)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("remove tag '%s' from task #%d", in.Tag, in.Index), nil
		}
		task, err = m.AddTag(in.Index, in.Tag)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("add tag '%s' to task #%d", in.Tag, in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return &EditTagsOutput{Task: task}, nil
}
