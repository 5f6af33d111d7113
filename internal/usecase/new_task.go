// Package usecase contains application use cases.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a new task.
// Fields are ordered to minimize memory padding.
type NewTaskInput struct {
	ParentIndex *int            // Parent task index (optional, nil = root task)
	Repository  string          // Repository name (empty = current)
	Name        string          // Task name (required)
	Priority    domain.Priority // Priority, clamped to the valid range
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Repository domain.Repository
	Task       domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	session *shared.TaskSession
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(session *shared.TaskSession) *NewTask {
	return &NewTask{session: session}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidTaskName
	}

	var created domain.Task
	open, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		// Validate parent exists before allocating an index
		if in.ParentIndex != nil {
			if _, err := m.GetByIndex(*in.ParentIndex); err != nil {
				return "", fmt.Errorf("get parent task: %w", err)
			}
		}

		created = m.Create(in.Name, in.Priority)
		if in.ParentIndex == nil {
			return fmt.Sprintf("add task #%d", created.Index), nil
		}

		if _, err := m.AttachTo(created.Index, *in.ParentIndex); err != nil {
			return "", err
		}
		created, _ = m.GetByIndex(created.Index)
		return fmt.Sprintf("add task #%d under #%d", created.Index, *in.ParentIndex), nil
	})
	if err != nil {
		return nil, err
	}

	return &NewTaskOutput{Repository: open.Repository, Task: created}, nil
}
