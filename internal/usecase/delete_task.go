package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	Repository string
	Index      int // Task index to delete, together with its sub-tasks
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Removed domain.Task // The removed task with its sub-tree
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	session *shared.TaskSession
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(session *shared.TaskSession) *DeleteTask {
	return &DeleteTask{session: session}
}

// Execute deletes the task and its whole sub-tree.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	var removed domain.Task
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		removed, err = m.Delete(in.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("delete task #%d", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return &DeleteTaskOutput{Removed: removed}, nil
}
