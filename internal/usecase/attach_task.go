package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// AttachTaskInput contains the parameters for moving a task under another.
type AttachTaskInput struct {
	Repository string
	Index      int // Task to move
	Parent     int // New parent
}

// AttachTaskOutput contains the result of attaching a task.
type AttachTaskOutput struct {
	Parent domain.Task // The parent with its new sub-task
}

// AttachTask is the use case for making a task a sub-task of another.
type AttachTask struct {
	session *shared.TaskSession
}

// NewAttachTask creates a new AttachTask use case.
func NewAttachTask(session *shared.TaskSession) *AttachTask {
	return &AttachTask{session: session}
}

// Execute attaches the task to its new parent.
func (uc *AttachTask) Execute(ctx context.Context, in AttachTaskInput) (*AttachTaskOutput, error) {
	var parent domain.Task
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		parent, err = m.AttachTo(in.Index, in.Parent)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("attach task #%d to #%d", in.Index, in.Parent), nil
	})
	if err != nil {
		return nil, err
	}
	return &AttachTaskOutput{Parent: parent}, nil
}

// DetachTaskInput contains the parameters for detaching a task.
type DetachTaskInput struct {
	Repository string
	Index      int
}

// DetachTaskOutput contains the result of detaching a task.
type DetachTaskOutput struct {
	Task domain.Task
}

// DetachTask is the use case for turning a sub-task into a root task.
type DetachTask struct {
	session *shared.TaskSession
}

// NewDetachTask creates a new DetachTask use case.
func NewDetachTask(session *shared.TaskSession) *DetachTask {
	return &DetachTask{session: session}
}

// Execute detaches the task from its parent.
func (uc *DetachTask) Execute(ctx context.Context, in DetachTaskInput) (*DetachTaskOutput, error) {
	var task domain.Task
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		var err error
		task, err = m.Detach(in.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("detach task #%d", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return &DetachTaskOutput{Task: task}, nil
}
