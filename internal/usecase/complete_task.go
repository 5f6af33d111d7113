package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// MarkDoneInput contains the parameters for marking a task done or not done.
type MarkDoneInput struct {
	Repository string
	Index      int
	Undone     bool // Remove the done tag instead of adding it
}

// MarkDoneOutput contains the result of marking a task.
type MarkDoneOutput struct {
	Touched []int // Indices whose done tag changed, parent first
}

// MarkDone is the use case for the done and undone commands.
// Marking done covers the whole sub-tree; undone only the task itself.
type MarkDone struct {
	session *shared.TaskSession
}

// NewMarkDone creates a new MarkDone use case.
func NewMarkDone(session *shared.TaskSession) *MarkDone {
	return &MarkDone{session: session}
}

// Execute marks the task.
func (uc *MarkDone) Execute(ctx context.Context, in MarkDoneInput) (*MarkDoneOutput, error) {
	var touched []int
	_, err := uc.session.Mutate(ctx, in.Repository, func(m *domain.TaskManager) (string, error) {
		if in.Undone {
			if _, err := m.MarkUndone(in.Index); err != nil {
				return "", err
			}
			touched = []int{in.Index}
			return fmt.Sprintf("mark task #%d not done", in.Index), nil
		}

		var err error
		touched, err = m.MarkDone(in.Index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("mark task #%d done", in.Index), nil
	})
	if err != nil {
		return nil, err
	}
	return &MarkDoneOutput{Touched: touched}, nil
}
