package usecase

import (
	"context"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Repository string   // Repository name (empty = current)
	Tags       []string // Keep only tasks carrying all of these tags (roots only)
	ShowDone   bool     // Include tasks tagged done
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Repository domain.Repository
	Tasks      []domain.Task // Root tasks in display order, sub-trees sorted
}

// ListTasks is the use case for listing the task tree.
type ListTasks struct {
	session *shared.TaskSession
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(session *shared.TaskSession) *ListTasks {
	return &ListTasks{session: session}
}

// Execute loads the repository and returns its sorted, filtered tree.
// Nothing is saved.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	open, err := uc.session.Open(ctx, in.Repository)
	if err != nil {
		return nil, err
	}

	tasks := open.Manager.Tasks()
	for _, tag := range in.Tags {
		tasks = domain.IncludeByTag(tasks, tag)
	}
	if !in.ShowDone {
		tasks = domain.FilterTree(tasks, func(ts []domain.Task) []domain.Task {
			return domain.ExcludeByTag(ts, domain.TagDone)
		})
	}

	return &ListTasksOutput{
		Repository: open.Repository,
		Tasks:      domain.SortTree(tasks),
	}, nil
}

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	Repository string
	Index      int
}

// ShowTaskOutput contains the task with its tags and full history.
type ShowTaskOutput struct {
	Task    domain.Task
	History []domain.StateRecord // Ordered by time, oldest first
}

// ShowTask is the use case for displaying one task.
type ShowTask struct {
	session *shared.TaskSession
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(session *shared.TaskSession) *ShowTask {
	return &ShowTask{session: session}
}

// Execute returns the task.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	open, err := uc.session.Open(ctx, in.Repository)
	if err != nil {
		return nil, err
	}
	task, err := open.Manager.GetByIndex(in.Index)
	if err != nil {
		return nil, err
	}
	return &ShowTaskOutput{Task: task, History: task.SortedHistory()}, nil
}
