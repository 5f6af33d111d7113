package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_Execute_Success(t *testing.T) {
	// Setup
	env := newTestEnv()
	uc := NewNewTask(env.tasks)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		Name:     "Write report",
		Priority: domain.PriorityHigh,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, out.Task.Index)
	assert.Equal(t, "default", out.Repository.Name)

	saved := env.saved(t)
	task, err := saved.GetByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Name)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, 2, env.store.Snapshots[testDefaultPath].NextIndex)

	require.Len(t, env.recorder.Changes, 1)
	assert.Equal(t, "add task #1", env.recorder.Changes[0].Message)
	assert.Equal(t, []string{testDefaultPath}, env.recorder.Changes[0].Paths)
}

func TestNewTask_Execute_WithParent(t *testing.T) {
	// Setup
	env := newTestEnv()
	env.seed(domain.Task{Index: 3, Name: "parent"})
	uc := NewNewTask(env.tasks)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{
		Name:        "child",
		ParentIndex: intPtr(3),
		Priority:    9,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, out.Task.Index)
	assert.Equal(t, domain.PriorityLast, out.Task.Priority)

	parent, err := env.saved(t).GetByIndex(3)
	require.NoError(t, err)
	require.Len(t, parent.SubTasks, 1)
	assert.Equal(t, "child", parent.SubTasks[0].Name)
}

func TestNewTask_Execute_HonoursPersistedCounter(t *testing.T) {
	// Setup
	env := newTestEnv()
	env.store.Snapshots[testDefaultPath] = domain.TaskSnapshot{
		Tasks:     []domain.Task{{Index: 1, Name: "a"}},
		NextIndex: 8,
	}
	uc := NewNewTask(env.tasks)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{Name: "b"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8, out.Task.Index)
}

func TestNewTask_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(env *testEnv)
		in      NewTaskInput
		wantErr error
	}{
		{
			name:    "empty name",
			in:      NewTaskInput{Name: "  "},
			wantErr: domain.ErrInvalidTaskName,
		},
		{
			name:    "missing parent",
			in:      NewTaskInput{Name: "x", ParentIndex: intPtr(5)},
			wantErr: domain.ErrTaskNotFound,
		},
		{
			name:    "unknown repository",
			in:      NewTaskInput{Name: "x", Repository: "nope"},
			wantErr: domain.ErrRepositoryNotFound,
		},
		{
			name: "load error",
			setup: func(env *testEnv) {
				env.store.LoadErr = errors.New("disk")
			},
			in:      NewTaskInput{Name: "x"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			if tt.setup != nil {
				tt.setup(env)
			}
			uc := NewNewTask(env.tasks)

			_, err := uc.Execute(context.Background(), tt.in)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, env.store.Saved, "nothing is saved after a failure")
			assert.Empty(t, env.recorder.Changes)
		})
	}
}

func TestNewTask_Execute_SaveError(t *testing.T) {
	// Setup
	env := newTestEnv()
	env.store.SaveErr = errors.New("read-only")
	uc := NewNewTask(env.tasks)

	// Execute
	_, err := uc.Execute(context.Background(), NewTaskInput{Name: "x"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save tasks")
	assert.Empty(t, env.recorder.Changes)
}

func TestNewTask_Execute_OtherRepository(t *testing.T) {
	// Setup
	env := newTestEnv()
	env.registry.Settings = domain.RepositorySettings{
		Repositories: []domain.Repository{{Name: "work", Path: "/w/work.tasks"}},
	}
	uc := NewNewTask(env.tasks)

	// Execute
	out, err := uc.Execute(context.Background(), NewTaskInput{Name: "x", Repository: "work"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "work", out.Repository.Name)
	assert.Len(t, env.store.Tasks("/w/work.tasks"), 1)
	assert.Empty(t, env.store.Tasks(testDefaultPath))
}
