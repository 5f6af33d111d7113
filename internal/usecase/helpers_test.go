package usecase

import (
	"testing"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/testutil"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
	"github.com/stretchr/testify/require"
)

const (
	testDataDir     = "/data"
	testDefaultPath = "/data/default.tasks"
)

// testEnv wires the shared sessions to in-memory doubles.
type testEnv struct {
	store    *testutil.MockTaskStore
	states   *testutil.MockStateStore
	registry *testutil.MockRepositoryRegistry
	recorder *testutil.MockRecorder
	tasks    *shared.TaskSession
	stateSes *shared.StateSession
	repos    *shared.RepositorySession
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store:    testutil.NewMockTaskStore(),
		states:   &testutil.MockStateStore{},
		registry: &testutil.MockRepositoryRegistry{},
		recorder: &testutil.MockRecorder{},
	}
	env.repos = shared.NewRepositorySession(env.registry, env.recorder, testDataDir, "/data/repositories.toml")
	env.tasks = shared.NewTaskSession(env.store, env.repos, env.recorder, testutil.NewMockClock())
	env.stateSes = shared.NewStateSession(env.states, env.recorder, "/data/states.yaml")
	return env
}

// seed stores tasks in the default repository.
func (e *testEnv) seed(tasks ...domain.Task) {
	e.store.Snapshots[testDefaultPath] = domain.TaskSnapshot{Tasks: tasks}
}

// saved loads what was last saved to the default repository.
func (e *testEnv) saved(t *testing.T) *domain.TaskManager {
	t.Helper()
	snap := e.store.Snapshots[testDefaultPath]
	m, err := domain.NewTaskManager("default", snap.Tasks, nil)
	require.NoError(t, err)
	m.ReserveIndex(snap.NextIndex)
	return m
}

func intPtr(i int) *int {
	return &i
}
