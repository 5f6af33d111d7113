package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/runoshun/taskwatch/internal/app"
	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/testutil"
)

// testApp wires a container over mocks. The data dir is a real temp dir so
// the root pre-run can open its log file.
type testApp struct {
	container *app.Container
	store     *testutil.MockTaskStore
	states    *testutil.MockStateStore
	registry  *testutil.MockRepositoryRegistry
	confirmer *testutil.MockConfirmer
	importer  *testutil.MockTaskImporter
	configs   *testutil.MockConfigManager
	dir       string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	a := &testApp{
		store:     testutil.NewMockTaskStore(),
		states:    &testutil.MockStateStore{},
		registry:  &testutil.MockRepositoryRegistry{},
		confirmer: &testutil.MockConfirmer{},
		importer:  &testutil.MockTaskImporter{},
		configs: &testutil.MockConfigManager{
			GlobalInfo: domain.ConfigInfo{Path: "/cfg/taskwatch/config.toml"},
			LocalInfo:  domain.ConfigInfo{Path: filepath.Join(dir, "config.toml")},
		},
		dir: dir,
	}
	a.container = app.NewWithDeps(app.Config{
		DataDir:      dir,
		StatesPath:   filepath.Join(dir, domain.StatesFileName),
		RegistryPath: domain.RepositoriesPath(dir),
	}, app.Deps{
		TaskStore:     a.store,
		StateStore:    a.states,
		Registry:      a.registry,
		Importer:      a.importer,
		Clock:         testutil.NewMockClock(),
		ConfigManager: a.configs,
		Confirmer:     a.confirmer,
	})
	return a
}

// run executes the root command with args and returns stdout and stderr.
func (a *testApp) run(args ...string) (string, string, error) {
	root := NewRootCommand(func(string) (*app.Container, error) {
		return a.container, nil
	}, "test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// tasks returns the saved tasks of the default repository.
func (a *testApp) tasks() []domain.Task {
	return a.store.Tasks(filepath.Join(a.dir, "default"+domain.TaskFileExt))
}
