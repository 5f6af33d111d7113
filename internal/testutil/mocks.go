// Package testutil provides shared test doubles for the domain ports.
package testutil

import (
	"context"
	"time"

	"github.com/runoshun/taskwatch/internal/domain"
)

// MockClock is a test double for domain.Clock.
// When Step is set every call advances the time by Step.
type MockClock struct {
	NowTime time.Time
	Step    time.Duration
}

// NewMockClock returns a clock that advances one second per call.
func NewMockClock() *MockClock {
	return &MockClock{
		NowTime: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Step:    time.Second,
	}
}

// Now returns the mock time.
func (m *MockClock) Now() time.Time {
	m.NowTime = m.NowTime.Add(m.Step)
	return m.NowTime
}

// MockTaskStore is a test double for domain.TaskStore.
// Fields are ordered to minimize memory padding.
type MockTaskStore struct {
	Snapshots map[string]domain.TaskSnapshot // keyed by repository path
	LoadErr   error
	SaveErr   error
	Saved     []domain.Repository
}

// NewMockTaskStore creates an empty store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Snapshots: make(map[string]domain.TaskSnapshot)}
}

// Load returns a deep copy of the stored snapshot.
func (m *MockTaskStore) Load(repo domain.Repository) (*domain.TaskSnapshot, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	s := m.Snapshots[repo.Path]
	return &domain.TaskSnapshot{Tasks: cloneTasks(s.Tasks), NextIndex: s.NextIndex}, nil
}

// Save stores a deep copy of the snapshot.
func (m *MockTaskStore) Save(repo domain.Repository, snapshot domain.TaskSnapshot) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Snapshots[repo.Path] = domain.TaskSnapshot{Tasks: cloneTasks(snapshot.Tasks), NextIndex: snapshot.NextIndex}
	m.Saved = append(m.Saved, repo)
	return nil
}

// Tasks returns the stored tasks of a repository path.
func (m *MockTaskStore) Tasks(path string) []domain.Task {
	return m.Snapshots[path].Tasks
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return nil
	}
	out := make([]domain.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// MockStateStore is a test double for domain.StateStore.
type MockStateStore struct {
	States  []domain.State
	LoadErr error
	SaveErr error
	Saves   int
}

// Load returns the stored states.
func (m *MockStateStore) Load() ([]domain.State, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.States, nil
}

// Save stores the states.
func (m *MockStateStore) Save(states []domain.State) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.States = states
	m.Saves++
	return nil
}

// MockRepositoryRegistry is a test double for domain.RepositoryRegistry.
type MockRepositoryRegistry struct {
	LoadErr  error
	SaveErr  error
	Settings domain.RepositorySettings
	Saves    int
}

// Load returns the stored settings.
func (m *MockRepositoryRegistry) Load() (*domain.RepositorySettings, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	s := m.Settings
	return &s, nil
}

// Save stores the settings.
func (m *MockRepositoryRegistry) Save(settings domain.RepositorySettings) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Settings = settings
	m.Saves++
	return nil
}

// RecordedChange is one call to MockRecorder.Record.
type RecordedChange struct {
	Message string
	Paths   []string
}

// MockRecorder is a test double for domain.ChangeRecorder.
type MockRecorder struct {
	Err     error
	Changes []RecordedChange
}

// Record remembers the change.
func (m *MockRecorder) Record(_ context.Context, message string, paths ...string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Changes = append(m.Changes, RecordedChange{Message: message, Paths: paths})
	return nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	InitCfg    *domain.Config
	GlobalInfo domain.ConfigInfo
	LocalInfo  domain.ConfigInfo
	InitGlobal bool
	InitLocal  bool
}

// GetGlobalConfigInfo returns the mock global info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalInfo
}

// GetLocalConfigInfo returns the mock local info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitGlobal = true
	m.InitCfg = cfg
	return nil
}

// InitLocalConfig records the call.
func (m *MockConfigManager) InitLocalConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.InitLocal = true
	m.InitCfg = cfg
	return nil
}

// MockTaskImporter is a test double for domain.TaskImporter.
// It creates one task per name in Names.
type MockTaskImporter struct {
	Err    error
	Format string
	Path   string
	Names  []string
}

// ImportFile creates the configured tasks through sink.
func (m *MockTaskImporter) ImportFile(format, path string, sink domain.TaskSink) (int, error) {
	m.Format = format
	m.Path = path
	if m.Err != nil {
		return 0, m.Err
	}
	for _, name := range m.Names {
		sink.Create(name, domain.PriorityDefault)
	}
	return len(m.Names), nil
}

// MockConfirmer is a test double for domain.Confirmer.
type MockConfirmer struct {
	Err     error
	Prompts []string
	Answer  bool
}

// Confirm records the prompt and returns Answer.
func (m *MockConfirmer) Confirm(prompt string) (bool, error) {
	m.Prompts = append(m.Prompts, prompt)
	return m.Answer, m.Err
}
