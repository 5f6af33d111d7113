package domain

import (
	"context"
	"time"
)

// TaskSnapshot is the persisted content of one repository.
type TaskSnapshot struct {
	Tasks     []Task
	NextIndex int // Lowest index that was never handed out; 0 if unknown
}

// TaskStore manages task persistence for repositories.
type TaskStore interface {
	// Load reads the tasks of a repository. A missing file yields an empty snapshot.
	Load(repo Repository) (*TaskSnapshot, error)

	// Save replaces the tasks of a repository.
	Save(repo Repository, snapshot TaskSnapshot) error
}

// StateStore manages persistence of the state graph.
type StateStore interface {
	// Load reads the state graph. A missing file yields nil states and no error.
	Load() ([]State, error)

	// Save replaces the state graph.
	Save(states []State) error
}

// RepositoryRegistry manages persistence of the repository list.
type RepositoryRegistry interface {
	// Load reads the registry. A missing file yields empty settings.
	Load() (*RepositorySettings, error)

	// Save replaces the registry.
	Save(settings RepositorySettings) error
}

// ChangeRecorder records that data files changed, e.g. by committing them.
type ChangeRecorder interface {
	Record(ctx context.Context, message string, paths ...string) error
}

// NopRecorder is a ChangeRecorder that does nothing.
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(context.Context, string, ...string) error { return nil }

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the merged configuration (global + data dir).
	Load() (*Config, error)
}

// ConfigInfo describes one config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	GetGlobalConfigInfo() ConfigInfo
	GetLocalConfigInfo() ConfigInfo
	// InitGlobalConfig writes a commented config file; ErrConfigExists if present.
	InitGlobalConfig(cfg *Config) error
	// InitLocalConfig writes a commented config file into the data dir.
	InitLocalConfig(cfg *Config) error
}

// TaskSink is the part of TaskManager an importer writes through.
type TaskSink interface {
	Create(name string, priority Priority) Task
	AddTag(index int, tag string) (Task, error)
	AttachTo(child, parent int) (Task, error)
}

// Ensure TaskManager can receive imported tasks.
var _ TaskSink = (*TaskManager)(nil)

// TaskImporter reads tasks saved by older versions of the tool.
type TaskImporter interface {
	// ImportFile converts the file at path, written in the given format,
	// into tasks created through sink. It returns the number of tasks created.
	ImportFile(format, path string, sink TaskSink) (int, error)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
