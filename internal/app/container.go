// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/infra/config"
	"github.com/runoshun/taskwatch/internal/infra/gitsync"
	"github.com/runoshun/taskwatch/internal/infra/jsonstore"
	"github.com/runoshun/taskwatch/internal/infra/legacy"
	"github.com/runoshun/taskwatch/internal/infra/statestore"
	"github.com/runoshun/taskwatch/internal/usecase"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// Config holds the application paths.
type Config struct {
	DataDir      string // Directory holding task files, the state graph and the registry
	StatesPath   string // Path to the state graph file
	RegistryPath string // Path to repositories.toml
}

// newConfig derives the paths from the data directory and the loaded app config.
func newConfig(dataDir string, appConfig *domain.Config) Config {
	return Config{
		DataDir:      dataDir,
		StatesPath:   appConfig.StatesPath(dataDir),
		RegistryPath: domain.RepositoriesPath(dataDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	TaskStore     domain.TaskStore
	StateStore    domain.StateStore
	Registry      domain.RepositoryRegistry
	Recorder      domain.ChangeRecorder
	Importer      domain.TaskImporter
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Confirmer     domain.Confirmer // nil = prompt on the terminal

	// Loaded configuration
	AppConfig *domain.Config

	// Sessions shared by the use cases
	tasks  *shared.TaskSession
	repos  *shared.RepositorySession
	states *shared.StateSession

	// Paths
	Config Config
}

// DefaultDataDir returns $XDG_DATA_HOME/taskwatch, falling back to ~/.local/share/taskwatch.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, domain.AppDirName), nil
}

// New creates a new Container rooted at dataDir.
// A broken config file does not stop the program: defaults are used and the
// problem is reported through AppConfig.Warnings.
func New(dataDir string) (*Container, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("%w: data directory is empty", domain.ErrInvalidOperation)
	}
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data directory: %w", err)
	}

	configLoader := config.NewLoader(absDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, fmt.Sprintf("config ignored: %v", err))
	}
	cfg := newConfig(absDir, appConfig)

	clock := domain.RealClock{}
	var recorder domain.ChangeRecorder = domain.NopRecorder{}
	if appConfig.Storage.AutoCommit {
		recorder = gitsync.New(absDir, clock)
	}

	return NewWithDeps(cfg, Deps{
		TaskStore:     jsonstore.New(),
		StateStore:    statestore.New(cfg.StatesPath),
		Registry:      config.NewRegistry(cfg.RegistryPath),
		Recorder:      recorder,
		Importer:      legacy.NewFileImporter(),
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(absDir),
		AppConfig:     appConfig,
	}), nil
}

// Deps lists the ports handed to NewWithDeps.
type Deps struct {
	TaskStore     domain.TaskStore
	StateStore    domain.StateStore
	Registry      domain.RepositoryRegistry
	Recorder      domain.ChangeRecorder
	Importer      domain.TaskImporter
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Confirmer     domain.Confirmer
	AppConfig     *domain.Config
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	if deps.Recorder == nil {
		deps.Recorder = domain.NopRecorder{}
	}
	if deps.AppConfig == nil {
		deps.AppConfig = domain.NewDefaultConfig()
	}

	repos := shared.NewRepositorySession(deps.Registry, deps.Recorder, cfg.DataDir, cfg.RegistryPath)
	return &Container{
		TaskStore:     deps.TaskStore,
		StateStore:    deps.StateStore,
		Registry:      deps.Registry,
		Recorder:      deps.Recorder,
		Importer:      deps.Importer,
		Clock:         deps.Clock,
		ConfigLoader:  deps.ConfigLoader,
		ConfigManager: deps.ConfigManager,
		Confirmer:     deps.Confirmer,
		AppConfig:     deps.AppConfig,
		tasks:         shared.NewTaskSession(deps.TaskStore, repos, deps.Recorder, deps.Clock),
		repos:         repos,
		states:        shared.NewStateSession(deps.StateStore, deps.Recorder, cfg.StatesPath),
		Config:        cfg,
	}
}

// UseCase factory methods

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.tasks)
}

// AttachTaskUseCase returns a new AttachTask use case.
func (c *Container) AttachTaskUseCase() *usecase.AttachTask {
	return usecase.NewAttachTask(c.tasks)
}

// DetachTaskUseCase returns a new DetachTask use case.
func (c *Container) DetachTaskUseCase() *usecase.DetachTask {
	return usecase.NewDetachTask(c.tasks)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.tasks)
}

// RenameTaskUseCase returns a new RenameTask use case.
func (c *Container) RenameTaskUseCase() *usecase.RenameTask {
	return usecase.NewRenameTask(c.tasks)
}

// ChangePriorityUseCase returns a new ChangePriority use case.
func (c *Container) ChangePriorityUseCase() *usecase.ChangePriority {
	return usecase.NewChangePriority(c.tasks)
}

// EditTagsUseCase returns a new EditTags use case.
func (c *Container) EditTagsUseCase() *usecase.EditTags {
	return usecase.NewEditTags(c.tasks)
}

// MarkDoneUseCase returns a new MarkDone use case.
func (c *Container) MarkDoneUseCase() *usecase.MarkDone {
	return usecase.NewMarkDone(c.tasks)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.tasks)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.tasks)
}

// OpenTaskStateUseCase returns a new OpenTaskState use case.
func (c *Container) OpenTaskStateUseCase() *usecase.OpenTaskState {
	return usecase.NewOpenTaskState(c.tasks, c.states)
}

// ClearTaskStateUseCase returns a new ClearTaskState use case.
func (c *Container) ClearTaskStateUseCase() *usecase.ClearTaskState {
	return usecase.NewClearTaskState(c.tasks)
}

// NoteTaskStateUseCase returns a new NoteTaskState use case.
func (c *Container) NoteTaskStateUseCase() *usecase.NoteTaskState {
	return usecase.NewNoteTaskState(c.tasks)
}

// MoveTaskStateUseCase returns a new MoveTaskState use case.
func (c *Container) MoveTaskStateUseCase() *usecase.MoveTaskState {
	return usecase.NewMoveTaskState(c.tasks, c.states)
}

// WhatNextUseCase returns a new WhatNext use case.
func (c *Container) WhatNextUseCase() *usecase.WhatNext {
	return usecase.NewWhatNext(c.tasks, c.states)
}

// ListStatesUseCase returns a new ListStates use case.
func (c *Container) ListStatesUseCase() *usecase.ListStates {
	return usecase.NewListStates(c.states)
}

// AddStateUseCase returns a new AddState use case.
func (c *Container) AddStateUseCase() *usecase.AddState {
	return usecase.NewAddState(c.states)
}

// LinkStatesUseCase returns a new LinkStates use case.
func (c *Container) LinkStatesUseCase() *usecase.LinkStates {
	return usecase.NewLinkStates(c.states)
}

// AddNextStateUseCase returns a new AddNextState use case.
func (c *Container) AddNextStateUseCase() *usecase.AddNextState {
	return usecase.NewAddNextState(c.states)
}

// ListRepositoriesUseCase returns a new ListRepositories use case.
func (c *Container) ListRepositoriesUseCase() *usecase.ListRepositories {
	return usecase.NewListRepositories(c.repos)
}

// CreateRepositoryUseCase returns a new CreateRepository use case.
func (c *Container) CreateRepositoryUseCase() *usecase.CreateRepository {
	return usecase.NewCreateRepository(c.repos)
}

// SetCurrentRepositoryUseCase returns a new SetCurrentRepository use case.
func (c *Container) SetCurrentRepositoryUseCase() *usecase.SetCurrentRepository {
	return usecase.NewSetCurrentRepository(c.repos)
}

// DeleteRepositoryUseCase returns a new DeleteRepository use case.
func (c *Container) DeleteRepositoryUseCase() *usecase.DeleteRepository {
	return usecase.NewDeleteRepository(c.repos)
}

// SetRepositoryPathUseCase returns a new SetRepositoryPath use case.
func (c *Container) SetRepositoryPathUseCase() *usecase.SetRepositoryPath {
	return usecase.NewSetRepositoryPath(c.repos)
}

// ImportRepositoryUseCase returns a new ImportRepository use case.
func (c *Container) ImportRepositoryUseCase() *usecase.ImportRepository {
	return usecase.NewImportRepository(c.repos, c.tasks, c.Importer)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
