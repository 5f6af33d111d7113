// Package shared holds helpers used by several use cases.
package shared

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/runoshun/taskwatch/internal/domain"
)

// OpenTasks is a repository loaded into a TaskManager.
type OpenTasks struct {
	Manager    *domain.TaskManager
	Repository domain.Repository
}

// TaskSession loads a repository's tasks into a TaskManager and saves them back.
// Fields are ordered to minimize memory padding.
type TaskSession struct {
	store    domain.TaskStore
	repos    *RepositorySession
	recorder domain.ChangeRecorder
	clock    domain.Clock
}

// NewTaskSession creates a new TaskSession. A nil recorder records nothing.
func NewTaskSession(store domain.TaskStore, repos *RepositorySession, recorder domain.ChangeRecorder, clock domain.Clock) *TaskSession {
	if recorder == nil {
		recorder = domain.NopRecorder{}
	}
	return &TaskSession{
		store:    store,
		repos:    repos,
		recorder: recorder,
		clock:    clock,
	}
}

// Open resolves the named repository (empty = current) and loads its tasks.
// The persisted index counter is honoured so deleted indices stay retired.
func (s *TaskSession) Open(ctx context.Context, name string) (*OpenTasks, error) {
	repo, err := s.repos.Resolve(name)
	if err != nil {
		return nil, err
	}
	return s.OpenRepository(ctx, repo)
}

// OpenRepository loads the tasks of an already resolved repository.
func (s *TaskSession) OpenRepository(ctx context.Context, repo domain.Repository) (*OpenTasks, error) {
	snapshot, err := s.store.Load(repo)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	m, err := domain.NewTaskManager(repo.Name, snapshot.Tasks, s.clock)
	if err != nil {
		return nil, fmt.Errorf("load tasks of '%s': %w", repo.Name, err)
	}
	m.ReserveIndex(snapshot.NextIndex)

	zerolog.Ctx(ctx).Debug().
		Str("repository", repo.Name).
		Str("path", repo.Path).
		Int("tasks", m.Len()).
		Msg("tasks loaded")

	return &OpenTasks{Manager: m, Repository: repo}, nil
}

// Save writes the tasks back and records the change.
func (s *TaskSession) Save(ctx context.Context, open *OpenTasks, message string) error {
	snapshot := domain.TaskSnapshot{
		Tasks:     open.Manager.Tasks(),
		NextIndex: open.Manager.NextIndex(),
	}
	if err := s.store.Save(open.Repository, snapshot); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("repository", open.Repository.Name).
		Msg(message)

	if err := s.recorder.Record(ctx, message, open.Repository.Path); err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

// Mutate opens the repository, runs op and saves only when op succeeds.
// op returns the message describing the change.
func (s *TaskSession) Mutate(ctx context.Context, name string, op func(*domain.TaskManager) (string, error)) (*OpenTasks, error) {
	open, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	message, err := op(open.Manager)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, open, message); err != nil {
		return nil, err
	}
	return open, nil
}
