package shared

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/runoshun/taskwatch/internal/domain"
)

// RepositorySession loads and saves the repository registry.
type RepositorySession struct {
	registry domain.RepositoryRegistry
	recorder domain.ChangeRecorder
	baseDir  string
	path     string
}

// NewRepositorySession creates a new RepositorySession.
// baseDir resolves relative repository paths; path is the registry file
// handed to the recorder.
func NewRepositorySession(registry domain.RepositoryRegistry, recorder domain.ChangeRecorder, baseDir, path string) *RepositorySession {
	if recorder == nil {
		recorder = domain.NopRecorder{}
	}
	return &RepositorySession{
		registry: registry,
		recorder: recorder,
		baseDir:  baseDir,
		path:     path,
	}
}

// Load builds a RepositoryManager from the registry.
func (s *RepositorySession) Load() (*domain.RepositoryManager, error) {
	settings, err := s.registry.Load()
	if err != nil {
		return nil, fmt.Errorf("load repositories: %w", err)
	}
	m, err := domain.NewRepositoryManager(*settings, s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("load repositories: %w", err)
	}
	return m, nil
}

// Resolve returns the named repository, or the current one for an empty name.
func (s *RepositorySession) Resolve(name string) (domain.Repository, error) {
	m, err := s.Load()
	if err != nil {
		return domain.Repository{}, err
	}
	if name == "" {
		return m.Current(), nil
	}
	return m.Get(name)
}

// Save writes the registry back and records the change.
func (s *RepositorySession) Save(ctx context.Context, m *domain.RepositoryManager, message string) error {
	if err := s.registry.Save(m.Settings()); err != nil {
		return fmt.Errorf("save repositories: %w", err)
	}
	zerolog.Ctx(ctx).Info().Str("current", m.Current().Name).Msg(message)

	if err := s.recorder.Record(ctx, message, s.path); err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}
