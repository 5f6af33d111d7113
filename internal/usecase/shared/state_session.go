package shared

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/runoshun/taskwatch/internal/domain"
)

// StateSession loads and saves the state graph.
type StateSession struct {
	store    domain.StateStore
	recorder domain.ChangeRecorder
	path     string
}

// NewStateSession creates a new StateSession. path is the graph file handed to the recorder.
func NewStateSession(store domain.StateStore, recorder domain.ChangeRecorder, path string) *StateSession {
	if recorder == nil {
		recorder = domain.NopRecorder{}
	}
	return &StateSession{store: store, recorder: recorder, path: path}
}

// Load builds a StateManager. When no graph has been saved the default graph is used.
func (s *StateSession) Load(ctx context.Context) (*domain.StateManager, error) {
	states, err := s.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load states: %w", err)
	}
	if states == nil {
		zerolog.Ctx(ctx).Debug().Msg("no state graph saved, using defaults")
		states = domain.DefaultStates()
	}
	m, err := domain.NewStateManager(states)
	if err != nil {
		return nil, fmt.Errorf("load states: %w", err)
	}
	return m, nil
}

// Save writes the graph back and records the change.
func (s *StateSession) Save(ctx context.Context, m *domain.StateManager, message string) error {
	if err := s.store.Save(m.States()); err != nil {
		return fmt.Errorf("save states: %w", err)
	}
	zerolog.Ctx(ctx).Info().Msg(message)

	if err := s.recorder.Record(ctx, message, s.path); err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}
