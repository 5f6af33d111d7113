package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateNames(states []domain.State) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.Name)
	}
	return names
}

func TestListStates_Execute_Defaults(t *testing.T) {
	env := newTestEnv()
	uc := NewListStates(env.stateSes)

	out, err := uc.Execute(context.Background(), ListStatesInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"closed", "in_progress", "open", "review"}, stateNames(out.States))
}

func TestListStates_Execute_LoadError(t *testing.T) {
	env := newTestEnv()
	env.states.LoadErr = errors.New("broken yaml")
	uc := NewListStates(env.stateSes)

	_, err := uc.Execute(context.Background(), ListStatesInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load states")
}

func TestAddState_Execute(t *testing.T) {
	// Setup
	env := newTestEnv()
	uc := NewAddState(env.stateSes)

	// Execute
	out, err := uc.Execute(context.Background(), AddStateInput{Name: "blocked", Next: []string{"open"}})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"open"}, out.State.NextStates)
	assert.Equal(t, 1, env.states.Saves)
	assert.Contains(t, stateNames(env.states.States), "blocked")
	require.Len(t, env.recorder.Changes, 1)
	assert.Equal(t, []string{"/data/states.yaml"}, env.recorder.Changes[0].Paths)
}

func TestAddState_Execute_UnknownNext(t *testing.T) {
	// Setup
	env := newTestEnv()
	uc := NewAddState(env.stateSes)

	// Execute
	_, err := uc.Execute(context.Background(), AddStateInput{Name: "x", Next: []string{"undefined_state"}})

	// Assert
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, env.states.Saves)
}

func TestLinkStates_Execute(t *testing.T) {
	// Setup
	env := newTestEnv()
	uc := NewLinkStates(env.stateSes)

	// Execute
	out, err := uc.Execute(context.Background(), LinkStatesInput{From: "review", To: "open"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"in_progress", "closed", "open"}, out.State.NextStates)

	_, err = uc.Execute(context.Background(), LinkStatesInput{From: "review", To: "open"})
	assert.ErrorIs(t, err, domain.ErrTransitionExists)
	assert.Equal(t, 1, env.states.Saves)
}

func TestAddNextState_Execute(t *testing.T) {
	// Setup
	env := newTestEnv()
	uc := NewAddNextState(env.stateSes)

	// Execute
	out, err := uc.Execute(context.Background(), LinkStatesInput{From: "closed", To: "archived"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"open", "archived"}, out.State.NextStates)
	assert.Contains(t, stateNames(env.states.States), "archived")

	_, err = uc.Execute(context.Background(), LinkStatesInput{From: "missing", To: "other"})
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
	assert.Equal(t, 1, env.states.Saves)
}
