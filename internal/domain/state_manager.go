package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// StateManager owns the lifecycle graph and validates transitions.
// Edges are checked when they are inserted, so the graph never holds a
// reference to an undefined state.
type StateManager struct {
	states map[string]State
}

// NewStateManager builds a manager from a persisted graph. Cycles are allowed,
// but every edge must point at a state defined in the same list.
func NewStateManager(states []State) (*StateManager, error) {
	m := &StateManager{states: make(map[string]State, len(states))}
	for _, s := range states {
		key := NormalizeKey(s.Name)
		if key == "" {
			return nil, ErrInvalidStateName
		}
		if _, ok := m.states[key]; ok {
			return nil, fmt.Errorf("%w: '%s'", ErrStateExists, s.Name)
		}
		m.states[key] = s.clone()
	}
	for _, s := range m.states {
		for _, next := range s.NextStates {
			if _, ok := m.states[NormalizeKey(next)]; !ok {
				return nil, fmt.Errorf("%w: '%s' (referenced by '%s')", ErrStateNotFound, next, s.Name)
			}
		}
	}
	return m, nil
}

// States returns copies of all states sorted by name.
func (m *StateManager) States() []State {
	keys := slices.Sorted(maps.Keys(m.states))
	out := make([]State, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.states[k].clone())
	}
	return out
}

// GetState looks a state up by name (case-insensitive).
func (m *StateManager) GetState(name string) (State, error) {
	s, ok := m.states[NormalizeKey(name)]
	if !ok || NormalizeKey(name) == "" {
		return State{}, fmt.Errorf("%w: '%s'", ErrStateNotFound, name)
	}
	return s.clone(), nil
}

// OpenState returns the canonical entry state.
func (m *StateManager) OpenState() (State, error) {
	return m.GetState(OpenStateName)
}

// AddState defines a new state whose edges point at already defined states.
// Nothing is inserted when any check fails.
func (m *StateManager) AddState(name string, next []string) (State, error) {
	key := NormalizeKey(name)
	if key == "" {
		return State{}, ErrInvalidStateName
	}
	if _, ok := m.states[key]; ok {
		return State{}, fmt.Errorf("%w: '%s'", ErrStateExists, name)
	}

	edges := make([]string, 0, len(next))
	for _, n := range next {
		target, err := m.GetState(n)
		if err != nil {
			return State{}, err
		}
		if !slices.Contains(edges, target.Name) {
			edges = append(edges, target.Name)
		}
	}

	s := State{Name: strings.TrimSpace(name), NextStates: edges}
	m.states[key] = s
	return s.clone(), nil
}

// AddNext adds the edge stateName -> nextName between two existing states and
// returns the replacement value for stateName.
func (m *StateManager) AddNext(stateName, nextName string) (State, error) {
	s, err := m.GetState(stateName)
	if err != nil {
		return State{}, err
	}
	next, err := m.GetState(nextName)
	if err != nil {
		return State{}, err
	}
	return m.link(s, next)
}

// AddNewNext creates nextName as a state without edges and links stateName to it.
func (m *StateManager) AddNewNext(stateName, nextName string) (State, error) {
	s, err := m.GetState(stateName)
	if err != nil {
		return State{}, err
	}
	next, err := m.AddState(nextName, nil)
	if err != nil {
		return State{}, err
	}
	return m.link(s, next)
}

func (m *StateManager) link(s, next State) (State, error) {
	if s.CanMoveTo(next.Name) {
		return State{}, fmt.Errorf("%w: '%s' -> '%s'", ErrTransitionExists, s.Name, next.Name)
	}
	replaced := NewState(s.Name, append(slices.Clone(s.NextStates), next.Name))
	m.states[NormalizeKey(s.Name)] = replaced
	return replaced.clone(), nil
}

// MoveToNext validates the transition current -> next and returns the resolved
// next state. It does not record anything; the caller appends the history entry.
func (m *StateManager) MoveToNext(current, next string) (State, error) {
	from, err := m.GetState(current)
	if err != nil {
		return State{}, err
	}
	to, err := m.GetState(next)
	if err != nil {
		return State{}, err
	}
	if !from.CanMoveTo(to.Name) {
		return State{}, fmt.Errorf("%w: can move only to one of %s",
			ErrInvalidTransition, strings.Join(from.NextStates, ","))
	}
	return to, nil
}

// NextStates returns the states reachable from name in one transition.
func (m *StateManager) NextStates(name string) ([]State, error) {
	s, err := m.GetState(name)
	if err != nil {
		return nil, err
	}
	out := make([]State, 0, len(s.NextStates))
	for _, n := range s.NextStates {
		next, err := m.GetState(n)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}
	return out, nil
}
