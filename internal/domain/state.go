package domain

import "slices"

// OpenStateName is the canonical entry state of the lifecycle graph.
const OpenStateName = "open"

// State is a node of the lifecycle graph. It is treated as an immutable value:
// StateManager hands out copies and replaces a state wholesale when an edge is added.
type State struct {
	Name       string   `json:"name" yaml:"name"`
	NextStates []string `json:"next" yaml:"next,flow"`
}

// NewState builds a state with its own copy of the edge list.
func NewState(name string, next []string) State {
	return State{Name: name, NextStates: slices.Clone(next)}
}

// CanMoveTo reports whether name is reachable from s in one transition.
func (s State) CanMoveTo(name string) bool {
	key := NormalizeKey(name)
	return slices.ContainsFunc(s.NextStates, func(n string) bool {
		return NormalizeKey(n) == key
	})
}

// IsOpen reports whether s is the canonical entry state.
func (s State) IsOpen() bool {
	return SameKey(s.Name, OpenStateName)
}

func (s State) clone() State {
	return NewState(s.Name, s.NextStates)
}

// DefaultStates returns the graph seeded when no state graph has been saved yet.
func DefaultStates() []State {
	return []State{
		NewState(OpenStateName, []string{"in_progress", "closed"}),
		NewState("in_progress", []string{OpenStateName, "review", "closed"}),
		NewState("review", []string{"in_progress", "closed"}),
		NewState("closed", []string{OpenStateName}),
	}
}
