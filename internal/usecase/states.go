package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// ListStatesInput contains the parameters for listing states.
type ListStatesInput struct{}

// ListStatesOutput contains the state graph.
type ListStatesOutput struct {
	States []domain.State // Sorted by name
}

// ListStates is the use case for printing the state graph.
type ListStates struct {
	states *shared.StateSession
}

// NewListStates creates a new ListStates use case.
func NewListStates(states *shared.StateSession) *ListStates {
	return &ListStates{states: states}
}

// Execute loads the graph.
func (uc *ListStates) Execute(ctx context.Context, _ ListStatesInput) (*ListStatesOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &ListStatesOutput{States: sm.States()}, nil
}

// AddStateInput contains the parameters for defining a state.
type AddStateInput struct {
	Name string
	Next []string // Existing states reachable from the new one
}

// StateOutput contains a state after a graph edit.
type StateOutput struct {
	State domain.State
}

// AddState is the use case for defining a new state.
type AddState struct {
	states *shared.StateSession
}

// NewAddState creates a new AddState use case.
func NewAddState(states *shared.StateSession) *AddState {
	return &AddState{states: states}
}

// Execute adds the state and saves the graph.
func (uc *AddState) Execute(ctx context.Context, in AddStateInput) (*StateOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	state, err := sm.AddState(in.Name, in.Next)
	if err != nil {
		return nil, err
	}
	if err := uc.states.Save(ctx, sm, fmt.Sprintf("add state %s", state.Name)); err != nil {
		return nil, err
	}
	return &StateOutput{State: state}, nil
}

// LinkStatesInput contains the parameters for adding a transition.
type LinkStatesInput struct {
	From string
	To   string
}

// LinkStates is the use case for adding a transition between two existing states.
type LinkStates struct {
	states *shared.StateSession
}

// NewLinkStates creates a new LinkStates use case.
func NewLinkStates(states *shared.StateSession) *LinkStates {
	return &LinkStates{states: states}
}

// Execute adds the transition and saves the graph.
func (uc *LinkStates) Execute(ctx context.Context, in LinkStatesInput) (*StateOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	state, err := sm.AddNext(in.From, in.To)
	if err != nil {
		return nil, err
	}
	if err := uc.states.Save(ctx, sm, fmt.Sprintf("link state %s to %s", in.From, in.To)); err != nil {
		return nil, err
	}
	return &StateOutput{State: state}, nil
}

// AddNextState is the use case for creating a state and linking an existing one to it.
type AddNextState struct {
	states *shared.StateSession
}

// NewAddNextState creates a new AddNextState use case.
func NewAddNextState(states *shared.StateSession) *AddNextState {
	return &AddNextState{states: states}
}

// Execute creates in.To and adds the transition in.From -> in.To.
func (uc *AddNextState) Execute(ctx context.Context, in LinkStatesInput) (*StateOutput, error) {
	sm, err := uc.states.Load(ctx)
	if err != nil {
		return nil, err
	}
	state, err := sm.AddNewNext(in.From, in.To)
	if err != nil {
		return nil, err
	}
	if err := uc.states.Save(ctx, sm, fmt.Sprintf("add state %s after %s", in.To, in.From)); err != nil {
		return nil, err
	}
	return &StateOutput{State: state}, nil
}
