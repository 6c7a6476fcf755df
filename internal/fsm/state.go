// Package fsm implements the weighted state machine that drives a fuzzing
// run (spec §4.H): a State holds a precondition and a set of weighted
// outgoing ActionTuples, and an FSM walks states, picks a tuple by weight,
// runs its action, and transitions on success.
package fsm

import (
	"github.com/smtmbt/smtmbt/internal/action"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
)

// Precondition gates entry into a State. When Run finds the current
// state's precondition false it stops with an ErrInvariant error;
// CheckStates does not evaluate preconditions.
type Precondition func(m *solvermgr.SolverMgr) bool

// ActionTuple pairs an Action with the weight used to pick it and the
// state to transition to on success. Next == nil means "stay".
type ActionTuple struct {
	Action action.Action
	Weight uint32
	Next   *State
}

// State is one node of the FSM.
type State struct {
	id        string
	isFinal   bool
	precond   Precondition
	actions   []ActionTuple
}

func newState(id string, precond Precondition, isFinal bool) *State {
	return &State{id: id, precond: precond, isFinal: isFinal}
}

// ID returns this state's unique identifier.
func (s *State) ID() string { return s.id }

// IsFinal reports whether this is a terminal state.
func (s *State) IsFinal() bool { return s.isFinal }

// AddAction registers an action in this state with the given weight and
// successor state (nil meaning "stay in this state").
func (s *State) AddAction(a action.Action, weight uint32, next *State) {
	s.actions = append(s.actions, ActionTuple{Action: a, Weight: weight, Next: next})
}

// pick weighted-samples one ActionTuple from this state's outgoing edges.
// Panics if the state has no outgoing edges, which check_states forbids.
func (s *State) pick(m *solvermgr.SolverMgr) ActionTuple {
	weights := make([]uint32, len(s.actions))
	for i, t := range s.actions {
		weights[i] = t.Weight
	}
	idx := m.RNG.PickWeighted(weights)
	return s.actions[idx]
}
