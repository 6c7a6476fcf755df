package fsm

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/smtmbt/smtmbt/internal/action"
	"github.com/smtmbt/smtmbt/internal/solver"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/trace"
)

// sortCreatingActionID is the only action id whose Untrace return value
// names a sort rather than a term.
const sortCreatingActionID = "mk-sort"

// transitionAction is a no-op Action used to move between states
// without an associated back-end call, mirroring
// original_source/src/fsm.hpp's Transition class.
type transitionAction struct{}

func (transitionAction) ID() string { return "" }
func (transitionAction) Run(*solvermgr.SolverMgr) (bool, error) { return true, nil }
func (transitionAction) Untrace(*solvermgr.SolverMgr, []string) (uint64, error) { return 0, nil }

// FSM drives a run: pick a weighted transition from the current state,
// run its action, and move on success (spec §4.H).
type FSM struct {
	smgr    *solvermgr.SolverMgr
	log     *logrus.Entry
	states  map[string]*State
	actions map[string]action.Action
	init    *State
	cur     *State
	anon    int
}

// New creates an FSM bound to smgr. log may be nil.
func New(smgr *solvermgr.SolverMgr, log *logrus.Entry) *FSM {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &FSM{
		smgr:    smgr,
		log:     log,
		states:  make(map[string]*State),
		actions: make(map[string]action.Action),
	}
}

// NewState creates and registers a state, returning the existing state
// of the same id if one is already registered (idempotent, mirroring
// FSM::new_state's dedup-by-id behavior).
func (f *FSM) NewState(id string, precond Precondition, isFinal bool) *State {
	if id == "" {
		f.anon++
		id = "state_anon_" + strconv.Itoa(f.anon)
	}
	if s, ok := f.states[id]; ok {
		return s
	}
	s := newState(id, precond, isFinal)
	f.states[id] = s
	return s
}

// GetState looks up a previously created state by id.
func (f *FSM) GetState(id string) (*State, bool) {
	s, ok := f.states[id]
	return s, ok
}

// SetInitState fixes the run's starting state.
func (f *FSM) SetInitState(s *State) {
	f.init = s
	f.cur = s
}

// AddAction wires action a into state s with the given weight and
// successor (nil next means "stay"), registering a for Untrace dispatch.
func (f *FSM) AddAction(s *State, a action.Action, weight uint32, next *State) {
	s.AddAction(a, weight, next)
	if a.ID() != "" {
		f.actions[a.ID()] = a
	}
}

// AddActionToAllStates wires a into every currently registered state
// except those named in excluded.
func (f *FSM) AddActionToAllStates(a action.Action, weight uint32, next *State, excluded map[string]bool) {
	for id, s := range f.states {
		if excluded[id] {
			continue
		}
		f.AddAction(s, a, weight, next)
	}
}

// AddState implements solver.FSMConfigurer, the narrow extension point
// a back-end's ConfigureFSM is given to register solver-specific states
// without the solver package depending on fsm.
func (f *FSM) AddState(id string) error {
	f.NewState(id, nil, false)
	return nil
}

// CheckStates verifies the graph is well formed: every state is
// reachable from the init state, and every non-final state has at
// least one outgoing action (final states are terminal by definition
// and may be sinks).
func (f *FSM) CheckStates() error {
	if f.init == nil {
		return errors.Wrap(solver.ErrInvariant, "fsm: no init state set")
	}
	reached := map[string]bool{f.init.id: true}
	queue := []*State{f.init}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, t := range s.actions {
			next := t.Next
			if next == nil {
				continue
			}
			if !reached[next.id] {
				reached[next.id] = true
				queue = append(queue, next)
			}
		}
	}
	for id, s := range f.states {
		if !reached[id] {
			return errors.Wrapf(solver.ErrInvariant, "fsm: state %q is unreachable from the init state", id)
		}
		if !s.isFinal && len(s.actions) == 0 {
			return errors.Wrapf(solver.ErrInvariant, "fsm: non-final state %q has no outgoing actions", id)
		}
	}
	return nil
}

// Run executes the state machine until a final state is reached or
// maxSteps actions have fired. A precondition miss neither transitions
// nor counts against maxSteps. Returns the number of actions that
// actually fired.
func (f *FSM) Run(maxSteps int) (int, error) {
	fired := 0
	for fired < maxSteps {
		if f.cur.isFinal {
			break
		}
		if f.cur.precond != nil && !f.cur.precond(f.smgr) {
			return fired, errors.Wrapf(solver.ErrInvariant, "fsm: precondition false entering state %q", f.cur.id)
		}
		tuple := f.cur.pick(f.smgr)
		ran, err := tuple.Action.Run(f.smgr)
		if err != nil {
			return fired, err
		}
		if !ran {
			f.log.WithFields(logrus.Fields{"state": f.cur.id, "action": tuple.Action.ID()}).Debug("precondition miss")
			continue
		}
		fired++
		f.log.WithFields(logrus.Fields{"state": f.cur.id, "action": tuple.Action.ID()}).Debug("action fired")
		if tuple.Next != nil {
			f.cur = tuple.Next
		}
	}
	return fired, nil
}

// Untrace replays a recorded trace, dispatching each action line to the
// matching registered Action's Untrace and checking the following
// return line (if any) for divergence.
func (f *FSM) Untrace(r *trace.Reader) error {
	var pendingID string
	for {
		line, err := r.Next()
		if err != nil {
			if err == io.EOF {
				if pendingID != "" {
					return errors.Wrapf(solver.ErrDivergence, "untrace: trace ended with an unmatched return for %q", pendingID)
				}
				return nil
			}
			return err
		}
		switch line.Kind {
		case trace.CommentLine:
			continue
		case trace.SeedLine:
			f.smgr.RNG.Reseed(line.Seed)
		case trace.ActionLine:
			if pendingID != "" {
				return errors.Wrapf(solver.ErrDivergence, "untrace: action %q missing its return line", pendingID)
			}
			a, ok := f.actions[line.ActionID]
			if !ok {
				return errors.Wrapf(solver.ErrDivergence, "untrace: unknown action id %q", line.ActionID)
			}
			id, err := a.Untrace(f.smgr, line.Tokens)
			if err != nil {
				return err
			}
			if id != 0 {
				pendingID = refFor(line.ActionID, id)
			}
		case trace.ReturnLine:
			if pendingID == "" {
				return errors.Wrapf(solver.ErrDivergence, "untrace: unexpected return line %q with no pending object-creating action", line.ReturnRef)
			}
			if pendingID != line.ReturnRef {
				return errors.Wrapf(solver.ErrDivergence, "untrace: expected %q, replay produced %q", line.ReturnRef, pendingID)
			}
			pendingID = ""
		}
	}
}

// refFor renders the return-line token a successful Untrace of actionID
// would have produced. Only mk-sort creates a sort; every other
// object-creating action creates a term.
func refFor(actionID string, id uint64) string {
	if actionID == sortCreatingActionID {
		return "s" + strconv.FormatUint(id, 10)
	}
	return "t" + strconv.FormatUint(id, 10)
}
