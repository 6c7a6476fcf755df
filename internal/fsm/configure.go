package fsm

import (
	"github.com/sirupsen/logrus"

	"github.com/smtmbt/smtmbt/internal/action"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
)

func initialized(m *solvermgr.SolverMgr) bool { return m.Solver.IsInitialized() }

// Configure builds the base state graph wiring every action of spec
// §4.G into the handful of states a run cycles through, then gives the
// active back-end a chance to extend the graph through its ConfigureFSM
// hook (spec §9). The back-end's ConfigureOpMgr hook is not called here.
//
// States: new -> opts -> build -> solve -> post-sat -> teardown -> done.
// opts, build and post-sat loop back on themselves, and post-sat returns
// to build, so a run keeps generating sorts, terms, and assertions
// between check-sat calls rather than visiting every state exactly once.
func Configure(smgr *solvermgr.SolverMgr, log *logrus.Entry) *FSM {
	f := New(smgr, log)

	newS := f.NewState("new", nil, false)
	opts := f.NewState("opts", initialized, false)
	build := f.NewState("build", initialized, false)
	solve := f.NewState("solve", initialized, false)
	postSat := f.NewState("post-sat", initialized, false)
	teardown := f.NewState("teardown", initialized, false)
	done := f.NewState("done", nil, true)

	f.SetInitState(newS)

	f.AddAction(newS, action.NewAction{}, 10, opts)

	f.AddAction(opts, action.SetOptAction{}, 5, nil)
	f.AddAction(opts, transitionAction{}, 10, build)

	f.AddAction(build, action.MkSortAction{}, 20, nil)
	f.AddAction(build, action.MkConstAction{}, 15, nil)
	f.AddAction(build, action.MkVarAction{}, 10, nil)
	f.AddAction(build, action.MkValueAction{}, 10, nil)
	f.AddAction(build, action.MkTermAction{}, 30, nil)
	f.AddAction(build, action.AssertAction{}, 15, nil)
	f.AddAction(build, action.PushAction{}, 8, nil)
	f.AddAction(build, action.PopAction{}, 8, nil)
	f.AddAction(build, transitionAction{}, 10, solve)

	f.AddAction(solve, action.CheckSatAction{}, 20, postSat)
	f.AddAction(solve, action.CheckSatAssumingAction{}, 10, postSat)

	f.AddAction(postSat, action.GetValueAction{}, 10, nil)
	f.AddAction(postSat, action.GetUnsatAssumptionsAction{}, 10, nil)
	f.AddAction(postSat, action.ResetAssertionsAction{}, 5, build)
	f.AddAction(postSat, transitionAction{}, 15, build)
	f.AddAction(postSat, transitionAction{}, 5, teardown)

	f.AddAction(teardown, action.DeleteAction{}, 1, done)

	if smgr.Solver != nil {
		_ = smgr.Solver.ConfigureFSM(f)
	}

	return f
}
