package fsm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtmbt/smtmbt/internal/action"
	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/solver"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/termdb"
	"github.com/smtmbt/smtmbt/internal/trace"
)

func newTestMgr(t *testing.T, seed uint32, w *trace.Writer) *solvermgr.SolverMgr {
	t.Helper()
	ops, err := opmgr.New(opmgr.Config{Theories: []string{"core"}})
	require.NoError(t, err)
	return solvermgr.New(solvermgr.Config{
		Solver:           newFakeSolver(),
		Ops:              ops,
		DB:               termdb.New(),
		RNG:              rng.New(seed),
		Options:          solvermgr.NewSolverOptions(nil),
		Stats:            solvermgr.NewStats(),
		EnabledSortKinds: []smtsort.Kind{smtsort.BOOL},
		Trace:            w,
	})
}

func Test_StatePickFavorsHeavierWeight(t *testing.T) {
	mgr := newTestMgr(t, 1, nil)
	s := newState("s", nil, false)
	s.AddAction(action.NewAction{}, 1, nil)
	s.AddAction(action.DeleteAction{}, 99, nil)

	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		counts[s.pick(mgr).Action.ID()]++
	}
	assert.Greater(t, counts["delete"], counts["new"], "heavier weight should win far more often")
}

func Test_CheckStatesPassesOnConfiguredGraph(t *testing.T) {
	mgr := newTestMgr(t, 1, nil)
	f := Configure(mgr, nil)
	require.NoError(t, f.CheckStates())
}

func Test_CheckStatesFailsOnUnreachableState(t *testing.T) {
	mgr := newTestMgr(t, 1, nil)
	f := New(mgr, nil)
	a := f.NewState("a", nil, false)
	f.NewState("orphan", nil, false)
	f.SetInitState(a)
	f.AddAction(a, action.NewAction{}, 1, nil)

	err := f.CheckStates()
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrInvariant)
	assert.Contains(t, err.Error(), "orphan")
}

func Test_CheckStatesFailsOnNonFinalSinkState(t *testing.T) {
	mgr := newTestMgr(t, 1, nil)
	f := New(mgr, nil)
	a := f.NewState("a", nil, false)
	b := f.NewState("b", nil, false)
	f.SetInitState(a)
	f.AddAction(a, action.NewAction{}, 1, b)
	// b has no outgoing actions and is not final: must fail.

	err := f.CheckStates()
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrInvariant)
}

func Test_CheckStatesAllowsAFinalSinkState(t *testing.T) {
	mgr := newTestMgr(t, 1, nil)
	f := New(mgr, nil)
	a := f.NewState("a", nil, false)
	done := f.NewState("done", nil, true)
	f.SetInitState(a)
	f.AddAction(a, action.NewAction{}, 1, done)

	assert.NoError(t, f.CheckStates())
}

func Test_RunDrivesConfiguredGraphThroughACheckSat(t *testing.T) {
	mgr := newTestMgr(t, 42, nil)
	f := Configure(mgr, nil)

	fired, err := f.Run(3000)
	require.NoError(t, err)
	assert.Greater(t, fired, 0)
	assert.True(t, mgr.SatCalled)
}

func Test_UntraceRoundTripsARecordedRun(t *testing.T) {
	var buf strings.Builder
	w := trace.NewWriter(&buf)
	mgr := newTestMgr(t, 7, w)
	f := Configure(mgr, nil)

	fired, err := f.Run(100)
	require.NoError(t, err)
	require.Greater(t, fired, 0)

	replayMgr := newTestMgr(t, 7, nil)
	rf := Configure(replayMgr, nil)
	r := trace.NewReader(strings.NewReader(buf.String()))
	require.NoError(t, rf.Untrace(r))
}

func Test_UntraceDetectsDivergentReturn(t *testing.T) {
	mgr := newTestMgr(t, 7, nil)
	f := New(mgr, nil)
	f.AddAction(f.NewState("only", nil, true), action.MkSortAction{}, 1, nil)

	corrupted := "mk-sort BOOL\nreturn s999\n"
	r := trace.NewReader(strings.NewReader(corrupted))
	err := f.Untrace(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrDivergence)
}

func Test_UntraceRejectsUnknownActionID(t *testing.T) {
	mgr := newTestMgr(t, 7, nil)
	f := New(mgr, nil)
	f.NewState("only", nil, true)

	r := trace.NewReader(strings.NewReader("not-a-real-action\n"))
	err := f.Untrace(r)
	require.Error(t, err)
	assert.ErrorIs(t, err, solver.ErrDivergence)
}
