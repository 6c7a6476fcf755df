package solvermgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
	"github.com/smtmbt/smtmbt/internal/termdb"
)

func newTestMgr(t *testing.T, theories ...string) (*SolverMgr, *fakeSolver) {
	t.Helper()
	ops, err := opmgr.New(opmgr.Config{Theories: theories})
	require.NoError(t, err)
	fs := &fakeSolver{}
	mgr := New(Config{
		Solver:  fs,
		Ops:     ops,
		DB:      termdb.New(),
		RNG:     rng.New(1),
		Options: NewSolverOptions(nil),
		Stats:   NewStats(),
	})
	return mgr, fs
}

func Test_AddSortPromotesBV1ToBool(t *testing.T) {
	mgr, _ := newTestMgr(t, "bv", "core")
	bv1 := &smtsort.Sort{Kind: smtsort.BV, BVSize: 1, Handle: "bv1"}
	got, err := mgr.AddSort(bv1, smtsort.BOOL)
	require.NoError(t, err)
	assert.Equal(t, smtsort.BV, got.Kind)
}

func Test_AddSortRejectsIncompatibleKind(t *testing.T) {
	mgr, _ := newTestMgr(t, "bv")
	bv8 := &smtsort.Sort{Kind: smtsort.BV, BVSize: 8, Handle: "bv8"}
	_, err := mgr.AddSort(bv8, smtsort.BOOL)
	assert.Error(t, err)
}

func Test_AddSortRealToIntRequiresSubtyping(t *testing.T) {
	mgr, _ := newTestMgr(t, "arith")
	real := &smtsort.Sort{Kind: smtsort.REAL, Handle: "real"}
	_, err := mgr.AddSort(real, smtsort.INT)
	assert.Error(t, err)

	mgr.arithSubtyping = true
	got, err := mgr.AddSort(real, smtsort.INT)
	require.NoError(t, err)
	assert.Equal(t, smtsort.REAL, got.Kind)
}

func Test_AddTermBackfillsSeqUnitElementSort(t *testing.T) {
	mgr, _ := newTestMgr(t, "core")
	intSort, _ := mgr.AddSort(&smtsort.Sort{Kind: smtsort.INT, Handle: "int"}, smtsort.ANY)
	elem := mgr.AddTerm(&term.Term{Sort: intSort, Handle: "v"})
	seqSort := &smtsort.Sort{Kind: smtsort.SEQ, Handle: "seq"}
	unit := mgr.AddTerm(&term.Term{Sort: seqSort, Handle: "unit"}, elem)
	require.Len(t, unit.Sort.Params, 1)
	assert.True(t, unit.Sort.Params[0].Equal(intSort))
}

func Test_PickOpKindWithoutTermsPicksAnyEnabledOp(t *testing.T) {
	mgr, _ := newTestMgr(t, "core", "bool")
	d, ok := mgr.PickOpKind(false)
	require.True(t, ok)
	assert.NotEqual(t, opmgr.UNDEFINED, d.Kind)
}

func Test_PickOpKindWithTermsMovesSatisfiedOpsFromWaitingToEnabled(t *testing.T) {
	mgr, _ := newTestMgr(t, "core")
	_, ok := mgr.PickOpKind(true)
	assert.False(t, ok, "no terms exist yet so EQUAL/DISTINCT/ITE stay in waiting")

	boolSort, _ := mgr.AddSort(&smtsort.Sort{Kind: smtsort.BOOL, Handle: "bool"}, smtsort.ANY)
	mgr.AddTerm(&term.Term{Sort: boolSort, Handle: "b1"})
	mgr.AddTerm(&term.Term{Sort: boolSort, Handle: "b2"})

	d, ok := mgr.PickOpKind(true)
	require.True(t, ok)
	assert.NotEqual(t, opmgr.UNDEFINED, d.Kind)
}

func Test_PickSymbolSimpleModeIsSequential(t *testing.T) {
	mgr, _ := newTestMgr(t)
	mgr.simpleSymbols = true
	assert.Equal(t, "_x1", mgr.PickSymbol())
	assert.Equal(t, "_x2", mgr.PickSymbol())
}

func Test_PickOptionRespectsConflictsAndDependencies(t *testing.T) {
	mgr, _ := newTestMgr(t)
	mgr.Options = NewSolverOptions([]Option{
		{Name: "produce-models", Domain: []string{"true", "false"}, Default: "false"},
		{Name: "incremental", Domain: []string{"true", "false"}, ConflictsWith: []string{"produce-models"}},
		{Name: "produce-unsat-cores", DependsOn: []string{"incremental"}, Domain: []string{"true"}},
	})
	opt, _, ok := mgr.PickOption()
	require.True(t, ok)
	assert.NotEqual(t, "produce-unsat-cores", opt.Name, "dependency not yet satisfied")
}

func Test_PushPopTracksCurrentLevel(t *testing.T) {
	mgr, fs := newTestMgr(t)
	require.NoError(t, mgr.Push(3))
	assert.Equal(t, uint32(3), mgr.DB.CurrentLevel)
	assert.Equal(t, uint32(3), fs.pushLevel)
	require.NoError(t, mgr.Pop(3))
	assert.Equal(t, uint32(0), mgr.DB.CurrentLevel)
}

func Test_CheckSatRecordsResult(t *testing.T) {
	mgr, _ := newTestMgr(t)
	res, err := mgr.CheckSat()
	require.NoError(t, err)
	assert.Equal(t, res, mgr.LastResult)
	assert.True(t, mgr.SatCalled)
}

func Test_ResetClearsSortsAndOptions(t *testing.T) {
	mgr, _ := newTestMgr(t, "core")
	mgr.Options.MarkUsed("incremental", "true")
	mgr.AddSort(&smtsort.Sort{Kind: smtsort.BOOL, Handle: "bool"}, smtsort.ANY)
	mgr.Reset()
	assert.False(t, mgr.Options.IsUsed("incremental"))
	assert.Nil(t, mgr.BoolSort())
}
