package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/termdb"
)

func newTestMgr(t *testing.T, seed uint32, kinds []smtsort.Kind, theories ...string) (*solvermgr.SolverMgr, *fakeSolver) {
	t.Helper()
	ops, err := opmgr.New(opmgr.Config{Theories: theories})
	require.NoError(t, err)
	fs := newFakeSolver()
	mgr := solvermgr.New(solvermgr.Config{
		Solver:           fs,
		Ops:              ops,
		DB:               termdb.New(),
		RNG:              rng.New(seed),
		Options:          solvermgr.NewSolverOptions(nil),
		Stats:            solvermgr.NewStats(),
		EnabledSortKinds: kinds,
	})
	return mgr, fs
}

func Test_NewActionOnlyFiresWhenUninitialized(t *testing.T) {
	mgr, fs := newTestMgr(t, 1, nil)
	ran, err := NewAction{}.Run(mgr)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.True(t, fs.initialized)

	ran, err = NewAction{}.Run(mgr)
	require.NoError(t, err)
	assert.False(t, ran, "second new must be a precondition miss")
}

func Test_DeleteResetsSolverMgr(t *testing.T) {
	mgr, _ := newTestMgr(t, 1, []smtsort.Kind{smtsort.BOOL}, "core")
	NewAction{}.Run(mgr)
	MkSortAction{}.Run(mgr)
	require.NotNil(t, mgr.BoolSort())

	ran, err := DeleteAction{}.Run(mgr)
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Nil(t, mgr.BoolSort())
}

func Test_MkSortMkConstAssertCheckSatGoldenPath(t *testing.T) {
	mgr, _ := newTestMgr(t, 42, []smtsort.Kind{smtsort.BOOL}, "core")
	require.True(t, mustRun(t, NewAction{}, mgr))
	require.True(t, mustRun(t, MkSortAction{}, mgr))
	require.NotNil(t, mgr.BoolSort())

	require.True(t, mustRun(t, MkConstAction{}, mgr))
	require.True(t, mgr.DB.HasTerm(termdb.HasTermFilter{Sort: mgr.BoolSort()}))

	require.True(t, mustRun(t, AssertAction{}, mgr))
	require.True(t, mustRun(t, CheckSatAction{}, mgr))
	assert.Equal(t, mgr.LastResult.String(), "sat")
}

func Test_MkTermBuildsEqualityFromTwoConstants(t *testing.T) {
	mgr, _ := newTestMgr(t, 7, []smtsort.Kind{smtsort.BOOL}, "core")
	mustRun(t, NewAction{}, mgr)
	mustRun(t, MkSortAction{}, mgr)
	mustRun(t, MkConstAction{}, mgr)
	mustRun(t, MkConstAction{}, mgr)

	ran := false
	var err error
	for i := 0; i < 50 && !ran; i++ {
		ran, err = MkTermAction{}.Run(mgr)
		require.NoError(t, err)
	}
	assert.True(t, ran, "mk-term should eventually fire with two boolean constants available")
}

func Test_PopAfterPushLowersCurrentLevel(t *testing.T) {
	mgr, _ := newTestMgr(t, 3, []smtsort.Kind{smtsort.BOOL}, "core")
	mustRun(t, NewAction{}, mgr)
	mustRun(t, MkSortAction{}, mgr)

	ran, err := PushAction{}.Run(mgr)
	require.NoError(t, err)
	require.True(t, ran)
	levelAfterPush := mgr.DB.CurrentLevel
	require.Greater(t, levelAfterPush, uint32(0))

	mustRun(t, MkVarAction{}, mgr)

	ran, err = PopAction{}.Run(mgr)
	require.NoError(t, err)
	require.True(t, ran)
	assert.Less(t, mgr.DB.CurrentLevel, levelAfterPush)
}

func Test_MkValueProducesAdmittedTerm(t *testing.T) {
	mgr, _ := newTestMgr(t, 9, []smtsort.Kind{smtsort.BOOL}, "core")
	mustRun(t, NewAction{}, mgr)
	mustRun(t, MkSortAction{}, mgr)
	ran, err := MkValueAction{}.Run(mgr)
	require.NoError(t, err)
	assert.True(t, ran)
}

func Test_SetOptUntraceRoundTrips(t *testing.T) {
	mgr, _ := newTestMgr(t, 1, nil)
	mgr.Options = solvermgr.NewSolverOptions([]solvermgr.Option{
		{Name: "produce-models", Domain: []string{"true", "false"}, Default: "false"},
	})
	NewAction{}.Run(mgr)
	id, err := SetOptAction{}.Untrace(mgr, []string{"produce-models", "true"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), id)
	assert.True(t, mgr.Options.IsUsed("produce-models"))
}

func mustRun(t *testing.T, a Action, m *solvermgr.SolverMgr) bool {
	t.Helper()
	ran, err := a.Run(m)
	require.NoError(t, err)
	return ran
}
