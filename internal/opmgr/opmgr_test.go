package opmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtmbt/smtmbt/internal/rng"
)

func Test_NewEnablesOnlyRequestedTheories(t *testing.T) {
	mgr, err := New(Config{Theories: []string{"bv", "core"}})
	require.NoError(t, err)
	assert.True(t, mgr.Enabled(BV_ADD))
	assert.True(t, mgr.Enabled(EQUAL))
	assert.False(t, mgr.Enabled(FP_ADD))
	assert.False(t, mgr.Enabled(STR_CONCAT))
}

func Test_UnsupportedOpKindsExcluded(t *testing.T) {
	mgr, err := New(Config{Theories: []string{"bv"}, UnsupportedOpKinds: []Kind{BV_SMOD}})
	require.NoError(t, err)
	assert.True(t, mgr.Enabled(BV_ADD))
	assert.False(t, mgr.Enabled(BV_SMOD))
}

func Test_LinearArithmeticExcludesNonLinearOps(t *testing.T) {
	mgr, err := New(Config{Theories: []string{"arith"}, LinearArithmeticOnly: true})
	require.NoError(t, err)
	assert.True(t, mgr.Enabled(ARITH_ADD))
	assert.False(t, mgr.Enabled(ARITH_MULT))
	assert.False(t, mgr.Enabled(ARITH_DIV))
}

func Test_FPAddRequiresLeadingRM(t *testing.T) {
	mgr, err := New(Config{Theories: []string{"fp"}})
	require.NoError(t, err)
	data, ok := mgr.Op(FP_ADD)
	require.True(t, ok)
	require.NotNil(t, data.ArgKind)
	assert.Equal(t, 3, int(data.Arity))
}

func Test_AllOpsStableOrder(t *testing.T) {
	mgr, err := New(Config{Theories: []string{"bv", "core", "bool"}})
	require.NoError(t, err)
	a := mgr.AllOps()
	b := mgr.AllOps()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Kind, b[i].Kind)
	}
}

// Test_PickAnyDeterministic is spec §8's replay-fidelity property applied
// to the catalog map: two generators seeded alike must agree on every
// PickAny draw, even though Go itself randomizes map iteration order.
func Test_PickAnyDeterministic(t *testing.T) {
	mgr, err := New(Config{Theories: []string{"bv", "core", "bool"}})
	require.NoError(t, err)

	r1 := rng.New(99)
	r2 := rng.New(99)
	for i := 0; i < 50; i++ {
		d1, ok1 := mgr.PickAny(r1)
		d2, ok2 := mgr.PickAny(r2)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, d1.Kind, d2.Kind)
	}
}

func Test_PickAnyEmptyCatalog(t *testing.T) {
	mgr, err := New(Config{Theories: nil})
	require.NoError(t, err)
	_, ok := mgr.PickAny(rng.New(1))
	assert.False(t, ok)
}
