package termdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

type handle string

func boolSort(db *TermDB) *smtsort.Sort {
	return db.FindSort(&smtsort.Sort{Kind: smtsort.BOOL, Handle: handle("bool")})
}

func bvSort(db *TermDB, width uint32, tag string) *smtsort.Sort {
	return db.FindSort(&smtsort.Sort{Kind: smtsort.BV, BVSize: width, Handle: handle(tag)})
}

func Test_AddInputAssignsStableIDs(t *testing.T) {
	db := New()
	bs := boolSort(db)
	a := db.AddInput(&term.Term{Sort: bs, Handle: handle("a")})
	b := db.AddInput(&term.Term{Sort: bs, Handle: handle("b")})
	require.NotEqual(t, a.Id, b.Id)
	assert.True(t, db.HasTerm(HasTermFilter{Sort: bs}))
}

func Test_InsertDeduplicatesByHandle(t *testing.T) {
	db := New()
	bs := boolSort(db)
	a := db.AddInput(&term.Term{Sort: bs, Handle: handle("dup")})
	b := db.AddInput(&term.Term{Sort: bs, Handle: handle("dup")})
	assert.Equal(t, a.Id, b.Id)
}

func Test_AddTermUnionsArgumentLevels(t *testing.T) {
	db := New()
	bs := boolSort(db)
	v1 := db.AddVar(&term.Term{Sort: bs, Handle: handle("v1")}, 2)
	v2 := db.AddVar(&term.Term{Sort: bs, Handle: handle("v2")}, 5)
	conj := db.AddTerm(&term.Term{Sort: bs, Handle: handle("conj")}, v1, v2)
	assert.Equal(t, []uint32{2, 5}, conj.Levels)
	assert.Equal(t, uint32(5), conj.MaxLevel())
}

func Test_ScopeVisibilityFiltersPickTerm(t *testing.T) {
	db := New()
	bs := boolSort(db)
	v := db.AddVar(&term.Term{Sort: bs, Handle: handle("deep")}, 3)
	db.CurrentLevel = 1
	r := rng.New(1)
	_, ok := db.PickTerm(r, HasTermFilter{Sort: bs})
	assert.False(t, ok, "term at level 3 must not be visible at level 1")
	db.CurrentLevel = 3
	got, ok := db.PickTerm(r, HasTermFilter{Sort: bs})
	require.True(t, ok)
	assert.Equal(t, v.Id, got.Id)
}

func Test_PickSortKindWithTermsOnlyReturnsPopulatedKinds(t *testing.T) {
	db := New()
	bs := boolSort(db)
	bvSort(db, 8, "bv8")
	db.AddInput(&term.Term{Sort: bs, Handle: handle("x")})
	r := rng.New(7)
	k, ok := db.PickSortKind(r, true)
	require.True(t, ok)
	assert.Equal(t, smtsort.BOOL, k)
}

func Test_PickValueOnlyReturnsValueLeaves(t *testing.T) {
	db := New()
	bs := boolSort(db)
	db.AddInput(&term.Term{Sort: bs, Handle: handle("input")})
	val := db.AddValue(&term.Term{Sort: bs, Handle: handle("true"), Special: term.SpecialValue("true")})
	r := rng.New(3)
	got, ok := db.PickValue(r, HasTermFilter{Sort: bs})
	require.True(t, ok)
	assert.Equal(t, val.Id, got.Id)
}

func Test_RemoveVarDropsFromPickVar(t *testing.T) {
	db := New()
	bs := boolSort(db)
	v := db.AddVar(&term.Term{Sort: bs, Handle: handle("v")}, 0)
	r := rng.New(4)
	_, ok := db.PickVar(r, bs)
	require.True(t, ok)
	db.RemoveVar(v)
	_, ok = db.PickVar(r, bs)
	assert.False(t, ok)
}

func Test_PickQuantBodyRequiresBoundVariable(t *testing.T) {
	db := New()
	bs := boolSort(db)
	db.AddInput(&term.Term{Sort: bs, Handle: handle("plain")})
	r := rng.New(9)
	_, ok := db.PickQuantBody(r, bs)
	assert.False(t, ok, "no term references a bound variable yet")

	v := db.AddVar(&term.Term{Sort: bs, Handle: handle("qv")}, 0)
	body := db.AddTerm(&term.Term{Sort: bs, Handle: handle("body")}, v)
	got, ok := db.PickQuantBody(r, bs)
	require.True(t, ok)
	assert.Equal(t, body.Id, got.Id)
}

func Test_FindSortInternsStructurallyEqualSorts(t *testing.T) {
	db := New()
	s1 := db.FindSort(&smtsort.Sort{Kind: smtsort.BV, BVSize: 4, Handle: handle("bv4")})
	s2 := db.FindSort(&smtsort.Sort{Kind: smtsort.BV, BVSize: 4, Handle: handle("bv4")})
	assert.Equal(t, s1.Id, s2.Id)
}
