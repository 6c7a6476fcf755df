package fsm

import (
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/solver"
	"github.com/smtmbt/smtmbt/internal/term"
)

// fakeSolver is a minimal in-memory solver.Solver used only to drive the
// FSM's own bookkeeping through a full run, not to exercise any real
// solving.
type fakeSolver struct {
	initialized bool
	nextHandle  uint64
	checkSat    solver.Result
}

func newFakeSolver() *fakeSolver {
	return &fakeSolver{checkSat: solver.ResultSat}
}

func (f *fakeSolver) freshHandle() uint64 { f.nextHandle++; return f.nextHandle }

func (f *fakeSolver) New() error             { f.initialized = true; return nil }
func (f *fakeSolver) Delete() error          { f.initialized = false; return nil }
func (f *fakeSolver) IsInitialized() bool    { return f.initialized }
func (f *fakeSolver) Reset() error           { return nil }
func (f *fakeSolver) ResetAssertions() error { return nil }

func (f *fakeSolver) SupportedTheories() []smtsort.Kind       { return smtsort.AllKinds }
func (f *fakeSolver) UnsupportedOpKinds() []string            { return nil }
func (f *fakeSolver) UnsupportedVarSortKinds() []smtsort.Kind { return nil }
func (f *fakeSolver) OptionNameFor(cap solver.OptionCapability) (string, bool) {
	switch cap {
	case solver.CapIncremental:
		return "incremental", true
	case solver.CapModel:
		return "produce-models", true
	}
	return "", false
}
func (f *fakeSolver) HasCapability(cap solver.OptionCapability) bool { return true }

func (f *fakeSolver) SetOption(name, value string) error { return nil }

func (f *fakeSolver) MkBoolSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.BOOL, Handle: "bool"}, nil
}
func (f *fakeSolver) MkIntSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.INT, Handle: "int"}, nil
}
func (f *fakeSolver) MkRealSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.REAL, Handle: "real"}, nil
}
func (f *fakeSolver) MkStringSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.STRING, Handle: "string"}, nil
}
func (f *fakeSolver) MkRegLanSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.REGLAN, Handle: "reglan"}, nil
}
func (f *fakeSolver) MkBVSort(width uint32) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.BV, BVSize: width, Handle: [2]interface{}{"bv", width}}, nil
}
func (f *fakeSolver) MkFPSort(exp, sig uint32) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.FP, FPExpSize: exp, FPSigSize: sig, Handle: [3]interface{}{"fp", exp, sig}}, nil
}
func (f *fakeSolver) MkRMSort() (*smtsort.Sort, error) { return &smtsort.Sort{Kind: smtsort.RM, Handle: "rm"}, nil }
func (f *fakeSolver) MkArraySort(index, elem *smtsort.Sort) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.ARRAY, Params: []*smtsort.Sort{index, elem}, Handle: [3]interface{}{"array", index.Handle, elem.Handle}}, nil
}
func (f *fakeSolver) MkFunSort(domain []*smtsort.Sort, codomain *smtsort.Sort) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.FUN, Params: append(append([]*smtsort.Sort{}, domain...), codomain), Handle: f.freshHandle()}, nil
}
func (f *fakeSolver) MkSeqSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.SEQ, Params: []*smtsort.Sort{elem}, Handle: [2]interface{}{"seq", elem.Handle}}, nil
}
func (f *fakeSolver) MkSetSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.SET, Params: []*smtsort.Sort{elem}, Handle: [2]interface{}{"set", elem.Handle}}, nil
}
func (f *fakeSolver) MkBagSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.BAG, Params: []*smtsort.Sort{elem}, Handle: [2]interface{}{"bag", elem.Handle}}, nil
}
func (f *fakeSolver) MkUninterpretedSort(name string, arity uint32) (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.ANY, UninterpretedName: name, UninterpretedArity: arity, Handle: name}, nil
}

func (f *fakeSolver) MkBoolValue(value bool) (*term.Term, error) {
	return &term.Term{Handle: [2]interface{}{"bool-value", value}}, nil
}
func (f *fakeSolver) MkValueFromString(sort *smtsort.Sort, value string, base term.ValueBase) (*term.Term, error) {
	return &term.Term{Sort: sort, Handle: [3]interface{}{"value", value, base}}, nil
}
func (f *fakeSolver) MkSpecialValue(sort *smtsort.Sort, tag term.SpecialValue) (*term.Term, error) {
	return &term.Term{Sort: sort, Handle: [2]interface{}{"special", tag}}, nil
}
func (f *fakeSolver) MkConst(sort *smtsort.Sort, name string) (*term.Term, error) {
	return &term.Term{Sort: sort, Handle: [2]interface{}{"const", name}}, nil
}
func (f *fakeSolver) MkVar(sort *smtsort.Sort, name string) (*term.Term, error) {
	return &term.Term{Sort: sort, Handle: [2]interface{}{"var", name}}, nil
}
func (f *fakeSolver) MkTerm(kind string, sort *smtsort.Sort, args []*term.Term, indices []uint32) (*term.Term, error) {
	return &term.Term{Sort: sort, Handle: f.freshHandle()}, nil
}

func (f *fakeSolver) GetSort(t *term.Term, expected smtsort.Kind) (*smtsort.Sort, error) { return t.Sort, nil }

func (f *fakeSolver) Assert(t *term.Term) error                              { return nil }
func (f *fakeSolver) CheckSat() (solver.Result, error)                       { return f.checkSat, nil }
func (f *fakeSolver) CheckSatAssuming(assumptions []*term.Term) (solver.Result, error) {
	return f.checkSat, nil
}
func (f *fakeSolver) GetUnsatAssumptions() ([]*term.Term, error)     { return nil, nil }
func (f *fakeSolver) CheckUnsatAssumption(t *term.Term) (bool, error) { return false, nil }
func (f *fakeSolver) GetValue(t *term.Term) (*term.Term, error)      { return t, nil }
func (f *fakeSolver) Push(levels uint32) error                      { return nil }
func (f *fakeSolver) Pop(levels uint32) error                       { return nil }
func (f *fakeSolver) PrintModel() (string, error)                   { return "", nil }

func (f *fakeSolver) ConfigureFSM(configurer solver.FSMConfigurer) error     { return nil }
func (f *fakeSolver) ConfigureOpMgr(configurer solver.OpMgrConfigurer) error { return nil }
