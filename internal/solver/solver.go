// Package solver declares the narrow polymorphic Solver interface every
// back-end implements (spec §4.C, §6.1) — the only seam between the
// fuzzer core and an SMT solver. Nothing above this interface knows how
// any particular solver is invoked.
package solver

import (
	"github.com/pkg/errors"

	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

// Result is the outcome of a check-sat family call.
type Result int

const (
	ResultUnknown Result = iota
	ResultSat
	ResultUnsat
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultSat:
		return "sat"
	case ResultUnsat:
		return "unsat"
	case ResultError:
		return "error"
	default:
		return "unknown"
	}
}

// OptionCapability names one of the boolean capabilities a back-end
// reports and whose corresponding solver option name it supplies.
type OptionCapability int

const (
	CapIncremental OptionCapability = iota
	CapModel
	CapUnsatCore
	CapUnsatAssumptions
)

// Sentinel errors for failure kinds 2-4 of spec §7; a precondition miss
// (kind 1) is an Action.Run that returns false, not an error. Back-end
// rejection (kind 2) is reported as an *ordinary* error value wrapping
// one of these, never as a panic; core invariant violations (kind 3) and
// replay divergence (kind 4) are fatal and are reported the same way so
// callers can type-switch with errors.Is.
var (
	// ErrBackendRejected marks a call the core believed well-typed that
	// the back-end nonetheless rejected — a bug candidate (kind 2).
	ErrBackendRejected = errors.New("smtmbt: back-end rejected a well-typed call")
	// ErrInvariant marks an invariant violated inside the core itself
	// (kind 3); always fatal.
	ErrInvariant = errors.New("smtmbt: internal invariant violation")
	// ErrDivergence marks a replay mismatch between an untraced return
	// id and the trace's recorded return id (kind 4); always fatal.
	ErrDivergence = errors.New("smtmbt: replay diverged from trace")
)

// Solver is the contract every back-end (yices2, a mock, ...) must
// implement. Results are the back-end's opaque handles, wrapped by the
// core as smtsort.Sort / term.Term. No exception/panic may cross this
// seam; every fallible operation returns an error.
type Solver interface {
	// --- lifecycle ---
	New() error
	Delete() error
	IsInitialized() bool
	Reset() error
	ResetAssertions() error

	// --- capability reporting ---
	SupportedTheories() []smtsort.Kind
	UnsupportedOpKinds() []string
	UnsupportedVarSortKinds() []smtsort.Kind
	OptionNameFor(cap OptionCapability) (string, bool)
	HasCapability(cap OptionCapability) bool

	// --- option setting ---
	SetOption(name, value string) error

	// --- sort construction ---
	MkBoolSort() (*smtsort.Sort, error)
	MkIntSort() (*smtsort.Sort, error)
	MkRealSort() (*smtsort.Sort, error)
	MkStringSort() (*smtsort.Sort, error)
	MkRegLanSort() (*smtsort.Sort, error)
	MkBVSort(width uint32) (*smtsort.Sort, error)
	MkFPSort(expWidth, sigWidth uint32) (*smtsort.Sort, error)
	MkRMSort() (*smtsort.Sort, error)
	MkArraySort(index, elem *smtsort.Sort) (*smtsort.Sort, error)
	MkFunSort(domain []*smtsort.Sort, codomain *smtsort.Sort) (*smtsort.Sort, error)
	MkSeqSort(elem *smtsort.Sort) (*smtsort.Sort, error)
	MkSetSort(elem *smtsort.Sort) (*smtsort.Sort, error)
	MkBagSort(elem *smtsort.Sort) (*smtsort.Sort, error)
	MkUninterpretedSort(name string, arity uint32) (*smtsort.Sort, error)

	// --- term construction ---
	MkBoolValue(value bool) (*term.Term, error)
	MkValueFromString(sort *smtsort.Sort, value string, base term.ValueBase) (*term.Term, error)
	MkSpecialValue(sort *smtsort.Sort, tag term.SpecialValue) (*term.Term, error)
	MkConst(sort *smtsort.Sort, name string) (*term.Term, error)
	MkVar(sort *smtsort.Sort, name string) (*term.Term, error)
	MkTerm(kind string, sort *smtsort.Sort, args []*term.Term, indices []uint32) (*term.Term, error)

	// --- query ---
	GetSort(t *term.Term, expected smtsort.Kind) (*smtsort.Sort, error)

	// --- assertion & solving ---
	Assert(t *term.Term) error
	CheckSat() (Result, error)
	CheckSatAssuming(assumptions []*term.Term) (Result, error)
	GetUnsatAssumptions() ([]*term.Term, error)
	CheckUnsatAssumption(t *term.Term) (bool, error)
	GetValue(t *term.Term) (*term.Term, error)
	Push(levels uint32) error
	Pop(levels uint32) error
	PrintModel() (string, error)

	// --- solver-specific FSM/op-catalog extension points (spec §4.C
	// "Solvers may additionally register solver-specific Actions ... and
	// operators"); see SPEC_FULL.md open question 1: neither extension
	// point is exercised by the shipped back-ends. ---
	ConfigureFSM(configurer FSMConfigurer) error
	ConfigureOpMgr(configurer OpMgrConfigurer) error
}

// FSMConfigurer is the narrow callback surface a Solver.ConfigureFSM
// implementation is given; defined here (rather than importing the fsm
// package) to avoid a dependency cycle between solver and fsm.
type FSMConfigurer interface {
	AddState(id string) error
}

// OpMgrConfigurer is the analogous callback surface for
// Solver.ConfigureOpMgr.
type OpMgrConfigurer interface {
	AddOpKind(id string, arity int32, resultKind smtsort.Kind) error
}
