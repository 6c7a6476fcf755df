// Package solvermgr implements the top-level façade Actions drive
// (spec §4.F): it owns the Solver back-end, the TermDB, the OpMgr, the
// declared option table, the assumption set, and the run's statistics.
package solvermgr

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	"github.com/smtmbt/smtmbt/internal/solver"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
	"github.com/smtmbt/smtmbt/internal/termdb"
	"github.com/smtmbt/smtmbt/internal/trace"
)

// Config bundles the collaborators a SolverMgr is built from.
type Config struct {
	Solver  solver.Solver
	Ops     *opmgr.OpMgr
	DB      *termdb.TermDB
	RNG     *rng.RNGenerator
	Options *SolverOptions
	Stats   *Stats
	Log     *logrus.Entry

	// ArithSubtyping gates the REAL-where-INT-expected coercion in
	// AddSort (SPEC_FULL open question 2).
	ArithSubtyping bool
	// SimpleSymbols selects PickSymbol's `_x{n}` naming mode instead of
	// randomized SMT-LIB identifiers.
	SimpleSymbols bool
	// EnabledSortKinds lists the sort kinds `mk-sort` is allowed to
	// build, derived from the run's enabled theories.
	EnabledSortKinds []smtsort.Kind
	// Trace is the optional recording sink; nil disables tracing
	// entirely (e.g. during replay, which never re-records).
	Trace *trace.Writer
}

// SolverMgr is the façade every Action runs against.
type SolverMgr struct {
	Solver  solver.Solver
	DB      *termdb.TermDB
	Ops     *opmgr.OpMgr
	RNG     *rng.RNGenerator
	Options *SolverOptions
	Stats   *Stats
	log     *logrus.Entry

	arithSubtyping bool
	simpleSymbols  bool
	symbolCounter  uint64

	boolSort *smtsort.Sort

	// waiting/enabled implement the op-selection availability cache
	// (spec §4.E "Op-selection availability cache"). FORALL/EXISTS are
	// intentionally never placed in either set.
	waiting map[opmgr.Kind]struct{}
	enabled map[opmgr.Kind]struct{}

	EnabledSortKinds []smtsort.Kind

	Assumptions []*term.Term
	SatCalled   bool
	LastResult  solver.Result

	// UntracedTerms/UntracedSorts map a trace id back to the live
	// object it names, for divergence checks during replay (spec §4.H).
	UntracedTerms map[uint64]*term.Term
	UntracedSorts map[uint64]*smtsort.Sort

	// Trace is the recording sink actions write to as they run; nil
	// means "don't record" (replay, or an unrecorded run).
	Trace *trace.Writer
}

// New constructs a SolverMgr; every enabled op kind starts in the
// waiting set (except FORALL/EXISTS, which are never cached).
func New(cfg Config) *SolverMgr {
	m := &SolverMgr{
		Solver:         cfg.Solver,
		DB:             cfg.DB,
		Ops:            cfg.Ops,
		RNG:            cfg.RNG,
		Options:        cfg.Options,
		Stats:          cfg.Stats,
		log:            cfg.Log,
		arithSubtyping: cfg.ArithSubtyping,
		simpleSymbols:  cfg.SimpleSymbols,
		EnabledSortKinds: cfg.EnabledSortKinds,
		waiting:        make(map[opmgr.Kind]struct{}),
		enabled:        make(map[opmgr.Kind]struct{}),
		UntracedTerms:  make(map[uint64]*term.Term),
		UntracedSorts:  make(map[uint64]*smtsort.Sort),
		Trace:          cfg.Trace,
	}
	for _, d := range cfg.Ops.AllOps() {
		if d.Kind == opmgr.FORALL || d.Kind == opmgr.EXISTS {
			continue
		}
		m.waiting[d.Kind] = struct{}{}
	}
	return m
}

// AddSort interns s, promoting it to requiredKind with the narrow
// consistency checks spec §4.F describes: a width-1 BV is acceptable
// where BOOL is expected, and REAL is acceptable where INT is expected
// only when arithmetic subtyping is enabled. FUN↔ARRAY coercion is out
// of scope (SPEC_FULL open question 2).
func (m *SolverMgr) AddSort(s *smtsort.Sort, requiredKind smtsort.Kind) (*smtsort.Sort, error) {
	if requiredKind != smtsort.ANY && s.Kind != requiredKind {
		switch {
		case requiredKind == smtsort.BOOL && s.Kind == smtsort.BV && s.BVSize == 1:
		case requiredKind == smtsort.INT && s.Kind == smtsort.REAL && m.arithSubtyping:
		default:
			return nil, errors.Wrapf(solver.ErrInvariant,
				"add_sort: sort kind %s incompatible with required kind %s", s.Kind, requiredKind)
		}
	}
	canon := m.DB.FindSort(s)
	if canon.Kind == smtsort.BOOL && m.boolSort == nil {
		m.boolSort = canon
	}
	return canon, nil
}

// implicitElementSort reports whether kind's element sort is inferred
// from constructor arguments rather than declared up front (SEQ_UNIT,
// SET_SINGLETON, and analogous bag/seq/set constructors).
func implicitElementSort(k smtsort.Kind) bool {
	return k == smtsort.SEQ || k == smtsort.SET || k == smtsort.BAG
}

// AddTerm registers a newly-built compound term, backfilling an
// implicit element sort from the first argument when the operator's
// result sort doesn't carry one yet (spec §4.F add_term).
func (m *SolverMgr) AddTerm(t *term.Term, args ...*term.Term) *term.Term {
	if implicitElementSort(t.Sort.Kind) && len(t.Sort.Params) == 0 && len(args) > 0 {
		t.Sort.Params = []*smtsort.Sort{args[0].Sort}
	}
	return m.DB.AddTerm(t, args...)
}

// existsEnablingTerms reports whether every fixed argument position of
// d already has a visible term of the required sort kind (a position of
// kind ANY needs a visible term of any kind). Variadic operators are
// checked at their minimum arity.
func (m *SolverMgr) existsEnablingTerms(d opmgr.Data) bool {
	if d.ArgKind == nil {
		return true
	}
	n := int(d.Arity)
	switch d.Arity {
	case opmgr.ArityAtLeastOne:
		n = 1
	case opmgr.ArityAtLeastTwo:
		n = 2
	}
	for pos := 0; pos < n; pos++ {
		k := d.ArgKind(pos, n)
		if !m.DB.HasTerm(termdb.HasTermFilter{Kind: k}) {
			return false
		}
	}
	return true
}

// PickOpKind implements spec §4.D/§4.E's pick_op_kind: without
// with_terms it picks uniformly among every enabled operator; with it,
// it walks the waiting set (promoting newly-satisfied operators into
// enabled) and picks uniformly among enabled operators plus FORALL/
// EXISTS, which are re-checked on every call since they consume
// variables.
func (m *SolverMgr) PickOpKind(withTerms bool) (opmgr.Data, bool) {
	if !withTerms {
		return m.Ops.PickAny(m.RNG)
	}

	for k := range m.waiting {
		d, ok := m.Ops.Op(k)
		if ok && m.existsEnablingTerms(d) {
			m.enabled[k] = struct{}{}
			delete(m.waiting, k)
		}
	}

	var candidates []opmgr.Data
	if d, ok := m.Ops.Op(opmgr.FORALL); ok && m.boolSort != nil && m.DB.HasVar(nil) && m.DB.HasQuantBody(m.boolSort) {
		candidates = append(candidates, d)
	}
	if d, ok := m.Ops.Op(opmgr.EXISTS); ok && m.boolSort != nil && m.DB.HasVar(nil) && m.DB.HasQuantBody(m.boolSort) {
		candidates = append(candidates, d)
	}
	for k := range m.enabled {
		if d, ok := m.Ops.Op(k); ok {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return opmgr.Data{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Kind < candidates[j].Kind })
	return rng.PickFromSlice(m.RNG, candidates), true
}

// PickSymbol implements spec §4.F pick_symbol.
func (m *SolverMgr) PickSymbol() string {
	if m.simpleSymbols {
		m.symbolCounter++
		return fmt.Sprintf("_x%d", m.symbolCounter)
	}
	length := m.RNG.PickUint32Range(1, 128)
	if m.RNG.FlipCoin() {
		if length < 2 {
			length = 2
		}
		return m.RNG.PickPipedSymbol(length)
	}
	return m.RNG.PickSimpleSymbol(length)
}

// PickOption draws an available option/value pair and marks it used.
func (m *SolverMgr) PickOption() (Option, string, bool) {
	opt, value, ok := m.Options.Pick(m.RNG)
	if !ok {
		return Option{}, "", false
	}
	m.Options.MarkUsed(opt.Name, value)
	return opt, value, true
}

// Push bumps the current scope level after a successful back-end push.
func (m *SolverMgr) Push(levels uint32) error {
	if err := m.Solver.Push(levels); err != nil {
		return err
	}
	m.DB.CurrentLevel += levels
	return nil
}

// Pop lowers the current scope level after a successful back-end pop.
func (m *SolverMgr) Pop(levels uint32) error {
	if err := m.Solver.Pop(levels); err != nil {
		return err
	}
	if levels > m.DB.CurrentLevel {
		levels = m.DB.CurrentLevel
	}
	m.DB.CurrentLevel -= levels
	return nil
}

// CheckSat runs check-sat and records the result for get-value/
// get-unsat-assumptions preconditions.
func (m *SolverMgr) CheckSat() (solver.Result, error) {
	res, err := m.Solver.CheckSat()
	if err != nil {
		return res, err
	}
	m.SatCalled = true
	m.LastResult = res
	if m.Stats != nil {
		m.Stats.IncCheckSat(res.String())
	}
	return res, nil
}

// CheckSatAssuming runs check-sat-assuming against the current
// assumption set and records the result.
func (m *SolverMgr) CheckSatAssuming() (solver.Result, error) {
	res, err := m.Solver.CheckSatAssuming(m.Assumptions)
	if err != nil {
		return res, err
	}
	m.SatCalled = true
	m.LastResult = res
	if m.Stats != nil {
		m.Stats.IncCheckSat(res.String())
	}
	return res, nil
}

// ResetAssertions clears assertions and assumptions but keeps every
// registered sort/term, matching the `reset-assertions` action.
func (m *SolverMgr) ResetAssertions() error {
	if err := m.Solver.ResetAssertions(); err != nil {
		return err
	}
	m.Assumptions = nil
	m.SatCalled = false
	m.LastResult = solver.ResultUnknown
	return nil
}

// Reset drops every sort, term, and option, mirroring the `delete`
// action's SolverMgr-side effect (spec §9 "on reset, drop in reverse
// order: terms, then sorts, then solver").
func (m *SolverMgr) Reset() {
	m.DB = termdb.New()
	m.Options.Reset()
	m.Assumptions = nil
	m.SatCalled = false
	m.LastResult = solver.ResultUnknown
	m.boolSort = nil
	m.waiting = make(map[opmgr.Kind]struct{})
	m.enabled = make(map[opmgr.Kind]struct{})
	for _, d := range m.Ops.AllOps() {
		if d.Kind == opmgr.FORALL || d.Kind == opmgr.EXISTS {
			continue
		}
		m.waiting[d.Kind] = struct{}{}
	}
	m.UntracedTerms = make(map[uint64]*term.Term)
	m.UntracedSorts = make(map[uint64]*smtsort.Sort)
}

// BoolSort returns the registered BOOL sort, or nil if `mk-sort` for
// BOOL has not yet run.
func (m *SolverMgr) BoolSort() *smtsort.Sort { return m.boolSort }

// TraceAction records one action line, a no-op if tracing is disabled.
func (m *SolverMgr) TraceAction(id string, tokens ...string) {
	if m.Trace == nil {
		return
	}
	_ = m.Trace.WriteAction(id, tokens...)
}

// TraceReturnSort records the `return s<id>` line following a
// sort-creating action, a no-op if tracing is disabled.
func (m *SolverMgr) TraceReturnSort(id uint64) {
	if m.Trace == nil {
		return
	}
	_ = m.Trace.WriteReturnSort(id)
}

// TraceReturnTerm records the `return t<id>` line following a
// term-creating action, a no-op if tracing is disabled.
func (m *SolverMgr) TraceReturnTerm(id uint64) {
	if m.Trace == nil {
		return
	}
	_ = m.Trace.WriteReturnTerm(id)
}
