package opmgr

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
)

// Config controls which subset of the catalog an OpMgr enables.
type Config struct {
	// Theories lists the enabled theory names (e.g. "bv", "arith").
	Theories []string
	// UnsupportedOpKinds are operator kinds the active back-end cannot
	// construct (spec §4.C Solver.unsupported_op_kinds); excluded at
	// construction.
	UnsupportedOpKinds []Kind
	// LinearArithmeticOnly excludes non-linear arithmetic operators
	// (ARITH_MULT/ARITH_DIV) per spec §4.D.
	LinearArithmeticOnly bool
}

// OpMgr is the catalog of every operator enabled for the current run,
// built once at construction and queried read-only thereafter.
type OpMgr struct {
	ops map[Kind]Data
}

// New constructs an OpMgr, enforcing the construction-time invariants of
// spec §4.D: arity/descriptor-length consistency, linear-arithmetic
// exclusion, and required parameter-sort constraints.
func New(cfg Config) (*OpMgr, error) {
	enabledTheory := make(map[string]bool, len(cfg.Theories))
	for _, t := range cfg.Theories {
		enabledTheory[t] = true
	}
	unsupported := make(map[Kind]bool, len(cfg.UnsupportedOpKinds))
	for _, k := range cfg.UnsupportedOpKinds {
		unsupported[k] = true
	}

	mgr := &OpMgr{ops: make(map[Kind]Data)}
	for kind, data := range catalog {
		if !enabledTheory[data.Theory] {
			continue
		}
		if unsupported[kind] {
			continue
		}
		if cfg.LinearArithmeticOnly && data.NonLinearOnly {
			continue
		}
		if err := validate(data); err != nil {
			return nil, errors.Wrapf(err, "opmgr: invalid catalog entry for %s", kind)
		}
		mgr.ops[kind] = data
	}
	return mgr, nil
}

// validate enforces that a fixed-arity operator actually has an ArgKind
// function (i.e. its descriptor is well-formed) and that FP operators
// requiring a leading RM argument declare it.
func validate(d Data) error {
	if d.Arity >= 0 && d.ArgKind == nil && d.Arity > 0 {
		return fmt.Errorf("operator %s has fixed arity %d but no argument-kind descriptor", d.Kind, d.Arity)
	}
	if d.Theory == "fp" && d.Arity > 1 {
		// fp.add/fp.sub/... require a leading RM operand (spec §4.D
		// example: "fp.add requires a first argument of kind RM").
		switch d.Kind {
		case FP_ADD, FP_SUB, FP_MUL, FP_DIV, FP_FMA, FP_SQRT, FP_RTI:
			if d.ArgKind(0, int(d.Arity)) != smtsort.RM {
				return fmt.Errorf("operator %s must require RM at argument position 0", d.Kind)
			}
		}
	}
	return nil
}

// AllOps returns every enabled operator kind's Data, in a stable order.
func (m *OpMgr) AllOps() []Data {
	out := make([]Data, 0, len(m.ops))
	for _, k := range sortedKinds(m.ops) {
		out = append(out, m.ops[k])
	}
	return out
}

// Op returns the Data for kind, or (Data{}, false) if kind is not
// enabled in this run's configuration.
func (m *OpMgr) Op(kind Kind) (Data, bool) {
	d, ok := m.ops[kind]
	return d, ok
}

// Enabled reports whether kind is enabled for this run.
func (m *OpMgr) Enabled(kind Kind) bool {
	_, ok := m.ops[kind]
	return ok
}

// PickAny uniformly picks one enabled operator, independent of term
// availability. Used by SolverMgr.PickOpKind when the FSM is not
// constrained to operators with satisfiable argument terms.
func (m *OpMgr) PickAny(r *rng.RNGenerator) (Data, bool) {
	if len(m.ops) == 0 {
		return Data{}, false
	}
	return rng.PickFromMap(r, m.ops), true
}

func sortedKinds(m map[Kind]Data) []Kind {
	out := make([]Kind, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// Deterministic order keeps the availability-cache walk in
	// solvermgr reproducible for a fixed seed and enabled-theory set.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
