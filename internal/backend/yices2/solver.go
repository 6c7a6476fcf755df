// Package yices2 implements solver.Solver against SRI's yices2 SMT
// engine, adapted from the teacher's internal/smt value-object wrappers
// (Bool, BitVec, Array, Function, Model) into a generic Solver
// implementation driven by smtsort.Kind / opmgr.Kind rather than a
// fixed EVM word model.
//
// yices2's native API covers booleans, bit-vectors, and uninterpreted
// functions (used here for arrays); it has no built-in arithmetic,
// string, floating-point, sequence, set, bag, or quantifier theory
// binding in the vendored wrapper the teacher depends on, so
// SupportedTheories reports only BOOL/BV/ARRAY/FUN sorts and
// UnsupportedOpKinds excludes the bit-vector overflow predicates
// (BV_*O), BV_SMOD, and FORALL/EXISTS.
package yices2

import (
	"fmt"

	"github.com/pkg/errors"
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/solver"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

// Solver wraps a single yices2 context, mirroring the teacher's
// internal/smt.Solver but widened to the full Solver seam.
type Solver struct {
	ctx         yices2.ContextT
	initialized bool
	pushLevel   uint32
}

// New returns an uninitialized Solver; call New() (the Solver.New
// lifecycle method, not this constructor) before use.
func New() *Solver {
	return &Solver{}
}

func (s *Solver) New() error {
	s.ctx = yices2.ContextT{}
	yices2.InitContext(yices2.ConfigT{}, &s.ctx)
	s.initialized = true
	s.pushLevel = 0
	return nil
}

func (s *Solver) Delete() error {
	s.initialized = false
	return nil
}

func (s *Solver) IsInitialized() bool { return s.initialized }

func (s *Solver) Reset() error {
	return s.New()
}

func (s *Solver) ResetAssertions() error {
	for i := uint32(0); i < s.pushLevel; i++ {
		yices2.Pop(s.ctx)
	}
	s.pushLevel = 0
	return nil
}

func (s *Solver) SupportedTheories() []smtsort.Kind {
	return []smtsort.Kind{smtsort.BOOL, smtsort.BV, smtsort.ARRAY, smtsort.FUN}
}

// UnsupportedOpKinds lists the bit-vector overflow predicates (an
// SMT-LIB/Bitwuzla/Boolector extension core yices has no primitive
// for), BV_SMOD, and the quantifiers (the vendored binding exposes no
// forall/exists constructor).
func (s *Solver) UnsupportedOpKinds() []string {
	return []string{
		string(opmgr.BV_SADDO), string(opmgr.BV_UADDO),
		string(opmgr.BV_SSUBO), string(opmgr.BV_USUBO),
		string(opmgr.BV_SDIVO), string(opmgr.BV_SMULO), string(opmgr.BV_UMULO),
		string(opmgr.BV_SMOD),
		string(opmgr.FORALL), string(opmgr.EXISTS),
	}
}

func (s *Solver) UnsupportedVarSortKinds() []smtsort.Kind { return nil }

func (s *Solver) OptionNameFor(cap solver.OptionCapability) (string, bool) {
	switch cap {
	case solver.CapIncremental:
		return "incremental", true
	case solver.CapModel:
		return "produce-models", true
	default:
		return "", false
	}
}

func (s *Solver) HasCapability(cap solver.OptionCapability) bool {
	switch cap {
	case solver.CapIncremental, solver.CapModel:
		return true
	default:
		return false
	}
}

// SetOption is a no-op: the vendored context has no generic option
// table, only the fixed ConfigT/ParamT it is built with.
func (s *Solver) SetOption(name, value string) error { return nil }

func rejectf(op string, format string, args ...interface{}) error {
	return errors.Wrapf(solver.ErrBackendRejected, "yices2: %s: %s", op, fmt.Sprintf(format, args...))
}

func yicesErr(op string) error {
	return errors.Wrapf(solver.ErrBackendRejected, "yices2: %s: %s", op, yices2.ErrorString())
}
