package yices2

import (
	"bytes"
	"math/big"

	"github.com/pkg/errors"
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	"github.com/smtmbt/smtmbt/internal/solver"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

func (s *Solver) MkBoolValue(value bool) (*term.Term, error) {
	h := yices2.False()
	if value {
		h = yices2.True()
	}
	return &term.Term{Handle: h}, nil
}

// MkValueFromString parses a BV literal from value in the given base;
// non-BV sorts are rejected since this back-end only supports BOOL/BV.
func (s *Solver) MkValueFromString(sort *smtsort.Sort, value string, base term.ValueBase) (*term.Term, error) {
	if sort.Kind != smtsort.BV {
		return nil, rejectf("mk-value", "only BV literals are supported by this back-end, got %s", sort.Kind)
	}
	radix := 10
	switch base {
	case term.BIN:
		radix = 2
	case term.HEX:
		radix = 16
	}
	n, ok := new(big.Int).SetString(value, radix)
	if !ok {
		return nil, rejectf("mk-value", "malformed numeral %q", value)
	}
	bytes := make([]int32, sort.BVSize)
	bit := new(big.Int)
	for i := range bytes {
		bit.Rsh(n, uint(i))
		if bit.Bit(0) == 1 {
			bytes[i] = 1
		}
	}
	h := yices2.BvconstFromArray(bytes)
	if h == yices2.NullTerm {
		return nil, yicesErr("mk-value")
	}
	return &term.Term{Sort: sort, Handle: h}, nil
}

func (s *Solver) MkSpecialValue(sort *smtsort.Sort, tag term.SpecialValue) (*term.Term, error) {
	if sort.Kind != smtsort.BV {
		return nil, rejectf("mk-special-value", "only BV special values are supported by this back-end")
	}
	w := sort.BVSize
	var h yices2.TermT
	switch tag {
	case term.BVZero:
		h = yices2.BvconstInt64(w, 0)
	case term.BVOne:
		h = yices2.BvconstInt64(w, 1)
	case term.BVOnes:
		h = yices2.Bvnot(yices2.BvconstInt64(w, 0))
	case term.BVMinSigned:
		h = minSignedBV(w)
	case term.BVMaxSigned:
		h = yices2.Bvnot(minSignedBV(w))
	default:
		return nil, rejectf("mk-special-value", "unsupported tag %q", tag)
	}
	if h == yices2.NullTerm {
		return nil, yicesErr("mk-special-value")
	}
	return &term.Term{Sort: sort, Handle: h}, nil
}

// minSignedBV builds 1000...0 (the most negative two's-complement
// value) of width w.
func minSignedBV(w uint32) yices2.TermT {
	return yices2.Bvconcat2(yices2.BvconstInt64(1, 1), yices2.BvconstInt64(w-1, 0))
}

func (s *Solver) MkConst(sort *smtsort.Sort, name string) (*term.Term, error) {
	t := yices2.NewUninterpretedTerm(sort.Handle.(yices2.TypeT))
	if t == yices2.NullTerm {
		return nil, yicesErr("mk-const")
	}
	yices2.SetTermName(t, name)
	return &term.Term{Sort: sort, Handle: t}, nil
}

func (s *Solver) MkVar(sort *smtsort.Sort, name string) (*term.Term, error) {
	t := yices2.NewVariable(sort.Handle.(yices2.TypeT))
	if t == yices2.NullTerm {
		return nil, yicesErr("mk-var")
	}
	yices2.SetTermName(t, name)
	return &term.Term{Sort: sort, Handle: t}, nil
}

func (s *Solver) GetSort(t *term.Term, expected smtsort.Kind) (*smtsort.Sort, error) {
	return t.Sort, nil
}

// --- assertion & solving ---

func (s *Solver) Assert(t *term.Term) error {
	h := t.Handle.(yices2.TermT)
	if yices2.AssertFormula(s.ctx, h) < 0 {
		return yicesErr("assert")
	}
	return nil
}

func mapStatus(st yices2.SmtStatusT) solver.Result {
	switch st {
	case yices2.StatusSat:
		return solver.ResultSat
	case yices2.StatusUnsat:
		return solver.ResultUnsat
	case yices2.StatusError:
		return solver.ResultError
	default:
		return solver.ResultUnknown
	}
}

func (s *Solver) CheckSat() (solver.Result, error) {
	st := yices2.CheckContext(s.ctx, yices2.ParamT{})
	if st == yices2.StatusError {
		return solver.ResultError, yicesErr("check-sat")
	}
	return mapStatus(st), nil
}

// CheckSatAssuming checks the context under a temporary push scope, so
// the assumptions never pollute the run's permanent assertion set —
// the same push/assert/check/pop shape as internal/smt/model.go's eval
// helper, generalized from "evaluate one term" to "check under
// assumptions".
func (s *Solver) CheckSatAssuming(assumptions []*term.Term) (solver.Result, error) {
	yices2.Push(s.ctx)
	defer yices2.Pop(s.ctx)
	hs := make([]yices2.TermT, len(assumptions))
	for i, a := range assumptions {
		hs[i] = a.Handle.(yices2.TermT)
	}
	if yices2.AssertFormulas(s.ctx, hs) < 0 {
		return solver.ResultError, yicesErr("check-sat-assuming")
	}
	st := yices2.CheckContext(s.ctx, yices2.ParamT{})
	if st == yices2.StatusError {
		return solver.ResultError, yicesErr("check-sat-assuming")
	}
	return mapStatus(st), nil
}

// GetUnsatAssumptions is not exposed by the vendored context wrapper
// (no yices_get_unsat_core binding is used by the teacher); an empty
// slice is returned rather than fabricating a core.
func (s *Solver) GetUnsatAssumptions() ([]*term.Term, error) { return nil, nil }

func (s *Solver) CheckUnsatAssumption(t *term.Term) (bool, error) { return false, nil }

func (s *Solver) GetValue(t *term.Term) (*term.Term, error) {
	model := yices2.GetModel(s.ctx, 1)
	if model == nil {
		return nil, yicesErr("get-value")
	}
	h := t.Handle.(yices2.TermT)
	if t.Sort != nil && t.Sort.Kind == smtsort.BOOL {
		var v int32
		if yices2.GetBoolValue(*model, h, &v) != 0 {
			return nil, yicesErr("get-value")
		}
		bh := yices2.False()
		if v != 0 {
			bh = yices2.True()
		}
		return &term.Term{Sort: t.Sort, Handle: bh}, nil
	}
	intVal := make([]int32, t.Sort.BVSize)
	if yices2.GetBvValue(*model, h, intVal) != 0 {
		return nil, yicesErr("get-value")
	}
	bh := yices2.BvconstFromArray(intVal)
	return &term.Term{Sort: t.Sort, Handle: bh}, nil
}

func (s *Solver) Push(levels uint32) error {
	for i := uint32(0); i < levels; i++ {
		yices2.Push(s.ctx)
	}
	s.pushLevel += levels
	return nil
}

func (s *Solver) Pop(levels uint32) error {
	for i := uint32(0); i < levels && i < s.pushLevel; i++ {
		yices2.Pop(s.ctx)
	}
	if levels > s.pushLevel {
		levels = s.pushLevel
	}
	s.pushLevel -= levels
	return nil
}

// PrintModel pretty-prints every term the model assigns a value to,
// the same yices2.PpTerm call the teacher's internal/smt/model.go uses
// for debugging, collected into a string instead of stdout.
func (s *Solver) PrintModel() (string, error) {
	model := yices2.GetModel(s.ctx, 1)
	if model == nil {
		return "", errors.Wrap(solver.ErrBackendRejected, "yices2: print-model: no model (last check-sat was not sat)")
	}
	var buf bytes.Buffer
	for _, t := range yices2.ModelCollectDefinedTerms(*model) {
		yices2.PpTerm(&buf, t, 200, 1, 0)
	}
	return buf.String(), nil
}
