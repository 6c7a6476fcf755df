package yices2

import (
	yices2 "github.com/ianamason/yices2_go_bindings/yices_api"

	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
)

func (s *Solver) MkBoolSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.BOOL, Handle: yices2.BoolType()}, nil
}

func (s *Solver) MkIntSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-int-sort", "arithmetic theory not supported by this back-end")
}

func (s *Solver) MkRealSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-real-sort", "arithmetic theory not supported by this back-end")
}

func (s *Solver) MkStringSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-string-sort", "string theory not supported by this back-end")
}

func (s *Solver) MkRegLanSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-reglan-sort", "string theory not supported by this back-end")
}

func (s *Solver) MkBVSort(width uint32) (*smtsort.Sort, error) {
	t := yices2.BvType(width)
	if t == yices2.NullType {
		return nil, yicesErr("mk-bv-sort")
	}
	return &smtsort.Sort{Kind: smtsort.BV, BVSize: width, Handle: t}, nil
}

func (s *Solver) MkFPSort(expWidth, sigWidth uint32) (*smtsort.Sort, error) {
	return nil, rejectf("mk-fp-sort", "floating-point theory not supported by this back-end")
}

func (s *Solver) MkRMSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-rm-sort", "floating-point theory not supported by this back-end")
}

// MkArraySort models an SMT array as a yices uninterpreted function
// from index to element, the same representation the teacher's
// internal/smt/array.go uses for EVM word arrays.
func (s *Solver) MkArraySort(index, elem *smtsort.Sort) (*smtsort.Sort, error) {
	domain := index.Handle.(yices2.TypeT)
	rng := elem.Handle.(yices2.TypeT)
	ft := yices2.FunctionType1(domain, rng)
	if ft == yices2.NullType {
		return nil, yicesErr("mk-array-sort")
	}
	return &smtsort.Sort{Kind: smtsort.ARRAY, Params: []*smtsort.Sort{index, elem}, Handle: ft}, nil
}

func (s *Solver) MkFunSort(domain []*smtsort.Sort, codomain *smtsort.Sort) (*smtsort.Sort, error) {
	dom := make([]yices2.TypeT, len(domain))
	for i, d := range domain {
		dom[i] = d.Handle.(yices2.TypeT)
	}
	ft := yices2.FunctionType(dom, codomain.Handle.(yices2.TypeT))
	if ft == yices2.NullType {
		return nil, yicesErr("mk-fun-sort")
	}
	return &smtsort.Sort{
		Kind:   smtsort.FUN,
		Params: append(append([]*smtsort.Sort{}, domain...), codomain),
		Handle: ft,
	}, nil
}

func (s *Solver) MkSeqSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return nil, rejectf("mk-seq-sort", "sequence theory not supported by this back-end")
}

func (s *Solver) MkSetSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return nil, rejectf("mk-set-sort", "set theory not supported by this back-end")
}

func (s *Solver) MkBagSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return nil, rejectf("mk-bag-sort", "bag theory not supported by this back-end")
}

// MkUninterpretedSort models a nullary uninterpreted sort as a
// 0-argument function type's range is not expressible directly in
// yices (it has no free-standing uninterpreted-type constructor in the
// vendored wrapper beyond the fixed built-ins), so a uninterpreted
// sort of arity 0 is represented as its own bit-vector sort sized to
// hold a 256-bit EVM-style word, matching the teacher's Array/Function
// default of a 256-bit element width; arity > 0 is rejected.
func (s *Solver) MkUninterpretedSort(name string, arity uint32) (*smtsort.Sort, error) {
	if arity != 0 {
		return nil, rejectf("mk-uninterpreted-sort", "parametric uninterpreted sorts not supported by this back-end")
	}
	const defaultWidth = 256
	t := yices2.BvType(defaultWidth)
	if t == yices2.NullType {
		return nil, yicesErr("mk-uninterpreted-sort")
	}
	return &smtsort.Sort{
		Kind:               smtsort.ANY,
		UninterpretedName:  name,
		UninterpretedArity: arity,
		Handle:             t,
	}, nil
}
