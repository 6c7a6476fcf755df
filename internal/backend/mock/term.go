package mock

import (
	"math/big"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

func (s *Solver) MkBoolValue(v bool) (*term.Term, error) {
	sort, _ := s.MkBoolSort()
	n := &node{leaf: leafValue, sortKind: smtsort.BOOL, litBool: v}
	return &term.Term{Sort: sort, Handle: n}, nil
}

// MkValueFromString parses value in the given base and wraps it as a
// literal of sort. Only INT/REAL/BV are supported, the same scalar set
// value's eval understands.
func (s *Solver) MkValueFromString(sort *smtsort.Sort, v string, base term.ValueBase) (*term.Term, error) {
	radix := 10
	switch base {
	case term.BIN:
		radix = 2
	case term.HEX:
		radix = 16
	}
	switch sort.Kind {
	case smtsort.BV:
		n, ok := new(big.Int).SetString(v, radix)
		if !ok {
			return nil, rejectf("mk-value", "cannot parse %q in base %s", v, base)
		}
		return &term.Term{Sort: sort, Handle: &node{leaf: leafValue, sortKind: smtsort.BV, bvWidth: sort.BVSize, litNum: maskBV(n, sort.BVSize)}}, nil
	case smtsort.INT:
		n, ok := new(big.Int).SetString(v, radix)
		if !ok {
			return nil, rejectf("mk-value", "cannot parse %q in base %s", v, base)
		}
		return &term.Term{Sort: sort, Handle: &node{leaf: leafValue, sortKind: smtsort.INT, litNum: n}}, nil
	case smtsort.REAL:
		r, ok := new(big.Rat).SetString(v)
		if !ok {
			return nil, rejectf("mk-value", "cannot parse %q as a real", v)
		}
		return &term.Term{Sort: sort, Handle: &node{leaf: leafValue, sortKind: smtsort.REAL, litReal: r}}, nil
	default:
		return nil, rejectf("mk-value", "sort %s not supported by this back-end", sort.Kind)
	}
}

func (s *Solver) MkSpecialValue(sort *smtsort.Sort, tag term.SpecialValue) (*term.Term, error) {
	if sort.Kind != smtsort.BV {
		return nil, rejectf("mk-special-value", "sort %s not supported by this back-end", sort.Kind)
	}
	w := sort.BVSize
	var n *big.Int
	switch tag {
	case term.BVZero:
		n = big.NewInt(0)
	case term.BVOne:
		n = big.NewInt(1)
	case term.BVOnes:
		n = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w)), big.NewInt(1))
	case term.BVMinSigned:
		n = new(big.Int).Lsh(big.NewInt(1), uint(w-1))
	case term.BVMaxSigned:
		n = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w-1)), big.NewInt(1))
	default:
		return nil, rejectf("mk-special-value", "tag %s not supported by this back-end", tag)
	}
	return &term.Term{Sort: sort, Handle: &node{leaf: leafValue, sortKind: smtsort.BV, bvWidth: w, litNum: maskBV(n, w)}}, nil
}

func (s *Solver) MkConst(sort *smtsort.Sort, name string) (*term.Term, error) {
	s.nextConst++
	n := &node{leaf: leafConst, id: s.nextConst, name: name, sortKind: sort.Kind, bvWidth: sort.BVSize}
	return &term.Term{Sort: sort, Handle: n}, nil
}

func (s *Solver) MkVar(sort *smtsort.Sort, name string) (*term.Term, error) {
	s.nextConst++
	n := &node{leaf: leafVar, id: s.nextConst, name: name, sortKind: sort.Kind, bvWidth: sort.BVSize}
	return &term.Term{Sort: sort, Handle: n}, nil
}

func (s *Solver) MkTerm(kind string, sort *smtsort.Sort, args []*term.Term, indices []uint32) (*term.Term, error) {
	k := opmgr.Kind(kind)
	argNodes := make([]*node, len(args))
	for i, a := range args {
		argNodes[i] = a.Handle.(*node)
	}
	n := &node{kind: k, sortKind: sort.Kind, bvWidth: sort.BVSize, args: argNodes, indices: indices}
	return &term.Term{Sort: sort, Handle: n}, nil
}
