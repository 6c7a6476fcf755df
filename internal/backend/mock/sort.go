package mock

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/smtmbt/smtmbt/internal/solver"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
)

// sortHandle is a string built from a sort's structure, used as
// smtsort.Sort.Handle. Two Mk* calls that describe the same sort
// produce the same string, so Sort.Equal's Handle == comparison gives
// the structural equality the core relies on without the back-end
// having to keep an intern table.
type sortHandle string

func leafHandle(kind smtsort.Kind) sortHandle { return sortHandle(kind.String()) }

func (s *Solver) MkBoolSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.BOOL, Handle: leafHandle(smtsort.BOOL)}, nil
}

func (s *Solver) MkIntSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.INT, Handle: leafHandle(smtsort.INT)}, nil
}

func (s *Solver) MkRealSort() (*smtsort.Sort, error) {
	return &smtsort.Sort{Kind: smtsort.REAL, Handle: leafHandle(smtsort.REAL)}, nil
}

func (s *Solver) MkStringSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "STRING not supported by this back-end")
}

func (s *Solver) MkRegLanSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "REGLAN not supported by this back-end")
}

func (s *Solver) MkBVSort(width uint32) (*smtsort.Sort, error) {
	if width == 0 {
		return nil, rejectf("mk-sort", "BV width must be >= 1")
	}
	return &smtsort.Sort{Kind: smtsort.BV, BVSize: width, Handle: sortHandle(fmt.Sprintf("BV%d", width))}, nil
}

func (s *Solver) MkFPSort(expWidth, sigWidth uint32) (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "FP not supported by this back-end")
}

func (s *Solver) MkRMSort() (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "RM not supported by this back-end")
}

func (s *Solver) MkArraySort(index, elem *smtsort.Sort) (*smtsort.Sort, error) {
	return &smtsort.Sort{
		Kind:   smtsort.ARRAY,
		Params: []*smtsort.Sort{index, elem},
		Handle: sortHandle(fmt.Sprintf("ARRAY(%s,%s)", index.Handle, elem.Handle)),
	}, nil
}

func (s *Solver) MkFunSort(domain []*smtsort.Sort, codomain *smtsort.Sort) (*smtsort.Sort, error) {
	params := append(append([]*smtsort.Sort{}, domain...), codomain)
	key := "FUN("
	for i, d := range domain {
		if i > 0 {
			key += ","
		}
		key += fmt.Sprintf("%s", d.Handle)
	}
	key += fmt.Sprintf("->%s)", codomain.Handle)
	return &smtsort.Sort{Kind: smtsort.FUN, Params: params, Handle: sortHandle(key)}, nil
}

func (s *Solver) MkSeqSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "SEQ not supported by this back-end")
}

func (s *Solver) MkSetSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "SET not supported by this back-end")
}

func (s *Solver) MkBagSort(elem *smtsort.Sort) (*smtsort.Sort, error) {
	return nil, rejectf("mk-sort", "BAG not supported by this back-end")
}

func (s *Solver) MkUninterpretedSort(name string, arity uint32) (*smtsort.Sort, error) {
	return &smtsort.Sort{
		Kind:               smtsort.ANY,
		UninterpretedName:  name,
		UninterpretedArity: arity,
		Handle:             sortHandle(fmt.Sprintf("UNINTERPRETED(%s,%d)", name, arity)),
	}, nil
}

func rejectf(op string, format string, args ...interface{}) error {
	return errors.Wrapf(solver.ErrBackendRejected, "mock: %s: %s", op, fmt.Sprintf(format, args...))
}
