package smtsort

import "fmt"

// Handle is the opaque back-end-specific object a Sort wraps (e.g. a
// yices2 TypeT). Back-ends are required to return a comparable
// (non-slice, non-map, non-func) concrete type so that two Sorts
// referencing the same back-end type compare equal via Go's built-in ==,
// which is how solver APIs intern structurally-identical sorts to the
// same handle.
type Handle interface{}

// Sort is a back-end-agnostic value object identifying an SMT-LIB sort.
// Two Sorts are equal iff their back-end Handles compare equal with ==
// (see Handle) — never by comparing *Sort pointers.
type Sort struct {
	// Id is a unique positive identifier assigned on first registration
	// with a SolverMgr. Zero means "not yet registered".
	Id uint64
	// Kind is this sort's category. Never ANY once registered.
	Kind Kind
	// Params holds parameter sorts: element sort for SEQ/SET/BAG,
	// [index, element] for ARRAY, [domain..., codomain] for FUN, empty
	// otherwise.
	Params []*Sort
	// BVSize is the bit-width for BV sorts, zero otherwise.
	BVSize uint32
	// FPExpSize/FPSigSize are the exponent/significand widths for FP
	// sorts, zero otherwise.
	FPExpSize uint32
	FPSigSize uint32
	// UninterpretedName/UninterpretedArity identify an uninterpreted
	// sort declared by (name, arity); empty/zero otherwise.
	UninterpretedName  string
	UninterpretedArity uint32
	// Handle is the back-end's opaque representation of this sort.
	Handle Handle
}

// Equal reports whether two Sorts denote the same back-end sort.
func (s *Sort) Equal(other *Sort) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Handle == other.Handle
}

// HashKey returns a value suitable for use as a map key that respects
// Equal: two equal Sorts produce the same HashKey.
func (s *Sort) HashKey() Handle {
	return s.Handle
}

func (s *Sort) String() string {
	switch {
	case s.Kind == BV:
		return fmt.Sprintf("(_ BitVec %d)", s.BVSize)
	case s.Kind == FP:
		return fmt.Sprintf("(_ FloatingPoint %d %d)", s.FPExpSize, s.FPSigSize)
	case s.Kind.IsParametric() && len(s.Params) > 0:
		return fmt.Sprintf("%s%v", s.Kind, s.Params)
	default:
		return s.Kind.String()
	}
}

// ElementSort returns the element sort of a SEQ/SET/BAG sort, or nil.
func (s *Sort) ElementSort() *Sort {
	if len(s.Params) == 0 {
		return nil
	}
	return s.Params[0]
}

// IndexAndElementSort returns the (index, element) sorts of an ARRAY
// sort, or (nil, nil) if this is not an array sort.
func (s *Sort) IndexAndElementSort() (*Sort, *Sort) {
	if s.Kind != ARRAY || len(s.Params) != 2 {
		return nil, nil
	}
	return s.Params[0], s.Params[1]
}

// DomainAndCodomain returns the (domain..., codomain) sorts of a FUN
// sort, or nil if this is not a function sort.
func (s *Sort) DomainAndCodomain() ([]*Sort, *Sort) {
	if s.Kind != FUN || len(s.Params) == 0 {
		return nil, nil
	}
	return s.Params[:len(s.Params)-1], s.Params[len(s.Params)-1]
}
