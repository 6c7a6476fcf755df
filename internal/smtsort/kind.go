// Package smtsort implements the back-end-agnostic Sort value object and
// its closed SortKind enumeration (spec §3, §4.B).
package smtsort

// Kind is the closed enumeration of SMT-LIB sort categories. ANY is a
// sentinel meaning "unconstrained" and must never appear on a Sort that
// has been registered with a SolverMgr.
type Kind int

const (
	UNDEFINED Kind = iota
	BOOL
	BV
	INT
	REAL
	FP
	RM
	STRING
	REGLAN
	ARRAY
	BAG
	SEQ
	SET
	FUN
	// ANY is the sentinel used by operator-argument descriptors that
	// accept any concrete sort kind (e.g. equality, ite, distinct).
	ANY
)

var kindNames = map[Kind]string{
	UNDEFINED: "UNDEFINED",
	BOOL:      "BOOL",
	BV:        "BV",
	INT:       "INT",
	REAL:      "REAL",
	FP:        "FP",
	RM:        "RM",
	STRING:    "STRING",
	REGLAN:    "REGLAN",
	ARRAY:     "ARRAY",
	BAG:       "BAG",
	SEQ:       "SEQ",
	SET:       "SET",
	FUN:       "FUN",
	ANY:       "ANY",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNDEFINED"
}

// IsParametric returns true for sort kinds that carry one or more
// parameter sorts (element sort, domain/codomain, ...).
func (k Kind) IsParametric() bool {
	switch k {
	case ARRAY, BAG, SEQ, SET, FUN:
		return true
	default:
		return false
	}
}

// HasWidth returns true for sort kinds that carry width parameters
// (bv_size, fp_exp_size/fp_sig_size).
func (k Kind) HasWidth() bool {
	return k == BV || k == FP
}

var namesToKind = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// KindFromString parses a Kind's String() form back into a Kind,
// returning UNDEFINED for an unrecognized name (used by trace replay).
func KindFromString(s string) Kind {
	if k, ok := namesToKind[s]; ok {
		return k
	}
	return UNDEFINED
}

// AllKinds lists every concrete (non-ANY, non-UNDEFINED) SortKind, in a
// stable order used for deterministic iteration (e.g. pick_sort_kind).
var AllKinds = []Kind{
	BOOL, BV, INT, REAL, FP, RM, STRING, REGLAN, ARRAY, BAG, SEQ, SET, FUN,
}
