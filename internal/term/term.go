// Package term implements the back-end-agnostic Term value object
// (spec §3, §4.B) and the special-value tag vocabulary (spec §6.3).
package term

import (
	"fmt"
	"sort"

	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
)

// LeafKind classifies what kind of leaf (if any) a Term is.
type LeafKind int

const (
	// NONE marks a compound term (the result of mk_term).
	NONE LeafKind = iota
	// VALUE marks a literal or special value.
	VALUE
	// CONSTANT marks a free symbol (mk_const).
	CONSTANT
	// VARIABLE marks a quantifier-bound variable (mk_var).
	VARIABLE
)

func (l LeafKind) String() string {
	switch l {
	case VALUE:
		return "VALUE"
	case CONSTANT:
		return "CONSTANT"
	case VARIABLE:
		return "VARIABLE"
	default:
		return "NONE"
	}
}

// SpecialValue names a canonical value tag (spec §6.3). "" means "not a
// special value" (an ordinary literal).
type SpecialValue string

const (
	None SpecialValue = ""

	BVZero      SpecialValue = "zero"
	BVOne       SpecialValue = "one"
	BVOnes      SpecialValue = "ones"
	BVMinSigned SpecialValue = "min-signed"
	BVMaxSigned SpecialValue = "max-signed"

	FPNan    SpecialValue = "nan"
	FPPosInf SpecialValue = "+oo"
	FPNegInf SpecialValue = "-oo"
	FPPosZero SpecialValue = "+zero"
	FPNegZero SpecialValue = "-zero"

	RMRne SpecialValue = "rne"
	RMRna SpecialValue = "rna"
	RMRtn SpecialValue = "rtn"
	RMRtp SpecialValue = "rtp"
	RMRtz SpecialValue = "rtz"

	ReAll     SpecialValue = "re.all"
	ReAllchar SpecialValue = "re.allchar"
	ReNone    SpecialValue = "re.none"
)

// ValueBase names the base used to parse a numeric mk_value string.
type ValueBase int

const (
	DEC ValueBase = iota
	BIN
	HEX
)

func (b ValueBase) String() string {
	switch b {
	case BIN:
		return "BIN"
	case HEX:
		return "HEX"
	default:
		return "DEC"
	}
}

// Handle is the opaque back-end representation of a term (e.g. a yices2
// TermT). As with smtsort.Handle, back-ends must use a comparable
// concrete type.
type Handle interface{}

// Term is a back-end-agnostic value object identifying a live SMT term.
// Equality is back-end equality (Handle ==) AND identical Sort.
type Term struct {
	// Id is a unique, monotonically increasing identifier assigned by
	// the TermDB on insertion.
	Id uint64
	// Sort is the owning Sort of this term.
	Sort *smtsort.Sort
	// Leaf classifies this term's leaf-ness.
	Leaf LeafKind
	// Special is set iff Leaf == VALUE and this value has a canonical
	// tag (spec §6.3); None otherwise.
	Special SpecialValue
	// Levels is the sorted, de-duplicated list of push levels at which
	// every free variable referenced by this term was introduced. An
	// empty slice means the term is ground (valid at any scope level).
	Levels []uint32
	// Args holds the argument terms this term was built from, nil for
	// leaves. CollectVars walks it to find the bound variables a term
	// references.
	Args []*Term
	// Handle is the back-end's opaque representation of this term.
	Handle Handle
}

// Equal reports whether two Terms denote the same back-end term of the
// same sort.
func (t *Term) Equal(other *Term) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Handle == other.Handle && t.Sort.Equal(other.Sort)
}

func (t *Term) String() string {
	return fmt.Sprintf("t%d", t.Id)
}

// MaxLevel returns the maximum push level this term's free variables
// reference, or 0 for a ground term.
func (t *Term) MaxLevel() uint32 {
	if len(t.Levels) == 0 {
		return 0
	}
	return t.Levels[len(t.Levels)-1]
}

// IsGround reports whether this term references no free (bound) variable
// introduced at any push level, i.e. it remains valid after any pop.
func (t *Term) IsGround() bool {
	return len(t.Levels) == 0
}

// CollectVars walks t's argument tree and returns every bound variable
// it references, used to remove quantifier-bound variables once their
// enclosing FORALL/EXISTS term has been built (spec §3 Lifecycles).
func CollectVars(t *Term) []*Term {
	var out []*Term
	seen := make(map[Handle]struct{})
	var walk func(*Term)
	walk = func(t *Term) {
		if t == nil {
			return
		}
		if t.Leaf == VARIABLE {
			if _, ok := seen[t.Handle]; !ok {
				seen[t.Handle] = struct{}{}
				out = append(out, t)
			}
			return
		}
		for _, a := range t.Args {
			walk(a)
		}
	}
	walk(t)
	return out
}

// LevelsUnion merges the scope-level sets of a compound term's arguments,
// producing the sorted, de-duplicated union spec §4.E(1) requires for a
// newly-built term.
func LevelsUnion(args ...*Term) []uint32 {
	seen := make(map[uint32]struct{})
	for _, a := range args {
		for _, l := range a.Levels {
			seen[l] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]uint32, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
