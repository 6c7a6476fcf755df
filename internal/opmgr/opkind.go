// Package opmgr implements the operator-kind catalog (spec §4.D): a
// table of every supported SMT operator, its arity, its argument/result
// sort-kind constraints, and its owning theory.
package opmgr

import smtsort "github.com/smtmbt/smtmbt/internal/smtsort"

// Kind names a supported SMT operator. UNDEFINED names no operator.
// OpMgr.Op reports an operator it does not hold with ok == false and a
// zero Data, whose Kind is the empty string.
type Kind string

const (
	UNDEFINED Kind = "UNDEFINED"

	// equality / ite / distinct
	DISTINCT Kind = "DISTINCT"
	EQUAL    Kind = "EQUAL"
	ITE      Kind = "ITE"

	// propositional
	AND     Kind = "AND"
	OR      Kind = "OR"
	NOT     Kind = "NOT"
	XOR     Kind = "XOR"
	IMPLIES Kind = "IMPLIES"

	// bit-vector
	BV_EXTRACT      Kind = "BV_EXTRACT"
	BV_REPEAT       Kind = "BV_REPEAT"
	BV_ROTATE_LEFT  Kind = "BV_ROTATE_LEFT"
	BV_ROTATE_RIGHT Kind = "BV_ROTATE_RIGHT"
	BV_SIGN_EXTEND  Kind = "BV_SIGN_EXTEND"
	BV_ZERO_EXTEND  Kind = "BV_ZERO_EXTEND"
	BV_ADD          Kind = "BV_ADD"
	BV_AND          Kind = "BV_AND"
	BV_ASHR         Kind = "BV_ASHR"
	BV_COMP         Kind = "BV_COMP"
	BV_CONCAT       Kind = "BV_CONCAT"
	BV_LSHR         Kind = "BV_LSHR"
	BV_MULT         Kind = "BV_MULT"
	BV_NAND         Kind = "BV_NAND"
	BV_NEG          Kind = "BV_NEG"
	BV_NOR          Kind = "BV_NOR"
	BV_NOT          Kind = "BV_NOT"
	BV_OR           Kind = "BV_OR"
	BV_REDAND       Kind = "BV_REDAND"
	BV_REDOR        Kind = "BV_REDOR"
	BV_REDXOR       Kind = "BV_REDXOR"
	BV_SADDO        Kind = "BV_SADDO"
	BV_SDIV         Kind = "BV_SDIV"
	BV_SDIVO        Kind = "BV_SDIVO"
	BV_SGE          Kind = "BV_SGE"
	BV_SGT          Kind = "BV_SGT"
	BV_SHL          Kind = "BV_SHL"
	BV_SLE          Kind = "BV_SLE"
	BV_SLT          Kind = "BV_SLT"
	BV_SMOD         Kind = "BV_SMOD"
	BV_SMULO        Kind = "BV_SMULO"
	BV_SREM         Kind = "BV_SREM"
	BV_SSUBO        Kind = "BV_SSUBO"
	BV_SUB          Kind = "BV_SUB"
	BV_UADDO        Kind = "BV_UADDO"
	BV_UDIV         Kind = "BV_UDIV"
	BV_UGE          Kind = "BV_UGE"
	BV_UGT          Kind = "BV_UGT"
	BV_ULE          Kind = "BV_ULE"
	BV_ULT          Kind = "BV_ULT"
	BV_UMULO        Kind = "BV_UMULO"
	BV_UREM         Kind = "BV_UREM"
	BV_USUBO        Kind = "BV_USUBO"
	BV_XNOR         Kind = "BV_XNOR"
	BV_XOR          Kind = "BV_XOR"

	// arithmetic (int/real, shared; linear mode leaves MULT/DIV out of
	// the catalog at construction time)
	ARITH_ADD    Kind = "ARITH_ADD"
	ARITH_SUB    Kind = "ARITH_SUB"
	ARITH_MULT   Kind = "ARITH_MULT"
	ARITH_DIV    Kind = "ARITH_DIV"
	ARITH_NEG    Kind = "ARITH_NEG"
	ARITH_LT     Kind = "ARITH_LT"
	ARITH_LE     Kind = "ARITH_LE"
	ARITH_GT     Kind = "ARITH_GT"
	ARITH_GE     Kind = "ARITH_GE"
	ARITH_IS_INT Kind = "ARITH_IS_INT"
	ARITH_TO_INT Kind = "ARITH_TO_INT"
	ARITH_TO_REAL Kind = "ARITH_TO_REAL"

	// floating point (first argument of most is an RM term)
	FP_ABS        Kind = "FP_ABS"
	FP_ADD        Kind = "FP_ADD"
	FP_DIV        Kind = "FP_DIV"
	FP_EQ         Kind = "FP_EQ"
	FP_FMA        Kind = "FP_FMA"
	FP_IS_INF     Kind = "FP_IS_INF"
	FP_IS_NAN     Kind = "FP_IS_NAN"
	FP_IS_NEG     Kind = "FP_IS_NEG"
	FP_IS_NORMAL  Kind = "FP_IS_NORMAL"
	FP_IS_POS     Kind = "FP_IS_POS"
	FP_IS_SUBNORMAL Kind = "FP_IS_SUBNORMAL"
	FP_IS_ZERO    Kind = "FP_IS_ZERO"
	FP_LEQ        Kind = "FP_LEQ"
	FP_LT         Kind = "FP_LT"
	FP_GEQ        Kind = "FP_GEQ"
	FP_GT         Kind = "FP_GT"
	FP_MAX        Kind = "FP_MAX"
	FP_MIN        Kind = "FP_MIN"
	FP_MUL        Kind = "FP_MUL"
	FP_NEG        Kind = "FP_NEG"
	FP_REM        Kind = "FP_REM"
	FP_RTI        Kind = "FP_RTI"
	FP_SQRT       Kind = "FP_SQRT"
	FP_SUB        Kind = "FP_SUB"
	FP_TO_FP_FROM_BV Kind = "FP_TO_FP_FROM_BV"

	// arrays
	ARRAY_SELECT Kind = "ARRAY_SELECT"
	ARRAY_STORE  Kind = "ARRAY_STORE"

	// strings / sequences / regular language
	STR_AT          Kind = "STR_AT"
	STR_CONCAT      Kind = "STR_CONCAT"
	STR_CONTAINS    Kind = "STR_CONTAINS"
	STR_INDEXOF     Kind = "STR_INDEXOF"
	STR_LEN         Kind = "STR_LEN"
	STR_PREFIXOF    Kind = "STR_PREFIXOF"
	STR_REPLACE     Kind = "STR_REPLACE"
	STR_SUFFIXOF    Kind = "STR_SUFFIXOF"
	STR_SUBSTR      Kind = "STR_SUBSTR"
	STR_IN_RE       Kind = "STR_IN_RE"
	STR_TO_RE       Kind = "STR_TO_RE"
	RE_ALL          Kind = "RE_ALL"
	RE_ALLCHAR      Kind = "RE_ALLCHAR"
	RE_CONCAT       Kind = "RE_CONCAT"
	RE_INTER        Kind = "RE_INTER"
	RE_STAR         Kind = "RE_STAR"
	RE_UNION        Kind = "RE_UNION"

	// sequences
	SEQ_CONCAT Kind = "SEQ_CONCAT"
	SEQ_LEN    Kind = "SEQ_LEN"
	SEQ_UNIT   Kind = "SEQ_UNIT"
	SEQ_AT     Kind = "SEQ_AT"

	// sets / bags
	SET_UNION     Kind = "SET_UNION"
	SET_INTERSECT Kind = "SET_INTERSECT"
	SET_MINUS     Kind = "SET_MINUS"
	SET_MEMBER    Kind = "SET_MEMBER"
	SET_SINGLETON Kind = "SET_SINGLETON"
	SET_SUBSET    Kind = "SET_SUBSET"
	BAG_UNION     Kind = "BAG_UNION"
	BAG_INTERSECT Kind = "BAG_INTERSECT"
	BAG_MEMBER    Kind = "BAG_MEMBER"

	// quantifiers
	FORALL Kind = "FORALL"
	EXISTS Kind = "EXISTS"
)

// ArgKindFunc maps an argument position (0-based) of an operator
// application to the sort kind that position must have. Most operators
// are uniform (every position shares one kind); non-uniform operators
// (e.g. FP ops whose position 0 is RM, array select/store, ite) supply
// a custom function.
type ArgKindFunc func(pos int, nargs int) smtsort.Kind

// uniform builds an ArgKindFunc that requires the same kind at every
// position.
func uniform(k smtsort.Kind) ArgKindFunc {
	return func(int, int) smtsort.Kind { return k }
}

// Special arities, mirroring original_source/src semantics: -1 means
// "at least one", -2 means "at least two". A concrete non-negative value
// (0 included, e.g. RE_ALL) is the exact arity.
const (
	ArityAtLeastOne = -1
	ArityAtLeastTwo = -2
)

// Data describes one operator kind's shape.
type Data struct {
	Kind Kind
	// Arity is >=0 for a fixed arity, or one of ArityAtLeastOne/
	// ArityAtLeastTwo for variadic operators.
	Arity int32
	// NIndices is the number of integer indices this operator takes
	// (e.g. BV_EXTRACT takes 2: high, low).
	NIndices uint32
	// ResultKind is the sort kind of a term built from this operator.
	ResultKind smtsort.Kind
	// ArgKind returns the required sort kind at a given argument
	// position.
	ArgKind ArgKindFunc
	// Theory names the owning theory, for enabled-theory filtering.
	Theory string
	// NonLinearOnly marks operators left out of the catalog when linear
	// arithmetic is selected.
	NonLinearOnly bool
}
