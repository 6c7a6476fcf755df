package opmgr

import smtsort "github.com/smtmbt/smtmbt/internal/smtsort"

// catalog is the full operator table, grounded on original_source/src's
// op.hpp enumeration and keyed/shaped the way
// internal/opcode/opcode.go's opCodeInfos literal keys Operation to
// OPCodeInfo.
var catalog = map[Kind]Data{
	DISTINCT: {Kind: DISTINCT, Arity: ArityAtLeastTwo, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.ANY), Theory: "core"},
	EQUAL:    {Kind: EQUAL, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.ANY), Theory: "core"},
	ITE: {
		Kind: ITE, Arity: 3, ResultKind: smtsort.ANY, Theory: "core",
		ArgKind: func(pos, _ int) smtsort.Kind {
			if pos == 0 {
				return smtsort.BOOL
			}
			return smtsort.ANY
		},
	},

	AND:     {Kind: AND, Arity: ArityAtLeastTwo, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BOOL), Theory: "bool"},
	OR:      {Kind: OR, Arity: ArityAtLeastTwo, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BOOL), Theory: "bool"},
	NOT:     {Kind: NOT, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BOOL), Theory: "bool"},
	XOR:     {Kind: XOR, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BOOL), Theory: "bool"},
	IMPLIES: {Kind: IMPLIES, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BOOL), Theory: "bool"},

	BV_EXTRACT:      {Kind: BV_EXTRACT, Arity: 1, NIndices: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_REPEAT:       {Kind: BV_REPEAT, Arity: 1, NIndices: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_ROTATE_LEFT:  {Kind: BV_ROTATE_LEFT, Arity: 1, NIndices: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_ROTATE_RIGHT: {Kind: BV_ROTATE_RIGHT, Arity: 1, NIndices: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SIGN_EXTEND:  {Kind: BV_SIGN_EXTEND, Arity: 1, NIndices: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_ZERO_EXTEND:  {Kind: BV_ZERO_EXTEND, Arity: 1, NIndices: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},

	BV_ADD:    {Kind: BV_ADD, Arity: ArityAtLeastTwo, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_AND:    {Kind: BV_AND, Arity: ArityAtLeastTwo, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_ASHR:   {Kind: BV_ASHR, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_COMP:   {Kind: BV_COMP, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_CONCAT: {Kind: BV_CONCAT, Arity: ArityAtLeastTwo, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_LSHR:   {Kind: BV_LSHR, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_MULT:   {Kind: BV_MULT, Arity: ArityAtLeastTwo, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_NAND:   {Kind: BV_NAND, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_NEG:    {Kind: BV_NEG, Arity: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_NOR:    {Kind: BV_NOR, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_NOT:    {Kind: BV_NOT, Arity: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_OR:     {Kind: BV_OR, Arity: ArityAtLeastTwo, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_REDAND: {Kind: BV_REDAND, Arity: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_REDOR:  {Kind: BV_REDOR, Arity: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_REDXOR: {Kind: BV_REDXOR, Arity: 1, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SADDO:  {Kind: BV_SADDO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SDIV:   {Kind: BV_SDIV, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SDIVO:  {Kind: BV_SDIVO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SGE:    {Kind: BV_SGE, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SGT:    {Kind: BV_SGT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SHL:    {Kind: BV_SHL, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SLE:    {Kind: BV_SLE, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SLT:    {Kind: BV_SLT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SMOD:   {Kind: BV_SMOD, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SMULO:  {Kind: BV_SMULO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SREM:   {Kind: BV_SREM, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SSUBO:  {Kind: BV_SSUBO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_SUB:    {Kind: BV_SUB, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_UADDO:  {Kind: BV_UADDO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_UDIV:   {Kind: BV_UDIV, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_UGE:    {Kind: BV_UGE, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_UGT:    {Kind: BV_UGT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_ULE:    {Kind: BV_ULE, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_ULT:    {Kind: BV_ULT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_UMULO:  {Kind: BV_UMULO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_UREM:   {Kind: BV_UREM, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_USUBO:  {Kind: BV_USUBO, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_XNOR:   {Kind: BV_XNOR, Arity: 2, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},
	BV_XOR:    {Kind: BV_XOR, Arity: ArityAtLeastTwo, ResultKind: smtsort.BV, ArgKind: uniform(smtsort.BV), Theory: "bv"},

	ARITH_ADD:     {Kind: ARITH_ADD, Arity: ArityAtLeastTwo, ResultKind: smtsort.ANY, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_SUB:     {Kind: ARITH_SUB, Arity: ArityAtLeastTwo, ResultKind: smtsort.ANY, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_MULT:    {Kind: ARITH_MULT, Arity: ArityAtLeastTwo, ResultKind: smtsort.ANY, ArgKind: uniform(smtsort.ANY), Theory: "arith", NonLinearOnly: true},
	ARITH_DIV:     {Kind: ARITH_DIV, Arity: 2, ResultKind: smtsort.ANY, ArgKind: uniform(smtsort.ANY), Theory: "arith", NonLinearOnly: true},
	ARITH_NEG:     {Kind: ARITH_NEG, Arity: 1, ResultKind: smtsort.ANY, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_LT:      {Kind: ARITH_LT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_LE:      {Kind: ARITH_LE, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_GT:      {Kind: ARITH_GT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_GE:      {Kind: ARITH_GE, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.ANY), Theory: "arith"},
	ARITH_IS_INT:  {Kind: ARITH_IS_INT, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.REAL), Theory: "arith"},
	ARITH_TO_INT:  {Kind: ARITH_TO_INT, Arity: 1, ResultKind: smtsort.INT, ArgKind: uniform(smtsort.REAL), Theory: "arith"},
	ARITH_TO_REAL: {Kind: ARITH_TO_REAL, Arity: 1, ResultKind: smtsort.REAL, ArgKind: uniform(smtsort.INT), Theory: "arith"},

	FP_ABS:          {Kind: FP_ABS, Arity: 1, ResultKind: smtsort.FP, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_NEG:          {Kind: FP_NEG, Arity: 1, ResultKind: smtsort.FP, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_SQRT:         {Kind: FP_SQRT, Arity: 2, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_RTI:          {Kind: FP_RTI, Arity: 2, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_ADD:          {Kind: FP_ADD, Arity: 3, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_SUB:          {Kind: FP_SUB, Arity: 3, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_MUL:          {Kind: FP_MUL, Arity: 3, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_DIV:          {Kind: FP_DIV, Arity: 3, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_FMA:          {Kind: FP_FMA, Arity: 4, ResultKind: smtsort.FP, ArgKind: fpArgKind, Theory: "fp"},
	FP_REM:          {Kind: FP_REM, Arity: 2, ResultKind: smtsort.FP, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_MIN:          {Kind: FP_MIN, Arity: 2, ResultKind: smtsort.FP, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_MAX:          {Kind: FP_MAX, Arity: 2, ResultKind: smtsort.FP, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_LEQ:          {Kind: FP_LEQ, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_LT:           {Kind: FP_LT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_GEQ:          {Kind: FP_GEQ, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_GT:           {Kind: FP_GT, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_EQ:           {Kind: FP_EQ, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_NORMAL:    {Kind: FP_IS_NORMAL, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_SUBNORMAL: {Kind: FP_IS_SUBNORMAL, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_ZERO:      {Kind: FP_IS_ZERO, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_INF:       {Kind: FP_IS_INF, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_NAN:       {Kind: FP_IS_NAN, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_NEG:       {Kind: FP_IS_NEG, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_IS_POS:       {Kind: FP_IS_POS, Arity: 1, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.FP), Theory: "fp"},
	FP_TO_FP_FROM_BV: {Kind: FP_TO_FP_FROM_BV, Arity: 1, NIndices: 2, ResultKind: smtsort.FP, ArgKind: uniform(smtsort.BV), Theory: "fp"},

	ARRAY_SELECT: {
		Kind: ARRAY_SELECT, Arity: 2, ResultKind: smtsort.ANY, Theory: "array",
		ArgKind: func(pos, _ int) smtsort.Kind {
			if pos == 0 {
				return smtsort.ARRAY
			}
			return smtsort.ANY
		},
	},
	ARRAY_STORE: {
		Kind: ARRAY_STORE, Arity: 3, ResultKind: smtsort.ARRAY, Theory: "array",
		ArgKind: func(pos, _ int) smtsort.Kind {
			if pos == 0 {
				return smtsort.ARRAY
			}
			return smtsort.ANY
		},
	},

	STR_AT:       {Kind: STR_AT, Arity: 2, ResultKind: smtsort.STRING, Theory: "string", ArgKind: strIntArgKind},
	STR_CONCAT:   {Kind: STR_CONCAT, Arity: ArityAtLeastTwo, ResultKind: smtsort.STRING, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	STR_CONTAINS: {Kind: STR_CONTAINS, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	STR_INDEXOF:  {Kind: STR_INDEXOF, Arity: 3, ResultKind: smtsort.INT, ArgKind: strIndexofArgKind, Theory: "string"},
	STR_LEN:      {Kind: STR_LEN, Arity: 1, ResultKind: smtsort.INT, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	STR_PREFIXOF: {Kind: STR_PREFIXOF, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	STR_SUFFIXOF: {Kind: STR_SUFFIXOF, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	STR_REPLACE:  {Kind: STR_REPLACE, Arity: 3, ResultKind: smtsort.STRING, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	STR_SUBSTR:   {Kind: STR_SUBSTR, Arity: 3, ResultKind: smtsort.STRING, ArgKind: strIntArgKind, Theory: "string"},
	STR_IN_RE:    {Kind: STR_IN_RE, Arity: 2, ResultKind: smtsort.BOOL, Theory: "string", ArgKind: func(pos, _ int) smtsort.Kind {
		if pos == 0 {
			return smtsort.STRING
		}
		return smtsort.REGLAN
	}},
	STR_TO_RE: {Kind: STR_TO_RE, Arity: 1, ResultKind: smtsort.REGLAN, ArgKind: uniform(smtsort.STRING), Theory: "string"},
	RE_ALL:     {Kind: RE_ALL, Arity: 0, ResultKind: smtsort.REGLAN, Theory: "string"},
	RE_ALLCHAR: {Kind: RE_ALLCHAR, Arity: 0, ResultKind: smtsort.REGLAN, Theory: "string"},
	RE_CONCAT:  {Kind: RE_CONCAT, Arity: ArityAtLeastTwo, ResultKind: smtsort.REGLAN, ArgKind: uniform(smtsort.REGLAN), Theory: "string"},
	RE_INTER:   {Kind: RE_INTER, Arity: ArityAtLeastTwo, ResultKind: smtsort.REGLAN, ArgKind: uniform(smtsort.REGLAN), Theory: "string"},
	RE_UNION:   {Kind: RE_UNION, Arity: ArityAtLeastTwo, ResultKind: smtsort.REGLAN, ArgKind: uniform(smtsort.REGLAN), Theory: "string"},
	RE_STAR:    {Kind: RE_STAR, Arity: 1, ResultKind: smtsort.REGLAN, ArgKind: uniform(smtsort.REGLAN), Theory: "string"},

	SEQ_CONCAT: {Kind: SEQ_CONCAT, Arity: ArityAtLeastTwo, ResultKind: smtsort.SEQ, ArgKind: uniform(smtsort.SEQ), Theory: "seq"},
	SEQ_LEN:    {Kind: SEQ_LEN, Arity: 1, ResultKind: smtsort.INT, ArgKind: uniform(smtsort.SEQ), Theory: "seq"},
	SEQ_UNIT:   {Kind: SEQ_UNIT, Arity: 1, ResultKind: smtsort.SEQ, ArgKind: uniform(smtsort.ANY), Theory: "seq"},
	SEQ_AT:     {Kind: SEQ_AT, Arity: 2, ResultKind: smtsort.SEQ, ArgKind: strIntArgKind, Theory: "seq"},

	SET_UNION:     {Kind: SET_UNION, Arity: 2, ResultKind: smtsort.SET, ArgKind: uniform(smtsort.SET), Theory: "set"},
	SET_INTERSECT: {Kind: SET_INTERSECT, Arity: 2, ResultKind: smtsort.SET, ArgKind: uniform(smtsort.SET), Theory: "set"},
	SET_MINUS:     {Kind: SET_MINUS, Arity: 2, ResultKind: smtsort.SET, ArgKind: uniform(smtsort.SET), Theory: "set"},
	SET_SUBSET:    {Kind: SET_SUBSET, Arity: 2, ResultKind: smtsort.BOOL, ArgKind: uniform(smtsort.SET), Theory: "set"},
	SET_MEMBER: {Kind: SET_MEMBER, Arity: 2, ResultKind: smtsort.BOOL, Theory: "set", ArgKind: func(pos, _ int) smtsort.Kind {
		if pos == 1 {
			return smtsort.SET
		}
		return smtsort.ANY
	}},
	SET_SINGLETON: {Kind: SET_SINGLETON, Arity: 1, ResultKind: smtsort.SET, ArgKind: uniform(smtsort.ANY), Theory: "set"},

	BAG_UNION:     {Kind: BAG_UNION, Arity: 2, ResultKind: smtsort.BAG, ArgKind: uniform(smtsort.BAG), Theory: "bag"},
	BAG_INTERSECT: {Kind: BAG_INTERSECT, Arity: 2, ResultKind: smtsort.BAG, ArgKind: uniform(smtsort.BAG), Theory: "bag"},
	BAG_MEMBER: {Kind: BAG_MEMBER, Arity: 2, ResultKind: smtsort.BOOL, Theory: "bag", ArgKind: func(pos, _ int) smtsort.Kind {
		if pos == 1 {
			return smtsort.BAG
		}
		return smtsort.ANY
	}},

	FORALL: {Kind: FORALL, Arity: ArityAtLeastTwo, ResultKind: smtsort.BOOL, Theory: "quant", ArgKind: func(pos, nargs int) smtsort.Kind {
		if pos == nargs-1 {
			return smtsort.BOOL
		}
		return smtsort.ANY
	}},
	EXISTS: {Kind: EXISTS, Arity: ArityAtLeastTwo, ResultKind: smtsort.BOOL, Theory: "quant", ArgKind: func(pos, nargs int) smtsort.Kind {
		if pos == nargs-1 {
			return smtsort.BOOL
		}
		return smtsort.ANY
	}},
}

func fpArgKind(pos, _ int) smtsort.Kind {
	if pos == 0 {
		return smtsort.RM
	}
	return smtsort.FP
}

func strIntArgKind(pos, _ int) smtsort.Kind {
	if pos == 0 {
		return smtsort.STRING
	}
	return smtsort.INT
}

func strIndexofArgKind(pos, _ int) smtsort.Kind {
	switch pos {
	case 0:
		return smtsort.STRING
	case 1:
		return smtsort.STRING
	default:
		return smtsort.INT
	}
}
