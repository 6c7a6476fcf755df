package action

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/solver"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/term"
	"github.com/smtmbt/smtmbt/internal/termdb"
	"github.com/smtmbt/smtmbt/internal/trace"
)

// buildSort constructs a fresh back-end sort of kind, picking any
// nested parameter sort (element, domain, codomain) from an already
// registered sort where one exists, falling back to BOOL when this is
// the first sort of a parametric kind ever built.
func buildSort(m *solvermgr.SolverMgr, kind smtsort.Kind) (*smtsort.Sort, error) {
	switch kind {
	case smtsort.BOOL:
		return m.Solver.MkBoolSort()
	case smtsort.INT:
		return m.Solver.MkIntSort()
	case smtsort.REAL:
		return m.Solver.MkRealSort()
	case smtsort.STRING:
		return m.Solver.MkStringSort()
	case smtsort.REGLAN:
		return m.Solver.MkRegLanSort()
	case smtsort.RM:
		return m.Solver.MkRMSort()
	case smtsort.BV:
		return m.Solver.MkBVSort(m.RNG.PickUint32Range(1, 128))
	case smtsort.FP:
		return m.Solver.MkFPSort(m.RNG.PickUint32Range(2, 16), m.RNG.PickUint32Range(2, 16))
	case smtsort.ARRAY:
		return m.Solver.MkArraySort(elementSort(m), elementSort(m))
	case smtsort.SEQ:
		return m.Solver.MkSeqSort(elementSort(m))
	case smtsort.SET:
		return m.Solver.MkSetSort(elementSort(m))
	case smtsort.BAG:
		return m.Solver.MkBagSort(elementSort(m))
	case smtsort.FUN:
		return m.Solver.MkFunSort([]*smtsort.Sort{elementSort(m)}, elementSort(m))
	default:
		return nil, errors.Wrapf(solver.ErrInvariant, "mk-sort: unsupported sort kind %s", kind)
	}
}

// sortTraceTokens renders s's mk-sort trace tokens (kind name plus any
// width/parameter-sort tokens), mirroring MkSortAction.Untrace's parser.
func sortTraceTokens(s *smtsort.Sort) []string {
	kind := s.Kind.String()
	switch s.Kind {
	case smtsort.BV:
		return []string{kind, strconv.FormatUint(uint64(s.BVSize), 10)}
	case smtsort.FP:
		return []string{kind, strconv.FormatUint(uint64(s.FPExpSize), 10), strconv.FormatUint(uint64(s.FPSigSize), 10)}
	case smtsort.ARRAY:
		return []string{kind, sortRefToken(s.Params[0]), sortRefToken(s.Params[1])}
	case smtsort.SEQ, smtsort.SET, smtsort.BAG:
		return []string{kind, sortRefToken(s.Params[0])}
	case smtsort.FUN:
		return []string{kind, sortRefToken(s.Params[0]), sortRefToken(s.Params[len(s.Params)-1])}
	default:
		return []string{kind}
	}
}

func elementSort(m *solvermgr.SolverMgr) *smtsort.Sort {
	if s, ok := m.DB.PickSort(m.RNG, smtsort.ANY, false); ok {
		return s
	}
	s, err := m.Solver.MkBoolSort()
	if err != nil {
		return &smtsort.Sort{Kind: smtsort.BOOL}
	}
	return m.DB.FindSort(s)
}

func resolveResultSort(m *solvermgr.SolverMgr, data opmgr.Data, args []*term.Term) (*smtsort.Sort, error) {
	if data.ResultKind == smtsort.ANY {
		switch data.Kind {
		case opmgr.ARRAY_SELECT:
			if len(args) > 0 {
				if _, elem := args[0].Sort.IndexAndElementSort(); elem != nil {
					return elem, nil
				}
			}
		case opmgr.ITE:
			if len(args) > 1 {
				return args[1].Sort, nil
			}
		}
		if len(args) > 0 {
			return args[0].Sort, nil
		}
		return nil, errors.Wrapf(solver.ErrInvariant, "mk-term %s: cannot resolve result sort with no arguments", data.Kind)
	}
	if s, ok := m.DB.PickSort(m.RNG, data.ResultKind, false); ok {
		return s, nil
	}
	built, err := buildSort(m, data.ResultKind)
	if err != nil {
		return nil, err
	}
	return m.AddSort(built, data.ResultKind)
}

// --- mk-sort ---

type MkSortAction struct{}

func (MkSortAction) ID() string { return "mk-sort" }

func (MkSortAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if len(m.EnabledSortKinds) == 0 {
		return false, nil
	}
	kind := rng.PickFromSlice(m.RNG, m.EnabledSortKinds)
	s, err := buildSort(m, kind)
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "mk-sort")
	}
	canon, err := m.AddSort(s, smtsort.ANY)
	if err != nil {
		return false, err
	}
	m.UntracedSorts[canon.Id] = canon
	m.TraceAction("mk-sort", sortTraceTokens(canon)...)
	m.TraceReturnSort(canon.Id)
	return true, nil
}

func (MkSortAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) == 0 {
		return 0, errors.Wrap(solver.ErrInvariant, "mk-sort: missing kind token")
	}
	kind := smtsort.KindFromString(tokens[0])
	var s *smtsort.Sort
	var err error
	switch kind {
	case smtsort.BV:
		width, perr := strconv.ParseUint(tokens[1], 10, 32)
		if perr != nil {
			return 0, perr
		}
		s, err = m.Solver.MkBVSort(uint32(width))
	case smtsort.FP:
		exp, _ := strconv.ParseUint(tokens[1], 10, 32)
		sig, _ := strconv.ParseUint(tokens[2], 10, 32)
		s, err = m.Solver.MkFPSort(uint32(exp), uint32(sig))
	case smtsort.ARRAY:
		idx, e1 := parseSortRef(m, tokens[1])
		elem, e2 := parseSortRef(m, tokens[2])
		if e1 != nil {
			return 0, e1
		}
		if e2 != nil {
			return 0, e2
		}
		s, err = m.Solver.MkArraySort(idx, elem)
	case smtsort.SEQ, smtsort.SET, smtsort.BAG:
		elem, perr := parseSortRef(m, tokens[1])
		if perr != nil {
			return 0, perr
		}
		switch kind {
		case smtsort.SEQ:
			s, err = m.Solver.MkSeqSort(elem)
		case smtsort.SET:
			s, err = m.Solver.MkSetSort(elem)
		default:
			s, err = m.Solver.MkBagSort(elem)
		}
	case smtsort.FUN:
		dom, e1 := parseSortRef(m, tokens[1])
		cod, e2 := parseSortRef(m, tokens[2])
		if e1 != nil {
			return 0, e1
		}
		if e2 != nil {
			return 0, e2
		}
		s, err = m.Solver.MkFunSort([]*smtsort.Sort{dom}, cod)
	default:
		s, err = buildSort(m, kind)
	}
	if err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "mk-sort")
	}
	canon, err := m.AddSort(s, smtsort.ANY)
	if err != nil {
		return 0, err
	}
	m.UntracedSorts[canon.Id] = canon
	return canon.Id, nil
}

// --- mk-const ---

type MkConstAction struct{}

func (MkConstAction) ID() string { return "mk-const" }

func (MkConstAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	sort, ok := m.DB.PickSort(m.RNG, smtsort.ANY, false)
	if !ok {
		return false, nil
	}
	name := m.PickSymbol()
	t, err := m.Solver.MkConst(sort, name)
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "mk-const")
	}
	added := m.DB.AddInput(t)
	m.UntracedTerms[added.Id] = added
	m.TraceAction("mk-const", sortRefToken(sort), trace.Quote(name))
	m.TraceReturnTerm(added.Id)
	return true, nil
}

func (MkConstAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) != 2 {
		return 0, errors.Wrapf(solver.ErrInvariant, "mk-const: expected 2 tokens, got %d", len(tokens))
	}
	sort, err := parseSortRef(m, tokens[0])
	if err != nil {
		return 0, err
	}
	name := tokens[1]
	if uq, ok := trace.Unquote(name); ok {
		name = uq
	}
	t, err := m.Solver.MkConst(sort, name)
	if err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "mk-const")
	}
	added := m.DB.AddInput(t)
	m.UntracedTerms[added.Id] = added
	return added.Id, nil
}

// --- mk-var ---

type MkVarAction struct{}

func varAllowed(m *solvermgr.SolverMgr, s *smtsort.Sort) bool {
	for _, k := range m.Solver.UnsupportedVarSortKinds() {
		if s.Kind == k {
			return false
		}
	}
	return true
}

func (MkVarAction) ID() string { return "mk-var" }

func (MkVarAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	var chosen *smtsort.Sort
	for _, k := range smtsort.AllKinds {
		if s, ok := m.DB.PickSort(m.RNG, k, false); ok && varAllowed(m, s) {
			chosen = s
			break
		}
	}
	if chosen == nil {
		return false, nil
	}
	name := m.PickSymbol()
	t, err := m.Solver.MkVar(chosen, name)
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "mk-var")
	}
	added := m.DB.AddVar(t, m.DB.CurrentLevel)
	m.UntracedTerms[added.Id] = added
	m.TraceAction("mk-var", sortRefToken(chosen), trace.Quote(name))
	m.TraceReturnTerm(added.Id)
	return true, nil
}

func (MkVarAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) != 2 {
		return 0, errors.Wrapf(solver.ErrInvariant, "mk-var: expected 2 tokens, got %d", len(tokens))
	}
	sort, err := parseSortRef(m, tokens[0])
	if err != nil {
		return 0, err
	}
	name := tokens[1]
	if uq, ok := trace.Unquote(name); ok {
		name = uq
	}
	t, err := m.Solver.MkVar(sort, name)
	if err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "mk-var")
	}
	added := m.DB.AddVar(t, m.DB.CurrentLevel)
	m.UntracedTerms[added.Id] = added
	return added.Id, nil
}

// --- mk-value ---

type MkValueAction struct{}

var valueAdmittingKinds = []smtsort.Kind{
	smtsort.BOOL, smtsort.BV, smtsort.INT, smtsort.REAL,
	smtsort.STRING, smtsort.FP, smtsort.RM, smtsort.REGLAN,
}

func specialValueTagsFor(kind smtsort.Kind) []term.SpecialValue {
	switch kind {
	case smtsort.BV:
		return []term.SpecialValue{term.BVZero, term.BVOne, term.BVOnes, term.BVMinSigned, term.BVMaxSigned}
	case smtsort.FP:
		return []term.SpecialValue{term.FPNan, term.FPPosInf, term.FPNegInf, term.FPPosZero, term.FPNegZero}
	case smtsort.RM:
		return []term.SpecialValue{term.RMRne, term.RMRna, term.RMRtn, term.RMRtp, term.RMRtz}
	case smtsort.REGLAN:
		return []term.SpecialValue{term.ReAll, term.ReAllchar, term.ReNone}
	default:
		return nil
	}
}

func (MkValueAction) ID() string { return "mk-value" }

func pickValueSort(m *solvermgr.SolverMgr) (*smtsort.Sort, bool) {
	var candidates []*smtsort.Sort
	for _, k := range valueAdmittingKinds {
		if s, ok := m.DB.PickSort(m.RNG, k, false); ok {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	return rng.PickFromSlice(m.RNG, candidates), true
}

// valueBaseToken names the trace token for a literal's base; "bool" and
// "str" are pseudo-bases MkValueAction's tracing uses for sorts that
// don't carry one of the three numeric bases.
func valueBaseToken(sort *smtsort.Sort, base term.ValueBase) string {
	switch sort.Kind {
	case smtsort.BOOL:
		return "bool"
	case smtsort.STRING:
		return "str"
	}
	switch base {
	case term.BIN:
		return "bin"
	case term.HEX:
		return "hex"
	default:
		return "dec"
	}
}

func buildLiteral(m *solvermgr.SolverMgr, sort *smtsort.Sort) (*term.Term, term.ValueBase, string, error) {
	switch sort.Kind {
	case smtsort.BOOL:
		v := m.RNG.FlipCoin()
		t, err := m.Solver.MkBoolValue(v)
		return t, term.DEC, strconv.FormatBool(v), err
	case smtsort.BV:
		length := m.RNG.PickUint32Range(1, sort.BVSize)
		switch m.RNG.PickUint32Range(0, 2) {
		case 0:
			s := m.RNG.PickBinStr(length)
			t, err := m.Solver.MkValueFromString(sort, s, term.BIN)
			return t, term.BIN, s, err
		case 1:
			s := m.RNG.PickHexStr(length)
			t, err := m.Solver.MkValueFromString(sort, s, term.HEX)
			return t, term.HEX, s, err
		default:
			s := m.RNG.PickDecStr(length)
			t, err := m.Solver.MkValueFromString(sort, s, term.DEC)
			return t, term.DEC, s, err
		}
	case smtsort.INT, smtsort.REAL:
		s := m.RNG.PickDecStr(m.RNG.PickUint32Range(1, 50))
		t, err := m.Solver.MkValueFromString(sort, s, term.DEC)
		return t, term.DEC, s, err
	case smtsort.STRING:
		s := m.RNG.PickString(m.RNG.PickUint32Range(0, 100))
		t, err := m.Solver.MkValueFromString(sort, s, term.DEC)
		return t, term.DEC, s, err
	default:
		return nil, term.DEC, "", errors.Wrapf(solver.ErrInvariant, "mk-value: no literal form for sort kind %s", sort.Kind)
	}
}

func (MkValueAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	sort, ok := pickValueSort(m)
	if !ok {
		return false, nil
	}
	tags := specialValueTagsFor(sort.Kind)
	var t *term.Term
	var err error
	var tokens []string
	if len(tags) > 0 && m.RNG.FlipCoin() {
		tag := rng.PickFromSlice(m.RNG, tags)
		t, err = m.Solver.MkSpecialValue(sort, tag)
		tokens = []string{sortRefToken(sort), "special", string(tag)}
	} else {
		var base term.ValueBase
		var raw string
		t, base, raw, err = buildLiteral(m, sort)
		if sort.Kind == smtsort.STRING {
			raw = trace.Quote(raw)
		}
		tokens = []string{sortRefToken(sort), valueBaseToken(sort, base), raw}
	}
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "mk-value")
	}
	if t.Sort == nil {
		t.Sort = sort
	}
	added := m.DB.AddValue(t)
	m.UntracedTerms[added.Id] = added
	m.TraceAction("mk-value", tokens...)
	m.TraceReturnTerm(added.Id)
	return true, nil
}

func (MkValueAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) < 2 {
		return 0, errors.Wrapf(solver.ErrInvariant, "mk-value: expected at least 2 tokens, got %d", len(tokens))
	}
	sort, err := parseSortRef(m, tokens[0])
	if err != nil {
		return 0, err
	}
	var t *term.Term
	switch tokens[1] {
	case "special":
		t, err = m.Solver.MkSpecialValue(sort, term.SpecialValue(tokens[2]))
	case "bool":
		t, err = m.Solver.MkBoolValue(tokens[2] == "true")
	default:
		base := term.DEC
		switch tokens[1] {
		case "bin":
			base = term.BIN
		case "hex":
			base = term.HEX
		}
		raw := tokens[2]
		if uq, ok := trace.Unquote(raw); ok {
			raw = uq
		}
		t, err = m.Solver.MkValueFromString(sort, raw, base)
	}
	if err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "mk-value")
	}
	if t.Sort == nil {
		t.Sort = sort
	}
	added := m.DB.AddValue(t)
	m.UntracedTerms[added.Id] = added
	return added.Id, nil
}

// --- mk-term ---

type MkTermAction struct{}

func (MkTermAction) ID() string { return "mk-term" }

func pickArity(m *solvermgr.SolverMgr, data opmgr.Data) int {
	switch data.Arity {
	case opmgr.ArityAtLeastOne:
		return int(m.RNG.PickUint32Range(1, 11))
	case opmgr.ArityAtLeastTwo:
		return int(m.RNG.PickUint32Range(2, 11))
	default:
		return int(data.Arity)
	}
}

func (MkTermAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	data, ok := m.PickOpKind(true)
	if !ok {
		return false, nil
	}
	if data.Kind == opmgr.FORALL || data.Kind == opmgr.EXISTS {
		return runQuantifier(m, data)
	}

	n := pickArity(m, data)
	args := make([]*term.Term, 0, n)
	for pos := 0; pos < n; pos++ {
		kind := smtsort.ANY
		if data.ArgKind != nil {
			kind = data.ArgKind(pos, n)
		}
		t, ok := m.DB.PickTerm(m.RNG, termdb.HasTermFilter{Kind: kind})
		if !ok {
			return false, nil
		}
		args = append(args, t)
	}
	indices := make([]uint32, data.NIndices)
	for i := range indices {
		indices[i] = m.RNG.PickUint32Range(0, 7)
	}
	resultSort, err := resolveResultSort(m, data, args)
	if err != nil {
		return false, err
	}
	t, err := m.Solver.MkTerm(string(data.Kind), resultSort, args, indices)
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "mk-term")
	}
	added := m.AddTerm(t, args...)
	m.UntracedTerms[added.Id] = added
	tokens := append([]string{string(data.Kind), indicesToken(indices)}, termRefTokens(args)...)
	m.TraceAction("mk-term", tokens...)
	m.TraceReturnTerm(added.Id)
	return true, nil
}

func runQuantifier(m *solvermgr.SolverMgr, data opmgr.Data) (bool, error) {
	bs := m.BoolSort()
	if bs == nil {
		return false, nil
	}
	v, ok := m.DB.PickVar(m.RNG, nil)
	if !ok {
		return false, nil
	}
	body, ok := m.DB.PickQuantBody(m.RNG, bs)
	if !ok {
		return false, nil
	}
	t, err := m.Solver.MkTerm(string(data.Kind), bs, []*term.Term{v, body}, nil)
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "mk-term quantifier")
	}
	added := m.AddTerm(t, v, body)
	m.UntracedTerms[added.Id] = added
	m.TraceAction("mk-term", string(data.Kind), "-", termRefToken(v), termRefToken(body))
	m.TraceReturnTerm(added.Id)
	for _, bound := range term.CollectVars(body) {
		m.DB.RemoveVar(bound)
	}
	m.DB.RemoveVar(v)
	return true, nil
}

func (MkTermAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) < 2 {
		return 0, errors.Wrapf(solver.ErrInvariant, "mk-term: expected at least 2 tokens, got %d", len(tokens))
	}
	kindName := opmgr.Kind(tokens[0])
	data, ok := m.Ops.Op(kindName)
	if !ok {
		return 0, errors.Wrapf(solver.ErrInvariant, "mk-term: unknown op kind %s", kindName)
	}
	var indices []uint32
	if tokens[1] != "-" {
		for _, s := range strings.Split(tokens[1], ",") {
			v, err := strconv.ParseUint(s, 10, 32)
			if err != nil {
				return 0, err
			}
			indices = append(indices, uint32(v))
		}
	}
	args := make([]*term.Term, 0, len(tokens)-2)
	for _, tok := range tokens[2:] {
		t, err := parseTermRef(m, tok)
		if err != nil {
			return 0, err
		}
		args = append(args, t)
	}
	resultSort, err := resolveResultSort(m, data, args)
	if err != nil {
		return 0, err
	}
	t, err := m.Solver.MkTerm(tokens[0], resultSort, args, indices)
	if err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "mk-term")
	}
	added := m.AddTerm(t, args...)
	m.UntracedTerms[added.Id] = added
	if data.Kind == opmgr.FORALL || data.Kind == opmgr.EXISTS {
		if len(args) > 1 {
			for _, bound := range term.CollectVars(args[1]) {
				m.DB.RemoveVar(bound)
			}
		}
		if len(args) > 0 {
			m.DB.RemoveVar(args[0])
		}
	}
	return added.Id, nil
}
