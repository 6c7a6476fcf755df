// Package action implements the parameterised FSM transitions of
// spec §4.G: one Action per row of the action table, each able to
// both `run` (drive the back-end from live RNG-picked arguments) and
// `untrace` (rebuild the same effect from recorded trace tokens).
package action

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/solver"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/term"
	"github.com/smtmbt/smtmbt/internal/termdb"
)

func sortRefToken(s *smtsort.Sort) string { return fmt.Sprintf("s%d", s.Id) }
func termRefToken(t *term.Term) string    { return fmt.Sprintf("t%d", t.Id) }

func termRefTokens(ts []*term.Term) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = termRefToken(t)
	}
	return out
}

// indicesToken renders mk-term's index list as a comma-joined token, or
// "-" when the operator carries no indices.
func indicesToken(indices []uint32) string {
	if len(indices) == 0 {
		return "-"
	}
	parts := make([]string, len(indices))
	for i, v := range indices {
		parts[i] = strconv.Itoa(int(v))
	}
	return strings.Join(parts, ",")
}

// Action is one FSM transition. Run reports false (with a nil error)
// on a precondition miss, which the FSM treats as a no-op retry
// rather than a step. Untrace rebuilds the same effect from recorded
// tokens and returns the id of any newly created sort/term (0 if
// none), for divergence-checking against the trace's `return` line.
type Action interface {
	ID() string
	Run(m *solvermgr.SolverMgr) (bool, error)
	Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error)
}

func parseSortRef(m *solvermgr.SolverMgr, tok string) (*smtsort.Sort, error) {
	id, err := parseRefID(tok, "s")
	if err != nil {
		return nil, err
	}
	s, ok := m.UntracedSorts[id]
	if !ok {
		return nil, errors.Wrapf(solver.ErrDivergence, "untrace: unknown sort ref %s", tok)
	}
	return s, nil
}

func parseTermRef(m *solvermgr.SolverMgr, tok string) (*term.Term, error) {
	id, err := parseRefID(tok, "t")
	if err != nil {
		return nil, err
	}
	t, ok := m.UntracedTerms[id]
	if !ok {
		return nil, errors.Wrapf(solver.ErrDivergence, "untrace: unknown term ref %s", tok)
	}
	return t, nil
}

func parseRefID(tok, prefix string) (uint64, error) {
	if !strings.HasPrefix(tok, prefix) {
		return 0, errors.Wrapf(solver.ErrInvariant, "untrace: token %q missing %q prefix", tok, prefix)
	}
	return strconv.ParseUint(tok[len(prefix):], 10, 64)
}

// --- new ---

type NewAction struct{}

func (NewAction) ID() string { return "new" }

func (NewAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if m.Solver.IsInitialized() {
		return false, nil
	}
	if err := m.Solver.New(); err != nil {
		return false, errors.Wrap(err, "new")
	}
	m.TraceAction("new")
	return true, nil
}

func (a NewAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	_, err := a.Run(m)
	return 0, err
}

// --- delete ---

type DeleteAction struct{}

func (DeleteAction) ID() string { return "delete" }

func (DeleteAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.IsInitialized() {
		return false, nil
	}
	if err := m.Solver.Delete(); err != nil {
		return false, errors.Wrap(err, "delete")
	}
	m.TraceAction("delete")
	m.Reset()
	return true, nil
}

func (a DeleteAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	_, err := a.Run(m)
	return 0, err
}

// --- set-opt ---

type SetOptAction struct{}

func (SetOptAction) ID() string { return "set-opt" }

func (SetOptAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.IsInitialized() {
		return false, nil
	}
	opt, value, ok := m.PickOption()
	if !ok {
		return false, nil
	}
	if opt.Name == "incremental" && m.SatCalled {
		return false, nil
	}
	if err := m.Solver.SetOption(opt.Name, value); err != nil {
		return false, errors.Wrapf(solver.ErrBackendRejected, "set-opt %s=%s: %v", opt.Name, value, err)
	}
	m.TraceAction("set-opt", opt.Name, value)
	return true, nil
}

func (SetOptAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) != 2 {
		return 0, errors.Wrapf(solver.ErrInvariant, "set-opt: expected 2 tokens, got %d", len(tokens))
	}
	if err := m.Solver.SetOption(tokens[0], tokens[1]); err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "set-opt")
	}
	m.Options.MarkUsed(tokens[0], tokens[1])
	return 0, nil
}

// --- assert ---

type AssertAction struct{}

func (AssertAction) ID() string { return "assert" }

func (AssertAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	bs := m.BoolSort()
	if bs == nil {
		return false, nil
	}
	t, ok := m.DB.PickTerm(m.RNG, boolFilter(m, bs))
	if !ok {
		return false, nil
	}
	if err := m.Solver.Assert(t); err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "assert")
	}
	m.TraceAction("assert", termRefToken(t))
	return true, nil
}

func (AssertAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) != 1 {
		return 0, errors.Wrapf(solver.ErrInvariant, "assert: expected 1 token, got %d", len(tokens))
	}
	t, err := parseTermRef(m, tokens[0])
	if err != nil {
		return 0, err
	}
	if err := m.Solver.Assert(t); err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "assert")
	}
	return 0, nil
}

// --- check-sat ---

type CheckSatAction struct{}

func (CheckSatAction) ID() string { return "check-sat" }

func (CheckSatAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.IsInitialized() {
		return false, nil
	}
	if _, err := m.CheckSat(); err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "check-sat")
	}
	m.TraceAction("check-sat")
	return true, nil
}

func (a CheckSatAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	_, err := a.Run(m)
	return 0, err
}

// --- check-sat-assuming ---

type CheckSatAssumingAction struct{}

func (CheckSatAssumingAction) ID() string { return "check-sat-assuming" }

func (CheckSatAssumingAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.HasCapability(solver.CapIncremental) {
		return false, nil
	}
	bs := m.BoolSort()
	if bs == nil || !m.DB.HasTerm(boolFilter(m, bs)) {
		return false, nil
	}
	n := int(m.RNG.PickUint32Range(1, 5))
	assumptions := make([]*term.Term, 0, n)
	for i := 0; i < n; i++ {
		t, ok := m.DB.PickTerm(m.RNG, boolFilter(m, bs))
		if !ok {
			break
		}
		assumptions = append(assumptions, t)
	}
	if len(assumptions) == 0 {
		return false, nil
	}
	m.Assumptions = assumptions
	if _, err := m.CheckSatAssuming(); err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "check-sat-assuming")
	}
	m.TraceAction("check-sat-assuming", termRefTokens(assumptions)...)
	return true, nil
}

func (CheckSatAssumingAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	assumptions := make([]*term.Term, 0, len(tokens))
	for _, tok := range tokens {
		t, err := parseTermRef(m, tok)
		if err != nil {
			return 0, err
		}
		assumptions = append(assumptions, t)
	}
	m.Assumptions = assumptions
	if _, err := m.CheckSatAssuming(); err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "check-sat-assuming")
	}
	return 0, nil
}

// --- get-unsat-assumptions ---

type GetUnsatAssumptionsAction struct{}

func (GetUnsatAssumptionsAction) ID() string { return "get-unsat-assumptions" }

func (GetUnsatAssumptionsAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if m.LastResult != solver.ResultUnsat || !m.Solver.HasCapability(solver.CapUnsatAssumptions) {
		return false, nil
	}
	core, err := m.Solver.GetUnsatAssumptions()
	if err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "get-unsat-assumptions")
	}
	for _, t := range core {
		m.UntracedTerms[t.Id] = t
	}
	m.TraceAction("get-unsat-assumptions")
	return true, nil
}

func (a GetUnsatAssumptionsAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	_, err := a.Run(m)
	return 0, err
}

// --- get-value ---

type GetValueAction struct{}

func (GetValueAction) ID() string { return "get-value" }

func (GetValueAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if m.LastResult != solver.ResultSat || !m.Solver.HasCapability(solver.CapModel) {
		return false, nil
	}
	n := int(m.RNG.PickUint32Range(1, 5))
	fetched := make([]*term.Term, 0, n)
	for i := 0; i < n; i++ {
		t, ok := m.DB.PickTerm(m.RNG, termdbAnyFilter(m))
		if !ok {
			break
		}
		if _, err := m.Solver.GetValue(t); err != nil {
			return false, errors.Wrap(solver.ErrBackendRejected, "get-value")
		}
		fetched = append(fetched, t)
	}
	if len(fetched) == 0 {
		return false, nil
	}
	m.TraceAction("get-value", termRefTokens(fetched)...)
	return true, nil
}

func (a GetValueAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	for _, tok := range tokens {
		t, err := parseTermRef(m, tok)
		if err != nil {
			return 0, err
		}
		if _, err := m.Solver.GetValue(t); err != nil {
			return 0, errors.Wrap(solver.ErrBackendRejected, "get-value")
		}
	}
	return 0, nil
}

// --- push / pop ---

type PushAction struct{}

func (PushAction) ID() string { return "push" }

func (PushAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.HasCapability(solver.CapIncremental) {
		return false, nil
	}
	levels := m.RNG.PickUint32Range(1, 5)
	if err := m.Push(levels); err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "push")
	}
	m.TraceAction("push", strconv.FormatUint(uint64(levels), 10))
	return true, nil
}

func (PushAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) != 1 {
		return 0, errors.Wrapf(solver.ErrInvariant, "push: expected 1 token, got %d", len(tokens))
	}
	levels, err := strconv.ParseUint(tokens[0], 10, 32)
	if err != nil {
		return 0, err
	}
	if err := m.Push(uint32(levels)); err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "push")
	}
	return 0, nil
}

type PopAction struct{}

func (PopAction) ID() string { return "pop" }

func (PopAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.HasCapability(solver.CapIncremental) || m.DB.CurrentLevel == 0 {
		return false, nil
	}
	max := m.DB.CurrentLevel
	if max > 5 {
		max = 5
	}
	levels := m.RNG.PickUint32Range(1, max)
	if err := m.Pop(levels); err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "pop")
	}
	m.TraceAction("pop", strconv.FormatUint(uint64(levels), 10))
	return true, nil
}

func (PopAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	if len(tokens) != 1 {
		return 0, errors.Wrapf(solver.ErrInvariant, "pop: expected 1 token, got %d", len(tokens))
	}
	levels, err := strconv.ParseUint(tokens[0], 10, 32)
	if err != nil {
		return 0, err
	}
	if err := m.Pop(uint32(levels)); err != nil {
		return 0, errors.Wrap(solver.ErrBackendRejected, "pop")
	}
	return 0, nil
}

// --- reset-assertions ---

type ResetAssertionsAction struct{}

func (ResetAssertionsAction) ID() string { return "reset-assertions" }

func (ResetAssertionsAction) Run(m *solvermgr.SolverMgr) (bool, error) {
	if !m.Solver.HasCapability(solver.CapIncremental) {
		return false, nil
	}
	if err := m.ResetAssertions(); err != nil {
		return false, errors.Wrap(solver.ErrBackendRejected, "reset-assertions")
	}
	m.TraceAction("reset-assertions")
	return true, nil
}

func (a ResetAssertionsAction) Untrace(m *solvermgr.SolverMgr, tokens []string) (uint64, error) {
	_, err := a.Run(m)
	return 0, err
}

// --- helpers shared with mkterm.go ---

func boolFilter(m *solvermgr.SolverMgr, bs *smtsort.Sort) termdb.HasTermFilter {
	return termdb.HasTermFilter{Sort: bs}
}

func termdbAnyFilter(m *solvermgr.SolverMgr) termdb.HasTermFilter {
	return termdb.HasTermFilter{Kind: smtsort.ANY}
}
