// Package mock implements a no-cgo solver.Solver usable wherever a real
// SMT engine isn't available or desired (CI, unit tests, `--backend
// mock`): it interprets every asserted formula directly in Go and
// decides check-sat by bounded random search over its free constants,
// the same "guess concrete values, check, repeat" idea
// original_source/src/util.hpp's RNGenerator/SeedGenerator pair exists
// to drive, just applied to model search instead of API-argument
// selection.
//
// Coverage overlaps internal/backend/yices2 on BOOL, BV, ARRAY and FUN
// and adds INT and REAL sorts, constants and literals. Arithmetic
// operators and quantifiers are not evaluated: when check-sat reaches
// one while evaluating an assertion it returns an error. STRING/REGLAN/SEQ/SET/BAG/
// FP/RM sorts are rejected.
package mock

import (
	"github.com/pkg/errors"

	"github.com/smtmbt/smtmbt/internal/rng"
	"github.com/smtmbt/smtmbt/internal/solver"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

// searchTries bounds how many random assignments CheckSat samples
// before giving up and reporting ResultUnknown rather than guessing
// UNSAT, which this back-end can never actually prove.
const searchTries = 500

// Solver is the in-memory back-end.
type Solver struct {
	initialized bool
	rng         *rng.RNGenerator

	assertions []*node          // flat list; scopeMarks delimits push levels
	scopeMarks []int            // len(assertions) at each push
	model      map[string]value // name-keyed view of the last SAT model, for PrintModel
	modelEnv   map[uint64]value // id-keyed view of the same model, for GetValue

	nextConst uint64
}

// New returns an uninitialized mock Solver seeded deterministically so
// repeated runs against the same trace search the same assignments in
// the same order.
func New(seed uint32) *Solver {
	return &Solver{rng: rng.New(seed)}
}

func (s *Solver) New() error {
	s.initialized = true
	s.assertions = nil
	s.scopeMarks = nil
	s.model = nil
	s.modelEnv = nil
	return nil
}

func (s *Solver) Delete() error {
	s.initialized = false
	return nil
}

func (s *Solver) IsInitialized() bool { return s.initialized }

func (s *Solver) Reset() error { return s.New() }

func (s *Solver) ResetAssertions() error {
	s.assertions = nil
	s.scopeMarks = nil
	s.model = nil
	s.modelEnv = nil
	return nil
}

func (s *Solver) SupportedTheories() []smtsort.Kind {
	return []smtsort.Kind{smtsort.BOOL, smtsort.BV, smtsort.INT, smtsort.REAL, smtsort.ARRAY, smtsort.FUN}
}

func (s *Solver) UnsupportedOpKinds() []string { return nil }

func (s *Solver) UnsupportedVarSortKinds() []smtsort.Kind { return nil }

func (s *Solver) OptionNameFor(cap solver.OptionCapability) (string, bool) {
	switch cap {
	case solver.CapIncremental:
		return "incremental", true
	case solver.CapModel:
		return "produce-models", true
	default:
		return "", false
	}
}

func (s *Solver) HasCapability(cap solver.OptionCapability) bool {
	switch cap {
	case solver.CapIncremental, solver.CapModel:
		return true
	default:
		return false
	}
}

func (s *Solver) SetOption(name, value string) error { return nil }

func (s *Solver) Push(levels uint32) error {
	for i := uint32(0); i < levels; i++ {
		s.scopeMarks = append(s.scopeMarks, len(s.assertions))
	}
	return nil
}

func (s *Solver) Pop(levels uint32) error {
	for i := uint32(0); i < levels && len(s.scopeMarks) > 0; i++ {
		mark := s.scopeMarks[len(s.scopeMarks)-1]
		s.scopeMarks = s.scopeMarks[:len(s.scopeMarks)-1]
		s.assertions = s.assertions[:mark]
	}
	return nil
}

func (s *Solver) PrintModel() (string, error) {
	if s.model == nil {
		return "", errors.Wrap(solver.ErrBackendRejected, "mock: print-model: no model (last check-sat was not sat)")
	}
	out := ""
	for name, v := range s.model {
		out += name + " = " + v.String() + "\n"
	}
	return out, nil
}

func (s *Solver) GetSort(t *term.Term, expected smtsort.Kind) (*smtsort.Sort, error) {
	return t.Sort, nil
}

