package mock

import (
	"github.com/pkg/errors"

	"github.com/smtmbt/smtmbt/internal/solver"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/term"
)

func (s *Solver) Assert(t *term.Term) error {
	s.assertions = append(s.assertions, t.Handle.(*node))
	return nil
}

// CheckSat decides satisfiability of the current assertion set by
// bounded random search: it repeatedly samples a random value for
// every free constant/variable the assertions reference and checks
// whether every assertion evaluates true under it. It reports
// ResultSat the first time that happens and keeps the winning
// assignment as the model; it never reports ResultUnsat, since failing
// searchTries tries proves nothing, so an exhausted search reports
// ResultUnknown instead.
func (s *Solver) CheckSat() (solver.Result, error) {
	return s.checkSat(s.assertions)
}

func (s *Solver) CheckSatAssuming(assumptions []*term.Term) (solver.Result, error) {
	nodes := make([]*node, 0, len(s.assertions)+len(assumptions))
	nodes = append(nodes, s.assertions...)
	for _, a := range assumptions {
		nodes = append(nodes, a.Handle.(*node))
	}
	return s.checkSat(nodes)
}

func (s *Solver) checkSat(assertions []*node) (solver.Result, error) {
	vars := make(map[uint64]varInfo)
	for _, a := range assertions {
		collectFreeVars(a, vars)
	}
	if len(assertions) == 0 {
		s.model = map[string]value{}
		s.modelEnv = map[uint64]value{}
		return solver.ResultSat, nil
	}
	for try := 0; try < searchTries; try++ {
		env := sample(s.rng, vars)
		ok := true
		for _, a := range assertions {
			v, err := eval(a, env)
			if err != nil {
				return solver.ResultError, err
			}
			if !v.b {
				ok = false
				break
			}
		}
		if ok {
			s.storeModel(assertions, env)
			return solver.ResultSat, nil
		}
	}
	s.model = nil
	s.modelEnv = nil
	return solver.ResultUnknown, nil
}

// storeModel keeps both the id-keyed env (for GetValue) and a
// name-keyed copy (for PrintModel) of the winning assignment.
func (s *Solver) storeModel(assertions []*node, env map[uint64]value) {
	s.modelEnv = env
	named := make(map[string]value, len(env))
	names := make(map[uint64]string)
	for _, a := range assertions {
		collectNames(a, names)
	}
	for id, v := range env {
		if name, ok := names[id]; ok {
			named[name] = v
		}
	}
	s.model = named
}

func collectNames(n *node, out map[uint64]string) {
	if n == nil {
		return
	}
	if n.leaf == leafConst || n.leaf == leafVar {
		out[n.id] = n.name
		return
	}
	for _, a := range n.args {
		collectNames(a, out)
	}
}

func (s *Solver) GetUnsatAssumptions() ([]*term.Term, error) {
	return nil, nil
}

func (s *Solver) CheckUnsatAssumption(t *term.Term) (bool, error) {
	return false, nil
}

// GetValue evaluates t under the model CheckSat last found, returning
// the result wrapped as a fresh literal term of t's sort.
func (s *Solver) GetValue(t *term.Term) (*term.Term, error) {
	if s.modelEnv == nil {
		return nil, errors.Wrap(solver.ErrBackendRejected, "mock: get-value: no model (last check-sat was not sat)")
	}
	n := t.Handle.(*node)
	v, err := eval(n, s.modelEnv)
	if err != nil {
		return nil, errors.Wrap(solver.ErrBackendRejected, err.Error())
	}
	return valueTerm(t.Sort, v), nil
}

func valueTerm(sort *smtsort.Sort, v value) *term.Term {
	lit := &node{leaf: leafValue, sortKind: v.kind, bvWidth: sort.BVSize}
	switch v.kind {
	case smtsort.BOOL:
		lit.litBool = v.b
	case smtsort.REAL:
		lit.litReal = v.r
	default:
		lit.litNum = v.n
	}
	return &term.Term{Sort: sort, Handle: lit}
}
