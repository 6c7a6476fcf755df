package mock

import "github.com/smtmbt/smtmbt/internal/solver"

// ConfigureFSM and ConfigureOpMgr are the solver-specific extension
// points of solver.Solver; the mock back-end registers nothing extra,
// matching internal/backend/yices2 (SPEC_FULL open question 1).
func (s *Solver) ConfigureFSM(configurer solver.FSMConfigurer) error { return nil }

func (s *Solver) ConfigureOpMgr(configurer solver.OpMgrConfigurer) error { return nil }
