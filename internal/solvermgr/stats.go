package solvermgr

import (
	"fmt"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"
)

// Stats exposes the counters a running fuzz session reports (spec §5
// "statistics counters"), backed by github.com/VictoriaMetrics/metrics
// so a `fuzz --metrics-addr` invocation can serve them over /metrics
// the same way the teacher's operational tooling does.
type Stats struct {
	set       *metrics.Set
	termCount uint64
}

// NewStats builds a fresh, isolated metric set so multiple SolverMgr
// instances in the same test binary don't collide on global counters.
func NewStats() *Stats {
	s := &Stats{set: metrics.NewSet()}
	s.set.GetOrCreateGauge("smtmbt_terms_live", func() float64 {
		return float64(atomic.LoadUint64(&s.termCount))
	})
	return s
}

// Set returns the underlying metrics.Set, e.g. to register it with a
// metrics.WritePrometheus HTTP handler.
func (s *Stats) Set() *metrics.Set { return s.set }

func (s *Stats) IncActionRun(id string) {
	s.set.GetOrCreateCounter(fmt.Sprintf(`smtmbt_actions_run_total{action=%q}`, id)).Inc()
}

func (s *Stats) IncPreconditionMiss(id string) {
	s.set.GetOrCreateCounter(fmt.Sprintf(`smtmbt_precondition_miss_total{action=%q}`, id)).Inc()
}

func (s *Stats) IncBackendRejection(id string) {
	s.set.GetOrCreateCounter(fmt.Sprintf(`smtmbt_backend_rejections_total{action=%q}`, id)).Inc()
}

func (s *Stats) IncCheckSat(result string) {
	s.set.GetOrCreateCounter(fmt.Sprintf(`smtmbt_check_sat_total{result=%q}`, result)).Inc()
}

func (s *Stats) SetTermCount(n uint64) {
	atomic.StoreUint64(&s.termCount, n)
}
