package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smtmbt/smtmbt/internal/backend/mock"
	"github.com/smtmbt/smtmbt/internal/backend/yices2"
	"github.com/smtmbt/smtmbt/internal/fsm"
	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	"github.com/smtmbt/smtmbt/internal/smtsort"
	"github.com/smtmbt/smtmbt/internal/solver"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/termdb"
	"github.com/smtmbt/smtmbt/internal/trace"
)

var (
	fuzzSeed          uint32
	fuzzSteps         int
	fuzzTheories      string
	fuzzBackend       string
	fuzzTraceFile     string
	fuzzMetricsAddr   string
	fuzzSimpleSymbols bool
	fuzzArithSubtype  bool
)

var fuzzCommand = &cobra.Command{
	Use:   "fuzz",
	Short: "drive a random FSM walk against a solver back-end",
	Long:  ``,
	Run: func(*cobra.Command, []string) {
		if err := fuzzExec(); err != nil {
			fmt.Printf("service err: %v", err)
		} else {
			fmt.Printf("service quit")
		}
	},
}

func init() {
	fuzzCommand.Flags().Uint32Var(&fuzzSeed, "seed", 1, "RNG seed")
	fuzzCommand.Flags().IntVar(&fuzzSteps, "steps", 1000, "maximum FSM steps before stopping")
	fuzzCommand.Flags().StringVar(&fuzzTheories, "theories", "core,bool,bv,array", "comma-separated enabled theories")
	fuzzCommand.Flags().StringVar(&fuzzBackend, "backend", "yices2", "solver back-end: yices2 or mock")
	fuzzCommand.Flags().StringVar(&fuzzTraceFile, "trace-file", "", "record the run's trace to this file (empty disables recording)")
	fuzzCommand.Flags().StringVar(&fuzzMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (empty disables)")
	fuzzCommand.Flags().BoolVar(&fuzzSimpleSymbols, "simple-symbols", false, "name every symbol _x<n> instead of a randomized identifier")
	fuzzCommand.Flags().BoolVar(&fuzzArithSubtype, "arith-subtyping", true, "allow a REAL term where an INT is required")
}

func newBackend(name string, seed uint32) (solver.Solver, error) {
	switch name {
	case "yices2":
		return yices2.New(), nil
	case "mock":
		return mock.New(seed), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want yices2 or mock)", name)
	}
}

// buildOptionTable declares the handful of boolean solver options every
// back-end understands, gated on the capabilities it actually reports.
func buildOptionTable(s solver.Solver) []solvermgr.Option {
	var opts []solvermgr.Option
	for _, cap := range []solver.OptionCapability{solver.CapIncremental, solver.CapModel} {
		name, ok := s.OptionNameFor(cap)
		if !ok || !s.HasCapability(cap) {
			continue
		}
		opts = append(opts, solvermgr.Option{
			Name:    name,
			Domain:  []string{"true", "false"},
			Default: "true",
		})
	}
	return opts
}

func fuzzExec() error {
	theories := strings.Split(fuzzTheories, ",")

	back, err := newBackend(fuzzBackend, fuzzSeed)
	if err != nil {
		return err
	}

	ops, err := opmgr.New(opmgr.Config{
		Theories:           theories,
		UnsupportedOpKinds: stringsToOpKinds(back.UnsupportedOpKinds()),
	})
	if err != nil {
		return err
	}

	stats := solvermgr.NewStats()
	if fuzzMetricsAddr != "" {
		serveMetrics(fuzzMetricsAddr, stats)
	}

	var tw *trace.Writer
	if fuzzTraceFile != "" {
		f, err := os.Create(fuzzTraceFile)
		if err != nil {
			return err
		}
		defer f.Close()
		tw = trace.NewWriter(f)
		if err := tw.WriteSeed(fuzzSeed); err != nil {
			return err
		}
	}

	log := logrus.NewEntry(logrus.StandardLogger())

	mgr := solvermgr.New(solvermgr.Config{
		Solver:           back,
		Ops:              ops,
		DB:               termdb.New(),
		RNG:              rng.New(fuzzSeed),
		Options:          solvermgr.NewSolverOptions(buildOptionTable(back)),
		Stats:            stats,
		Log:              log,
		ArithSubtyping:   fuzzArithSubtype,
		SimpleSymbols:    fuzzSimpleSymbols,
		EnabledSortKinds: enabledSortKinds(back.SupportedTheories(), theories),
		Trace:            tw,
	})

	f := fsm.Configure(mgr, log)
	if err := f.CheckStates(); err != nil {
		return err
	}
	steps, err := f.Run(fuzzSteps)
	if err != nil {
		return err
	}
	fmt.Printf("\nran %d step(s), last check-sat result: %s\n", steps, mgr.LastResult)
	return nil
}

func serveMetrics(addr string, stats *solvermgr.Stats) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		stats.Set().WritePrometheus(w)
	})
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logrus.WithError(err).Error("metrics server stopped")
		}
	}()
}

func stringsToOpKinds(ids []string) []opmgr.Kind {
	out := make([]opmgr.Kind, len(ids))
	for i, id := range ids {
		out[i] = opmgr.Kind(id)
	}
	return out
}

// theorySortKinds maps each theory name of opmgr's catalog (--theories)
// to the sort kinds that theory introduces. "core" and "quant" carry no
// sort kind of their own (they operate over sorts other theories own).
var theorySortKinds = map[string][]smtsort.Kind{
	"bool":   {smtsort.BOOL},
	"bv":     {smtsort.BV},
	"arith":  {smtsort.INT, smtsort.REAL},
	"fp":     {smtsort.FP, smtsort.RM},
	"array":  {smtsort.ARRAY},
	"string": {smtsort.STRING, smtsort.REGLAN},
	"seq":    {smtsort.SEQ},
	"set":    {smtsort.SET},
	"bag":    {smtsort.BAG},
}

// enabledSortKinds intersects the sort kinds the back-end reports
// supporting with those implied by the run's enabled theories, so
// `mk-sort` never attempts a kind the active back-end cannot build.
func enabledSortKinds(backendSupported []smtsort.Kind, theories []string) []smtsort.Kind {
	supported := make(map[smtsort.Kind]bool, len(backendSupported))
	for _, k := range backendSupported {
		supported[k] = true
	}
	seen := make(map[smtsort.Kind]bool)
	var out []smtsort.Kind
	for _, theory := range theories {
		for _, k := range theorySortKinds[strings.TrimSpace(theory)] {
			if !supported[k] || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
