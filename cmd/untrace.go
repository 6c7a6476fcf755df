package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/smtmbt/smtmbt/internal/fsm"
	"github.com/smtmbt/smtmbt/internal/opmgr"
	"github.com/smtmbt/smtmbt/internal/rng"
	"github.com/smtmbt/smtmbt/internal/solvermgr"
	"github.com/smtmbt/smtmbt/internal/termdb"
	"github.com/smtmbt/smtmbt/internal/trace"
)

var (
	untraceTheories string
	untraceBackend  string
)

var untraceCommand = &cobra.Command{
	Use:   "untrace <file>",
	Short: "replay a recorded trace file against a solver back-end",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := untraceExec(args[0]); err != nil {
			fmt.Printf("service err: %v", err)
			os.Exit(1)
		} else {
			fmt.Printf("service quit")
		}
	},
}

func init() {
	untraceCommand.Flags().StringVar(&untraceTheories, "theories", "core,bool,bv,array", "comma-separated enabled theories, matching the recording run")
	untraceCommand.Flags().StringVar(&untraceBackend, "backend", "yices2", "solver back-end: yices2 or mock")
}

func untraceExec(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	theories := strings.Split(untraceTheories, ",")

	back, err := newBackend(untraceBackend, 0)
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

	log := logrus.NewEntry(logrus.StandardLogger())

	mgr := solvermgr.New(solvermgr.Config{
		Solver:           back,
		Ops:              ops,
		DB:               termdb.New(),
		RNG:              rng.New(0),
		Options:          solvermgr.NewSolverOptions(buildOptionTable(back)),
		Stats:            solvermgr.NewStats(),
		Log:              log,
		EnabledSortKinds: enabledSortKinds(back.SupportedTheories(), theories),
		// Trace is left nil: a replay never re-records itself.
	})

	driver := fsm.Configure(mgr, log)
	if err := driver.CheckStates(); err != nil {
		return err
	}
	if err := driver.Untrace(trace.NewReader(f)); err != nil {
		return err
	}
	fmt.Printf("\nuntrace complete, last check-sat result: %s\n", mgr.LastResult)
	return nil
}
