package solvermgr

import (
	"sort"
	"strconv"

	"github.com/smtmbt/smtmbt/internal/rng"
)

// Option declares one solver option (spec §6.4): a name, a value
// domain (an enumerated set of strings, or an integer range), and its
// exclusion/dependency relationships with other options.
type Option struct {
	Name string
	// Domain is the enumerated set of legal values. Empty if IsRange.
	Domain []string
	IsRange  bool
	Min, Max int64
	Default  string
	// ConflictsWith names options that must not already be set when
	// this one is picked.
	ConflictsWith []string
	// DependsOn names options that must already be set before this one
	// may be picked.
	DependsOn []string
}

// PickValue draws one value from the option's domain.
func (o Option) PickValue(r *rng.RNGenerator) string {
	if o.IsRange {
		v := r.PickUint64Range(uint64(o.Min), uint64(o.Max))
		return strconv.FormatUint(v, 10)
	}
	if len(o.Domain) == 0 {
		return o.Default
	}
	return rng.PickFromSlice(r, o.Domain)
}

// SolverOptions tracks the declared option table and which options
// have been set so far in the current run (spec §4.F "option
// selection").
type SolverOptions struct {
	declared map[string]Option
	used     map[string]string
}

// NewSolverOptions builds a SolverOptions from a declared table.
func NewSolverOptions(opts []Option) *SolverOptions {
	so := &SolverOptions{
		declared: make(map[string]Option, len(opts)),
		used:     make(map[string]string),
	}
	for _, o := range opts {
		so.declared[o.Name] = o
	}
	return so
}

func (so *SolverOptions) sortedNames() []string {
	out := make([]string, 0, len(so.declared))
	for n := range so.declared {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Pick filters out options already set, options in conflict with an
// already-set option, and options whose dependency has not yet been
// set, then picks uniformly from what remains and draws a value from
// its domain.
func (so *SolverOptions) Pick(r *rng.RNGenerator) (Option, string, bool) {
	var candidates []Option
outer:
	for _, name := range so.sortedNames() {
		opt := so.declared[name]
		if _, already := so.used[name]; already {
			continue
		}
		for _, c := range opt.ConflictsWith {
			if _, ok := so.used[c]; ok {
				continue outer
			}
		}
		for _, d := range opt.DependsOn {
			if _, ok := so.used[d]; !ok {
				continue outer
			}
		}
		candidates = append(candidates, opt)
	}
	if len(candidates) == 0 {
		return Option{}, "", false
	}
	chosen := rng.PickFromSlice(r, candidates)
	return chosen, chosen.PickValue(r), true
}

// MarkUsed records that name has been set to value.
func (so *SolverOptions) MarkUsed(name, value string) {
	so.used[name] = value
}

// IsUsed reports whether name has already been set this run.
func (so *SolverOptions) IsUsed(name string) bool {
	_, ok := so.used[name]
	return ok
}

// Reset clears every recorded option value (invoked on the `delete`
// action, spec §4.G).
func (so *SolverOptions) Reset() {
	so.used = make(map[string]string)
}
