package mock

import (
	"math/big"

	"github.com/smtmbt/smtmbt/internal/opmgr"
	smtsort "github.com/smtmbt/smtmbt/internal/smtsort"
)

// node is the mock back-end's term representation: a lazily-evaluated
// expression tree. Every Solver.Mk* method stored as a term.Term.Handle
// builds one of these instead of calling into an external engine;
// CheckSat is the only place a node is actually evaluated.
type node struct {
	kind     opmgr.Kind // "" for a leaf
	leaf     leafKind
	id       uint64 // unique id for a const/var leaf; keys the sampled model
	name     string
	sortKind smtsort.Kind
	bvWidth  uint32

	litBool bool
	litNum  *big.Int // INT and BV literal payload
	litReal *big.Rat

	args    []*node
	indices []uint32
}

type leafKind int

const (
	leafNone leafKind = iota
	leafValue
	leafConst
	leafVar
)

// varInfo is what the sampler needs to draw a random value for one
// free id: its sort kind and (for BV) width.
type varInfo struct {
	kind  smtsort.Kind
	width uint32
}

// collectFreeVars walks n, recording the sort info of every const/var
// leaf reachable from it (ARRAY_STORE bases included, since select
// walks them at eval time).
func collectFreeVars(n *node, out map[uint64]varInfo) {
	if n == nil {
		return
	}
	if n.leaf == leafConst || n.leaf == leafVar {
		out[n.id] = varInfo{kind: n.sortKind, width: n.bvWidth}
		return
	}
	for _, a := range n.args {
		collectFreeVars(a, out)
	}
}
