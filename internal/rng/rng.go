// Package rng provides the single deterministic source of randomness used
// throughout the fuzzer core. Every weighted or uniform choice the FSM,
// SolverMgr, TermDB, or an Action makes routes through an RNGenerator so
// that a run is bit-identical given the same seed and action sequence.
package rng

import (
	"bytes"
	"cmp"
	"math/big"
	"os"
	"slices"
	"strconv"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ProbMax is the denominator used by PickWithProb: a probability is
// expressed as an integer numerator in [0, ProbMax], where ProbMax means
// "always".
const ProbMax = 100

const simpleSymbolCharSet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_+-*&|!~<>=/%?.$_"

// SeedGenerator produces fresh 32-bit seeds by mixing the process id, wall
// clock, and the previously generated seed, so that successive runs without
// an explicit --seed still differ from each other.
type SeedGenerator struct {
	seed uint32
}

// NewSeedGenerator creates a SeedGenerator primed with an arbitrary initial
// value.
func NewSeedGenerator(initial uint32) *SeedGenerator {
	return &SeedGenerator{seed: initial}
}

// Next returns the next seed in the sequence and advances the generator.
func (g *SeedGenerator) Next() uint32 {
	cur := g.seed
	s := uint32(os.Getpid())
	s *= 129685499
	s += uint32(time.Now().UnixNano())
	s *= 233755607
	s += cur
	s *= 38259643
	g.seed = s
	return cur
}

// newStream builds the *rand.Rand backing one seed: both our own uniform
// sampling (via its Uint64) and gonum's distuv.Categorical (which wants a
// concrete *rand.Rand, not a custom Source) draw from this exact same
// reseedable stream.
func newStream(seed uint32) *rand.Rand {
	return rand.New(rand.NewSource(uint64(seed)))
}

// RNGenerator is the single randomness source for one fuzzer run. It is
// reseeded only by an explicit call to Reseed (which mirrors the trace
// grammar's `set-seed` line), never implicitly.
type RNGenerator struct {
	seed   uint32
	src    *rand.Rand
	simple string
}

// New creates an RNGenerator seeded with the given 32-bit seed.
func New(seed uint32) *RNGenerator {
	return &RNGenerator{
		seed:   seed,
		src:    newStream(seed),
		simple: simpleSymbolCharSet,
	}
}

// Seed returns the seed this generator was last (re)seeded with.
func (r *RNGenerator) Seed() uint32 { return r.seed }

// Reseed replaces the underlying stream with one derived from seed. Used by
// `set-seed` trace lines mid-run.
func (r *RNGenerator) Reseed(seed uint32) {
	r.seed = seed
	r.src = newStream(seed)
}

// PickUint32 returns a uniformly distributed uint32.
func (r *RNGenerator) PickUint32() uint32 {
	return uint32(r.src.Uint64())
}

// PickUint32Range returns a uniformly distributed uint32 in [from, to].
func (r *RNGenerator) PickUint32Range(from, to uint32) uint32 {
	if from > to {
		from, to = to, from
	}
	if from == to {
		return from
	}
	span := uint64(to-from) + 1
	return from + uint32(r.src.Uint64()%span)
}

// PickUint64 returns a uniformly distributed uint64.
func (r *RNGenerator) PickUint64() uint64 {
	return r.src.Uint64()
}

// PickUint64Range returns a uniformly distributed uint64 in [from, to].
func (r *RNGenerator) PickUint64Range(from, to uint64) uint64 {
	if from > to {
		from, to = to, from
	}
	if from == to {
		return from
	}
	span := to - from
	if span == ^uint64(0) {
		return from + r.src.Uint64()
	}
	return from + r.src.Uint64()%(span+1)
}

// PickWeighted samples an index i from weights with probability
// weights[i] / sum(weights). Weights must be non-negative and not all
// zero. Backed by gonum's distuv.Categorical, seeded from this
// RNGenerator's own stream so results are reproducible across platforms
// for a fixed seed. Categorical is built through NewCategorical rather
// than a struct literal: its weights/src fields are unexported, and it
// must be constructed against a concrete *rand.Rand rather than a
// custom Source.
func (r *RNGenerator) PickWeighted(weights []uint32) int {
	fw := make([]float64, len(weights))
	for i, w := range weights {
		fw[i] = float64(w)
	}
	dist := distuv.NewCategorical(fw, r.src)
	return int(dist.Rand())
}

// PickWithProb returns true with probability prob/ProbMax.
func (r *RNGenerator) PickWithProb(prob uint32) bool {
	return r.PickUint32Range(0, ProbMax-1) < prob
}

// FlipCoin returns true with probability 1/2.
func (r *RNGenerator) FlipCoin() bool {
	return r.PickWithProb(ProbMax / 2)
}

// PickFromSlice uniformly picks one element from a non-empty slice.
func PickFromSlice[T any](r *RNGenerator, items []T) T {
	return items[r.PickUint32Range(0, uint32(len(items)-1))]
}

// PickFromMap uniformly picks one value from a non-empty map. Go
// randomizes map iteration order per-process, so the candidate keys are
// sorted before drawing an index, keeping the pick a function of the
// seed and the map's contents rather than of map internals.
func PickFromMap[K cmp.Ordered, V any](r *RNGenerator, m map[K]V) V {
	if len(m) == 0 {
		panic("rng: PickFromMap called on empty map")
	}
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return m[PickFromSlice(r, keys)]
}

// PickBinStr returns a random binary digit string of the given length.
func (r *RNGenerator) PickBinStr(size uint32) string {
	n := (size + 31) / 32
	var buf bytes.Buffer
	for i := uint32(0); i < n; i++ {
		v := r.PickUint32()
		buf.WriteString(strconv.FormatUint(uint64(v), 2))
	}
	s := buf.String()
	for uint32(len(s)) < size {
		s = "0" + s
	}
	return s[:size]
}

// PickDecStr returns the decimal representation of a random value of the
// given bit size.
func (r *RNGenerator) PickDecStr(size uint32) string {
	bin := r.PickBinStr(size)
	v := new(big.Int)
	v.SetString(bin, 2)
	return v.String()
}

// PickHexStr returns the hexadecimal representation of a random value of
// the given bit size.
func (r *RNGenerator) PickHexStr(size uint32) string {
	bin := r.PickBinStr(size)
	v := new(big.Int)
	v.SetString(bin, 2)
	return v.Text(16)
}

// PickString returns a random printable-ASCII string of length len.
func (r *RNGenerator) PickString(length uint32) string {
	if length == 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = byte(r.PickUint32Range(32, 126))
	}
	return string(b)
}

// PickStringFromCharset returns a random string drawn from charset, of
// length len.
func (r *RNGenerator) PickStringFromCharset(charset string, length uint32) string {
	if length == 0 {
		return ""
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[r.PickUint32Range(0, uint32(len(charset)-1))]
	}
	return string(b)
}

// PickSimpleSymbol returns an SMT-LIB simple_symbol of the given length.
func (r *RNGenerator) PickSimpleSymbol(length uint32) string {
	return r.PickStringFromCharset(r.simple, length)
}

// PickPipedSymbol returns an SMT-LIB |piped symbol| of the given length,
// including the enclosing pipe characters.
func (r *RNGenerator) PickPipedSymbol(length uint32) string {
	if length < 2 {
		length = 2
	}
	s := []byte(r.PickString(length))
	s[0] = '|'
	s[length-1] = '|'
	return string(s)
}
