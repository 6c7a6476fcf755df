package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func Test_DeterministicReplay(t *testing.T) {
	r1 := New(42)
	r2 := New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, r1.PickUint32Range(0, 1000), r2.PickUint32Range(0, 1000))
	}
}

func Test_PickUint32RangeBounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.PickUint32Range(10, 20)
		assert.GreaterOrEqual(t, v, uint32(10))
		assert.LessOrEqual(t, v, uint32(20))
	}
}

func Test_PickWeightedRespectsZeroWeight(t *testing.T) {
	r := New(3)
	weights := []uint32{0, 1, 0}
	for i := 0; i < 200; i++ {
		assert.Equal(t, 1, r.PickWeighted(weights))
	}
}

func Test_PickWithProbBounds(t *testing.T) {
	r := New(9)
	always := 0
	never := 0
	for i := 0; i < 50; i++ {
		if r.PickWithProb(ProbMax) {
			always++
		}
		if r.PickWithProb(0) {
			never++
		}
	}
	assert.Equal(t, 50, always)
	assert.Equal(t, 0, never)
}

func Test_PickFromSlice(t *testing.T) {
	r := New(11)
	items := []string{"a", "b", "c"}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		seen[PickFromSlice(r, items)] = true
	}
	assert.True(t, len(seen) > 1)
}

func Test_PickBinDecHexStr(t *testing.T) {
	r := New(5)
	bin := r.PickBinStr(16)
	assert.Len(t, bin, 16)
	dec := r.PickDecStr(8)
	assert.NotEmpty(t, dec)
	hex := r.PickHexStr(8)
	assert.NotEmpty(t, hex)
}

func Test_PickSimpleAndPipedSymbol(t *testing.T) {
	r := New(13)
	s := r.PickSimpleSymbol(10)
	assert.Len(t, s, 10)
	p := r.PickPipedSymbol(10)
	assert.Len(t, p, 10)
	assert.Equal(t, byte('|'), p[0])
	assert.Equal(t, byte('|'), p[len(p)-1])
}

func Test_SeedGeneratorProducesDistinctSeeds(t *testing.T) {
	g := NewSeedGenerator(1)
	a := g.Next()
	b := g.Next()
	assert.NotEqual(t, a, b)
}

// Test_PickWeightedFairness is spec §8's weighted-fairness property: over
// N>>1 draws, the empirical frequency of each index converges to
// weights[i] / sum(weights) within a chi-square goodness-of-fit bound.
func Test_PickWeightedFairness(t *testing.T) {
	r := New(17)
	weights := []uint32{1, 2, 3, 4}
	const n = 20000

	counts := make([]float64, len(weights))
	for i := 0; i < n; i++ {
		counts[r.PickWeighted(weights)]++
	}

	total := 0.0
	for _, w := range weights {
		total += float64(w)
	}
	expected := make([]float64, len(weights))
	for i, w := range weights {
		expected[i] = float64(w) / total * n
	}

	// 3 degrees of freedom (4 categories - 1); critical value at a
	// p=0.001 significance level is 16.27, generous enough to make this
	// test robust against a passing run's ordinary sampling variance
	// while still catching a PickWeighted that ignores its weights.
	const chiSquareCriticalP001 = 16.27
	got := stat.ChiSquare(counts, expected)
	assert.Less(t, got, chiSquareCriticalP001)
}
