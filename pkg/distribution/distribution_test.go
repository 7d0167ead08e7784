package distribution

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

func TestBernoulliLogProbMatchesProbability(t *testing.T) {
	for _, p := range []float64{0.1, 0.25, 0.5, 0.9, 0.999} {
		b := NewBernoulli(p)
		assert.InDelta(t, p, Probability[int](b, 1), 1e-12)
		assert.InDelta(t, 1-p, Probability[int](b, 0), 1e-12)
		assert.True(t, b.Entropy() >= 0)
	}
}

func TestBernoulliZeroProbability(t *testing.T) {
	b := NewBernoulli(0)
	assert.True(t, math.IsInf(b.LogProb(1), -1))
	assert.InDelta(t, 0, b.LogProb(0), 1e-12)
	assert.Equal(t, 0, b.Mode(nil))
}

func TestBernoulliMode(t *testing.T) {
	assert.Equal(t, 1, NewBernoulli(0.7).Mode(nil))
	assert.Equal(t, 0, NewBernoulli(0.3).Mode(nil))
	assert.Equal(t, 0, NewBernoulli(0.5).Mode(nil), "exact tie resolves to 0")
}

func TestCategoricalNormalization(t *testing.T) {
	c := NewCategorical([]float64{1, 2, 1}) // unnormalized on purpose
	require.Equal(t, 3, c.NumOutcomes())
	assert.InDelta(t, 0.25, Probability[int](c, 0), 1e-12)
	assert.InDelta(t, 0.5, Probability[int](c, 1), 1e-12)
	assert.InDelta(t, 0.25, Probability[int](c, 2), 1e-12)
	assert.True(t, math.IsInf(c.LogProb(3), -1))
	assert.True(t, math.IsInf(c.LogProb(-1), -1))
}

func TestCategoricalLogitsAgreeWithProbs(t *testing.T) {
	probs := []float64{0.2, 0.3, 0.5}
	logits := []float64{math.Log(0.2) + 7, math.Log(0.3) + 7, math.Log(0.5) + 7}
	fromProbs := NewCategorical(probs)
	fromLogits := NewCategoricalLogits(logits)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, fromProbs.LogProb(k), fromLogits.LogProb(k), 1e-12)
	}
	assert.InDelta(t, fromProbs.Entropy(), fromLogits.Entropy(), 1e-12)
}

func TestCategoricalModeTieBreaking(t *testing.T) {
	c := NewCategorical([]float64{0.4, 0.4, 0.2})
	assert.Equal(t, 0, c.Mode(nil), "lowest index wins ties")
}

func TestUniformCategoricalEntropy(t *testing.T) {
	c := NewUniformCategorical(8)
	assert.InDelta(t, math.Log(8), c.Entropy(), 1e-12)
	assert.InDelta(t, 1.0/8, Probability[int](c, 3), 1e-12)
}

func TestCategoricalSampleWithinSupport(t *testing.T) {
	rng := newRNG(7)
	c := NewCategorical([]float64{0.5, 0.5, 0})
	for i := 0; i < 200; i++ {
		k := c.Sample(rng)
		assert.Contains(t, []int{0, 1}, k)
	}
}

func TestUniformDensityAndEntropy(t *testing.T) {
	u := NewUniform([]float64{0, -1}, []float64{2, 1})
	assert.InDelta(t, math.Log(1.0/4), u.LogProb([]float64{1, 0}), 1e-12)
	assert.True(t, math.IsInf(u.LogProb([]float64{3, 0}), -1))
	assert.True(t, math.IsInf(u.LogProb([]float64{1}), -1), "wrong arity is outside support")
	assert.InDelta(t, math.Log(4), u.Entropy(), 1e-12)
	assert.Equal(t, []float64{1, 0}, u.Mode(nil))
}

func TestUniformSampleInBounds(t *testing.T) {
	rng := newRNG(11)
	u := NewUniform([]float64{-2, 5}, []float64{-1, 6})
	for i := 0; i < 100; i++ {
		v := u.Sample(rng)
		require.Len(t, v, 2)
		assert.True(t, v[0] >= -2 && v[0] < -1)
		assert.True(t, v[1] >= 5 && v[1] < 6)
	}
}

func TestDeterministicDegenerateCase(t *testing.T) {
	d := NewDeterministic(42)
	assert.Equal(t, 42, d.Sample(nil))
	assert.Equal(t, 42, d.Mode(nil))
	assert.Equal(t, 0.0, d.LogProb(42))
	assert.True(t, math.IsInf(d.LogProb(41), -1))
	assert.Equal(t, 0.0, d.Entropy())
}

func TestDeterministicSliceEquality(t *testing.T) {
	d := NewDeterministicFunc([]int{1, 0, 1}, nil)
	assert.Equal(t, 0.0, d.LogProb([]int{1, 0, 1}))
	assert.True(t, math.IsInf(d.LogProb([]int{1, 1, 1}), -1))
}

func TestProductComposition(t *testing.T) {
	p := NewProduct(NewUniformInt(0, 3), NewBernoulli(0.5), NewUniformInt(0, 1))
	require.Equal(t, 3, p.Dim())

	// Log-probabilities sum over independent components.
	want := math.Log(1.0/4) + math.Log(0.5) + math.Log(0.5)
	assert.InDelta(t, want, p.LogProb([]int{2, 1, 0}), 1e-12)
	assert.True(t, math.IsInf(p.LogProb([]int{2, 1}), -1))

	// Entropies sum as well.
	assert.InDelta(t, math.Log(4)+math.Log(2)+math.Log(2), p.Entropy(), 1e-12)

	// Component order is preserved in samples and modes.
	mode := p.Mode(nil)
	assert.Equal(t, []int{0, 0, 0}, mode)
	rng := newRNG(3)
	for i := 0; i < 50; i++ {
		v := p.Sample(rng)
		require.Len(t, v, 3)
		assert.True(t, v[0] >= 0 && v[0] <= 3)
		assert.True(t, v[1] == 0 || v[1] == 1)
		assert.True(t, v[2] == 0 || v[2] == 1)
	}
}

func TestSamplingIsReproducible(t *testing.T) {
	c := NewCategorical([]float64{0.1, 0.2, 0.3, 0.4})
	a := newRNG(99)
	b := newRNG(99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, c.Sample(a), c.Sample(b))
	}
}
