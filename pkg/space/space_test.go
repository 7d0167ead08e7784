package space

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollout/pkg/distribution"
)

func TestDiscreteContains(t *testing.T) {
	d := NewDiscrete(4)
	assert.Nil(t, d.Shape())
	for k := 0; k < 4; k++ {
		assert.True(t, d.Contains(k))
	}
	assert.False(t, d.Contains(-1))
	assert.False(t, d.Contains(4))
}

func TestDiscreteDefaultDistributionIsUniform(t *testing.T) {
	d := NewDiscrete(5)
	dist := d.Distribution()
	for k := 0; k < 5; k++ {
		assert.InDelta(t, 0.2, distribution.Probability[int](dist, k), 1e-12)
	}
	assert.InDelta(t, math.Log(5), dist.Entropy(), 1e-12)
}

func TestMultiDiscreteContains(t *testing.T) {
	m := NewMultiDiscrete([]int{2, 3, 4})
	assert.Equal(t, []int{3}, m.Shape())
	assert.True(t, m.Contains([]int{1, 2, 3}))
	assert.False(t, m.Contains([]int{1, 3, 3}), "component 1 out of range")
	assert.False(t, m.Contains([]int{1, 2}), "wrong arity")
}

func TestMultiDiscreteSizesDoesNotAlias(t *testing.T) {
	m := NewMultiDiscrete([]int{2, 3})
	sizes := m.Sizes()
	sizes[0] = 99
	assert.True(t, m.Contains([]int{1, 2}))
	assert.False(t, m.Contains([]int{50, 2}), "mutating the returned slice must not widen the space")
	assert.Equal(t, []int{2, 3}, m.Sizes())
}

func TestMultiDiscreteDistributionOrderPreserved(t *testing.T) {
	m := NewMultiDiscrete([]int{2, 5})
	dist := m.Distribution()
	rng := rand.New(rand.NewPCG(1, 0))
	for i := 0; i < 100; i++ {
		v := dist.Sample(rng)
		require.Len(t, v, 2)
		assert.True(t, v[0] >= 0 && v[0] < 2, "component 0 follows sizes[0]")
		assert.True(t, v[1] >= 0 && v[1] < 5, "component 1 follows sizes[1]")
	}
	assert.InDelta(t, math.Log(2)+math.Log(5), dist.Entropy(), 1e-12)
}

func TestMultiBinary(t *testing.T) {
	m := NewMultiBinary(3)
	assert.Equal(t, []int{3}, m.Shape())
	assert.True(t, m.Contains([]int{0, 1, 1}))
	assert.False(t, m.Contains([]int{0, 2, 1}))
	assert.False(t, m.Contains([]int{0, 1}))

	dist := m.Distribution()
	assert.InDelta(t, math.Log(2)*3, dist.Entropy(), 1e-12)
	assert.InDelta(t, 1.0/8, distribution.Probability[[]int](dist, []int{1, 0, 1}), 1e-12)
}

func TestBoxContainsAndBounds(t *testing.T) {
	b := NewBox([]float64{-1, 0}, []float64{1, 10})
	assert.Equal(t, []int{2}, b.Shape())
	assert.Equal(t, []float64{-1, 0}, b.Low())
	assert.Equal(t, []float64{1, 10}, b.High())

	assert.True(t, b.Contains([]float64{0, 5}))
	assert.True(t, b.Contains([]float64{-1, 10}), "bounds are inclusive")
	assert.False(t, b.Contains([]float64{1.5, 5}))
	assert.False(t, b.Contains([]float64{0}))
}

func TestBoxDefaultSamplerStaysInside(t *testing.T) {
	b := NewBox([]float64{-0.5, 2}, []float64{0.5, 3})
	dist := b.Distribution()
	rng := rand.New(rand.NewPCG(42, 0))
	for i := 0; i < 100; i++ {
		assert.True(t, b.Contains(dist.Sample(rng)))
	}
}

func TestDiscreteBox(t *testing.T) {
	d := NewDiscreteBox([]int{-2, 0}, []int{2, 1})
	assert.Equal(t, []int{2}, d.Shape())
	assert.True(t, d.Contains([]int{-2, 1}))
	assert.False(t, d.Contains([]int{3, 1}))
	assert.False(t, d.Contains([]int{0, 0, 0}))

	dist := d.Distribution()
	assert.InDelta(t, math.Log(5)+math.Log(2), dist.Entropy(), 1e-12)
	rng := rand.New(rand.NewPCG(9, 0))
	for i := 0; i < 100; i++ {
		assert.True(t, d.Contains(dist.Sample(rng)))
	}
}

func TestConstructorPreconditions(t *testing.T) {
	assert.Panics(t, func() { NewDiscrete(0) })
	assert.Panics(t, func() { NewMultiDiscrete([]int{2, 0}) })
	assert.Panics(t, func() { NewMultiBinary(-1) })
	assert.Panics(t, func() { NewBox([]float64{1}, []float64{0}) })
	assert.Panics(t, func() { NewBox([]float64{0, 0}, []float64{1}) })
	assert.Panics(t, func() { NewDiscreteBox([]int{1}, []int{0}) })
}
