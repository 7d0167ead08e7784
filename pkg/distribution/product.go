package distribution

import (
	"math"
	"math/rand/v2"
)

// Product composes independent integer-valued component distributions into a
// distribution over []int. Component i of every sample, mode and
// log-probability corresponds to component i of the constructor argument.
type Product struct {
	components []Distribution[int]
}

var _ Distribution[[]int] = Product{}

// NewProduct builds an independent product over the given components.
func NewProduct(components ...Distribution[int]) Product {
	if len(components) == 0 {
		panic("distribution: product needs at least one component")
	}
	return Product{components: components}
}

// Dim returns the number of components.
func (p Product) Dim() int {
	return len(p.components)
}

func (p Product) Sample(rng *rand.Rand) []int {
	out := make([]int, len(p.components))
	for i, c := range p.components {
		out[i] = c.Sample(rng)
	}
	return out
}

func (p Product) Mode(rng *rand.Rand) []int {
	out := make([]int, len(p.components))
	for i, c := range p.components {
		out[i] = c.Mode(rng)
	}
	return out
}

// LogProb sums the component log-probabilities. A value of the wrong length
// is outside the support.
func (p Product) LogProb(value []int) float64 {
	if len(value) != len(p.components) {
		return math.Inf(-1)
	}
	var sum float64
	for i, c := range p.components {
		sum += c.LogProb(value[i])
	}
	return sum
}

func (p Product) Entropy() float64 {
	var sum float64
	for _, c := range p.components {
		sum += c.Entropy()
	}
	return sum
}

// UniformInt is a uniform distribution over the integers [low, high],
// inclusive on both ends.
type UniformInt struct {
	low, high int
}

var _ Distribution[int] = UniformInt{}

// NewUniformInt builds a uniform integer distribution over [low, high].
func NewUniformInt(low, high int) UniformInt {
	if high < low {
		panic("distribution: uniform int needs high >= low")
	}
	return UniformInt{low: low, high: high}
}

func (u UniformInt) Sample(rng *rand.Rand) int {
	return u.low + rng.IntN(u.high-u.low+1)
}

// Mode is not unique; the lowest value is returned.
func (u UniformInt) Mode(_ *rand.Rand) int {
	return u.low
}

func (u UniformInt) LogProb(value int) float64 {
	if value < u.low || value > u.high {
		return math.Inf(-1)
	}
	return -math.Log(float64(u.high - u.low + 1))
}

func (u UniformInt) Entropy() float64 {
	return math.Log(float64(u.high - u.low + 1))
}
