package space

import "rollout/pkg/distribution"

// Discrete is the scalar domain {0, ..., n-1}.
type Discrete struct {
	n int
}

var _ Space[int] = Discrete{}

// NewDiscrete builds a Discrete space with n elements. n must be positive.
func NewDiscrete(n int) Discrete {
	if n <= 0 {
		panic("space: discrete needs a positive number of elements")
	}
	return Discrete{n: n}
}

// N returns the number of elements.
func (d Discrete) N() int {
	return d.n
}

func (d Discrete) Shape() []int {
	return nil
}

// Distribution returns the uniform categorical over the n elements.
func (d Discrete) Distribution() distribution.Distribution[int] {
	return distribution.NewUniformCategorical(d.n)
}

func (d Discrete) Contains(value int) bool {
	return value >= 0 && value < d.n
}

// MultiDiscrete is the domain of integer vectors whose component i ranges
// over {0, ..., sizes[i]-1}.
type MultiDiscrete struct {
	sizes []int
}

var _ Space[[]int] = MultiDiscrete{}

// NewMultiDiscrete builds a MultiDiscrete space. Every size must be positive.
func NewMultiDiscrete(sizes []int) MultiDiscrete {
	if len(sizes) == 0 {
		panic("space: multi-discrete needs at least one component")
	}
	for _, n := range sizes {
		if n <= 0 {
			panic("space: multi-discrete sizes must be positive")
		}
	}
	held := make([]int, len(sizes))
	copy(held, sizes)
	return MultiDiscrete{sizes: held}
}

// Sizes returns a copy of the per-component cardinalities.
func (m MultiDiscrete) Sizes() []int {
	sizes := make([]int, len(m.sizes))
	copy(sizes, m.sizes)
	return sizes
}

func (m MultiDiscrete) Shape() []int {
	return []int{len(m.sizes)}
}

// Distribution composes an independent per-component uniform; component i of
// every sample corresponds to sizes[i].
func (m MultiDiscrete) Distribution() distribution.Distribution[[]int] {
	components := make([]distribution.Distribution[int], len(m.sizes))
	for i, n := range m.sizes {
		components[i] = distribution.NewUniformInt(0, n-1)
	}
	return distribution.NewProduct(components...)
}

func (m MultiDiscrete) Contains(value []int) bool {
	if len(value) != len(m.sizes) {
		return false
	}
	for i, v := range value {
		if v < 0 || v >= m.sizes[i] {
			return false
		}
	}
	return true
}

// MultiBinary is the domain of {0,1}-vectors of a fixed length.
type MultiBinary struct {
	n int
}

var _ Space[[]int] = MultiBinary{}

// NewMultiBinary builds a MultiBinary space of n components.
func NewMultiBinary(n int) MultiBinary {
	if n <= 0 {
		panic("space: multi-binary needs a positive number of components")
	}
	return MultiBinary{n: n}
}

func (m MultiBinary) Shape() []int {
	return []int{m.n}
}

// Distribution returns n independent fair coin flips.
func (m MultiBinary) Distribution() distribution.Distribution[[]int] {
	components := make([]distribution.Distribution[int], m.n)
	for i := range components {
		components[i] = distribution.NewBernoulli(0.5)
	}
	return distribution.NewProduct(components...)
}

func (m MultiBinary) Contains(value []int) bool {
	if len(value) != m.n {
		return false
	}
	for _, v := range value {
		if v != 0 && v != 1 {
			return false
		}
	}
	return true
}
