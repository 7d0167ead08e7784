package space

import (
	"gonum.org/v1/gonum/spatial/r1"

	"rollout/pkg/distribution"
)

// Box is the continuous domain [low_i, high_i] per component, the Cartesian
// product of closed intervals in R^n.
type Box struct {
	bounds []r1.Interval
}

var _ Space[[]float64] = Box{}

// NewBox builds a Box from per-component bounds. low and high must have equal
// length and satisfy low_i <= high_i.
func NewBox(low, high []float64) Box {
	if len(low) != len(high) || len(low) == 0 {
		panic("space: box bounds must be non-empty and of equal length")
	}
	bounds := make([]r1.Interval, len(low))
	for i := range low {
		if low[i] > high[i] {
			panic("space: box needs low <= high")
		}
		bounds[i] = r1.Interval{Min: low[i], Max: high[i]}
	}
	return Box{bounds: bounds}
}

// Low returns the per-component lower bounds.
func (b Box) Low() []float64 {
	low := make([]float64, len(b.bounds))
	for i, iv := range b.bounds {
		low[i] = iv.Min
	}
	return low
}

// High returns the per-component upper bounds.
func (b Box) High() []float64 {
	high := make([]float64, len(b.bounds))
	for i, iv := range b.bounds {
		high[i] = iv.Max
	}
	return high
}

func (b Box) Shape() []int {
	return []int{len(b.bounds)}
}

// Distribution returns the component-wise uniform over the box.
func (b Box) Distribution() distribution.Distribution[[]float64] {
	return distribution.NewUniform(b.Low(), b.High())
}

func (b Box) Contains(value []float64) bool {
	if len(value) != len(b.bounds) {
		return false
	}
	for i, v := range value {
		if v < b.bounds[i].Min || v > b.bounds[i].Max {
			return false
		}
	}
	return true
}

// DiscreteBox is the integer-valued analogue of Box: vectors whose component
// i ranges over the integers [low_i, high_i].
type DiscreteBox struct {
	low, high []int
}

var _ Space[[]int] = DiscreteBox{}

// NewDiscreteBox builds a DiscreteBox from inclusive integer bounds.
func NewDiscreteBox(low, high []int) DiscreteBox {
	if len(low) != len(high) || len(low) == 0 {
		panic("space: discrete box bounds must be non-empty and of equal length")
	}
	for i := range low {
		if low[i] > high[i] {
			panic("space: discrete box needs low <= high")
		}
	}
	heldLow := make([]int, len(low))
	heldHigh := make([]int, len(high))
	copy(heldLow, low)
	copy(heldHigh, high)
	return DiscreteBox{low: heldLow, high: heldHigh}
}

func (d DiscreteBox) Shape() []int {
	return []int{len(d.low)}
}

// Distribution composes independent per-component integer uniforms.
func (d DiscreteBox) Distribution() distribution.Distribution[[]int] {
	components := make([]distribution.Distribution[int], len(d.low))
	for i := range components {
		components[i] = distribution.NewUniformInt(d.low[i], d.high[i])
	}
	return distribution.NewProduct(components...)
}

func (d DiscreteBox) Contains(value []int) bool {
	if len(value) != len(d.low) {
		return false
	}
	for i, v := range value {
		if v < d.low[i] || v > d.high[i] {
			return false
		}
	}
	return true
}
