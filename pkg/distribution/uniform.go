package distribution

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is a continuous uniform distribution over the axis-aligned box
// [low_i, high_i) per component.
type Uniform struct {
	low, high []float64
}

var _ Distribution[[]float64] = Uniform{}

// NewUniform builds a component-wise uniform distribution. low and high must
// have equal length.
func NewUniform(low, high []float64) Uniform {
	if len(low) != len(high) {
		panic("distribution: uniform bounds must have equal length")
	}
	return Uniform{low: low, high: high}
}

// Dim returns the number of components.
func (u Uniform) Dim() int {
	return len(u.low)
}

func (u Uniform) Sample(rng *rand.Rand) []float64 {
	out := make([]float64, len(u.low))
	for i := range out {
		out[i] = distuv.Uniform{Min: u.low[i], Max: u.high[i], Src: rng}.Rand()
	}
	return out
}

// Mode of a uniform distribution is not unique; the interval midpoint is
// returned as the deterministic choice.
func (u Uniform) Mode(_ *rand.Rand) []float64 {
	out := make([]float64, len(u.low))
	for i := range out {
		out[i] = u.low[i] + (u.high[i]-u.low[i])/2
	}
	return out
}

// LogProb returns the log-density: -sum(log(high_i-low_i)) inside the box,
// -Inf outside.
func (u Uniform) LogProb(value []float64) float64 {
	if len(value) != len(u.low) {
		return math.Inf(-1)
	}
	var logDensity float64
	for i, v := range value {
		if v < u.low[i] || v >= u.high[i] {
			return math.Inf(-1)
		}
		logDensity -= math.Log(u.high[i] - u.low[i])
	}
	return logDensity
}

// Entropy returns the differential entropy sum(log(high_i-low_i)). Unlike
// discrete entropy this may be negative for narrow intervals.
func (u Uniform) Entropy() float64 {
	var h float64
	for i := range u.low {
		h += math.Log(u.high[i] - u.low[i])
	}
	return h
}
