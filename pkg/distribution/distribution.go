// Package distribution provides the probability primitives that back spaces
// and probabilistic policies: Bernoulli, Categorical, Uniform, Deterministic
// and independent products of these.
//
// Sampling never touches ambient process state. Every Sample and Mode call
// takes an explicit *rand.Rand so a fixed seed sequence reproduces a fixed
// trajectory.
//
// Numerical policy: log-probabilities of zero-probability outcomes are -Inf
// and NaN inputs propagate untouched. Constructors do not reject degenerate
// parameters.
package distribution

import (
	"math"
	"math/rand/v2"
)

// Distribution is the contract shared by all probability primitives.
// Mode ignores its rng except where tie-breaking is documented otherwise.
type Distribution[T any] interface {
	// Sample draws one value using the supplied source.
	Sample(rng *rand.Rand) T

	// Mode returns the most probable value, breaking ties deterministically
	// (lowest index or value wins).
	Mode(rng *rand.Rand) T

	// LogProb returns the log-probability (or log-density) of value.
	LogProb(value T) float64

	// Entropy returns the entropy in nats. Non-negative wherever defined.
	Entropy() float64
}

// Probability returns exp(LogProb(value)).
func Probability[T any](d Distribution[T], value T) float64 {
	return math.Exp(d.LogProb(value))
}

// softplus computes log(1+exp(x)) without overflowing for large x.
func softplus(x float64) float64 {
	if x > 30 {
		return x
	}
	if x < -30 {
		return math.Exp(x)
	}
	return math.Log1p(math.Exp(x))
}

// logSumExp computes log(sum(exp(xs))) shifted by the maximum for stability.
func logSumExp(xs []float64) float64 {
	maximum := math.Inf(-1)
	for _, x := range xs {
		if x > maximum {
			maximum = x
		}
	}
	if math.IsInf(maximum, -1) {
		return maximum
	}
	var sum float64
	for _, x := range xs {
		sum += math.Exp(x - maximum)
	}
	return maximum + math.Log(sum)
}
