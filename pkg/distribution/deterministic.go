package distribution

import (
	"math"
	"math/rand/v2"
	"reflect"
)

// Deterministic is the degenerate distribution concentrated on one value.
// LogProb is 0 for the held value and -Inf otherwise; entropy is 0.
type Deterministic[T any] struct {
	value T
	eq    func(a, b T) bool
}

// NewDeterministic builds a degenerate distribution over a comparable value.
func NewDeterministic[T comparable](value T) Deterministic[T] {
	return Deterministic[T]{
		value: value,
		eq:    func(a, b T) bool { return a == b },
	}
}

// NewDeterministicFunc builds a degenerate distribution with a caller-supplied
// equality. A nil eq falls back to reflect.DeepEqual, which covers slice
// valued actions.
func NewDeterministicFunc[T any](value T, eq func(a, b T) bool) Deterministic[T] {
	if eq == nil {
		eq = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}
	return Deterministic[T]{value: value, eq: eq}
}

// Value returns the held value.
func (d Deterministic[T]) Value() T {
	return d.value
}

func (d Deterministic[T]) Sample(_ *rand.Rand) T {
	return d.value
}

func (d Deterministic[T]) Mode(_ *rand.Rand) T {
	return d.value
}

func (d Deterministic[T]) LogProb(value T) float64 {
	if d.eq(d.value, value) {
		return 0
	}
	return math.Inf(-1)
}

func (d Deterministic[T]) Entropy() float64 {
	return 0
}
