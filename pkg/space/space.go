// Package space describes the typed domains of actions and observations.
// Every space exposes a default sampling distribution over its domain, used
// as the uninformed sampler (e.g. by random policies), not a learned policy.
package space

import "rollout/pkg/distribution"

// Space is the contract shared by all value domains.
type Space[T any] interface {
	// Shape returns the per-instance value shape. Scalar domains return nil.
	Shape() []int

	// Distribution returns the default sampling distribution over the domain.
	Distribution() distribution.Distribution[T]

	// Contains reports whether value is a legal member of the domain,
	// checking arity and per-element bounds exactly.
	Contains(value T) bool
}
