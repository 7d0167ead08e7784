// Package policy defines the action-selection side of the interaction loop:
// the Policy contract with explicitly threaded internal state, probabilistic
// policies exposing their action distribution, and the random, greedy and
// actor variants.
package policy

import (
	"math/rand/v2"

	"rollout/pkg/distribution"
	"rollout/pkg/env"
)

// NoState is the state type of stateless policies.
type NoState struct{}

// Policy maps a step to an action. Internal state is owned by the policy and
// threaded explicitly through State/SetState between calls; callers must use
// the gettable copy, never retain an alias expecting in-place mutation.
type Policy[O, A, S any] interface {
	// Batched reports whether this policy processes a whole batch per call.
	// A batched policy must also implement BatchedPolicy, and its
	// per-instance Action panics.
	Batched() bool

	// State returns the current internal state.
	State() S

	// SetState replaces the internal state.
	SetState(state S)

	// Action selects an action for one step, sampling through rng.
	Action(rng *rand.Rand, step env.Step[O]) A

	// Copy returns an independent instance whose internal state does not
	// alias the original's.
	Copy() Policy[O, A, S]
}

// Probabilistic is a policy that selects actions by sampling an explicit
// action distribution.
type Probabilistic[O, A, S any] interface {
	Policy[O, A, S]

	// ActionDistribution returns the distribution the next Action call
	// would sample from, without advancing the policy state.
	ActionDistribution(step env.Step[O]) distribution.Distribution[A]
}

// BatchedPolicy processes a fixed-size batch of steps in one call.
type BatchedPolicy[O, A, S any] interface {
	Policy[O, A, S]

	BatchSize() int

	// ActionBatch selects one action per batch instance.
	ActionBatch(rng *rand.Rand, steps env.StepBatch[O]) []A

	// States returns the per-instance view of the policy state.
	States() []S
}
