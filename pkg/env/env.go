// Package env defines the environment side of the interaction loop: the
// Step/StepKind snapshot model, the Environment state-machine contract, and
// composable wrappers that add cross-cutting behavior (time limits, action
// repetition, run statistics) without the caller's awareness.
package env

import "rollout/pkg/space"

// StepKind marks where a step sits within an episode.
type StepKind int

const (
	// First marks the start of an episode; its reward carries no meaning.
	First StepKind = iota
	// Transition is any step between First and Last.
	Transition
	// Last marks episode termination. Within one environment instance a
	// Last step is always immediately followed by a First step.
	Last
)

func (k StepKind) String() string {
	switch k {
	case First:
		return "first"
	case Transition:
		return "transition"
	case Last:
		return "last"
	default:
		return "unknown"
	}
}

// Step is one observation/reward/kind snapshot emitted by an environment.
// The environment owns the value it returns; consumers copy, never alias.
type Step[O any] struct {
	Kind        StepKind
	Observation O
	Reward      float64
}

// StepBatch holds one step per environment instance along a leading batch
// axis, stored field-wise. Index i of every field refers to instance i.
type StepBatch[O any] struct {
	Kinds        []StepKind
	Observations []O
	Rewards      []float64
}

// Len returns the batch size.
func (b StepBatch[O]) Len() int {
	return len(b.Kinds)
}

// At returns the step for instance i.
func (b StepBatch[O]) At(i int) Step[O] {
	return Step[O]{Kind: b.Kinds[i], Observation: b.Observations[i], Reward: b.Rewards[i]}
}

// CountLast returns how many instances are on a Last step.
func (b StepBatch[O]) CountLast() int {
	var n int
	for _, k := range b.Kinds {
		if k == Last {
			n++
		}
	}
	return n
}

// Environment is the per-instance contract. Lifecycle: an environment is
// constructed in an implicit pre-First state; Reset forces a First step and
// clears episode state; Step advances the simulation and returns a
// Transition step unless a termination condition fires, in which case it
// returns Last and the next Step call behaves as an implicit Reset
// (auto-reset), returning First regardless of the action given.
//
// Step panics if the action is outside ActionSpace; an illegal action is a
// programming error, not a recoverable condition.
type Environment[O, A any] interface {
	ObservationSpace() space.Space[O]
	ActionSpace() space.Space[A]

	// Batched reports whether this environment processes a whole batch per
	// call. A batched environment must also implement BatchedEnvironment,
	// and its per-instance Step and Reset panic.
	Batched() bool

	Reset() Step[O]
	Step(action A) Step[O]

	// Copy returns an independent instance whose internal state does not
	// alias the original's.
	Copy() Environment[O, A]
}

// BatchedEnvironment processes a fixed-size batch of instances in one call.
type BatchedEnvironment[O, A any] interface {
	Environment[O, A]

	BatchSize() int
	ResetBatch() StepBatch[O]
	StepBatch(actions []A) StepBatch[O]
}
