package env

import "rollout/pkg/space"

// ActionRepeat applies each action up to n times against the wrapped
// environment, summing rewards across the repeats. It stops early when a
// repeat ends the episode; the returned step carries the kind and
// observation of the last executed repeat and the accumulated reward.
type ActionRepeat[O, A any] struct {
	inner Environment[O, A]
	n     int
}

var _ Environment[int, int] = (*ActionRepeat[int, int])(nil)

// NewActionRepeat wraps inner so each action is applied numRepeats times.
// numRepeats must be positive.
func NewActionRepeat[O, A any](inner Environment[O, A], numRepeats int) *ActionRepeat[O, A] {
	if numRepeats <= 0 {
		panic("env: action repeat count must be positive")
	}
	return &ActionRepeat[O, A]{inner: inner, n: numRepeats}
}

func (w *ActionRepeat[O, A]) ObservationSpace() space.Space[O] {
	return w.inner.ObservationSpace()
}

func (w *ActionRepeat[O, A]) ActionSpace() space.Space[A] {
	return w.inner.ActionSpace()
}

func (w *ActionRepeat[O, A]) Batched() bool {
	return w.inner.Batched()
}

func (w *ActionRepeat[O, A]) Reset() Step[O] {
	return w.inner.Reset()
}

func (w *ActionRepeat[O, A]) Step(action A) Step[O] {
	var total float64
	var step Step[O]
	for i := 0; i < w.n; i++ {
		step = w.inner.Step(action)
		total += step.Reward
		// A Last step ends the episode mid-repeat. A First step means the
		// inner environment auto-reset; the stale action must not leak into
		// the new episode.
		if step.Kind != Transition {
			break
		}
	}
	step.Reward = total
	return step
}

func (w *ActionRepeat[O, A]) Copy() Environment[O, A] {
	return &ActionRepeat[O, A]{inner: w.inner.Copy(), n: w.n}
}
