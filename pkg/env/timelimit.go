package env

import "rollout/pkg/space"

// TimeLimit forces episode termination after a fixed number of steps.
// When the limit fires the wrapper marks itself reset-required; the next
// Step call is redirected to Reset without forwarding the stale action to
// the wrapped environment.
type TimeLimit[O, A any] struct {
	inner         Environment[O, A]
	limit         int
	steps         int
	resetRequired bool
}

var _ Environment[int, int] = (*TimeLimit[int, int])(nil)

// NewTimeLimit wraps inner with a step limit. limit must be positive.
func NewTimeLimit[O, A any](inner Environment[O, A], limit int) *TimeLimit[O, A] {
	if limit <= 0 {
		panic("env: time limit must be positive")
	}
	return &TimeLimit[O, A]{inner: inner, limit: limit}
}

func (w *TimeLimit[O, A]) ObservationSpace() space.Space[O] {
	return w.inner.ObservationSpace()
}

func (w *TimeLimit[O, A]) ActionSpace() space.Space[A] {
	return w.inner.ActionSpace()
}

func (w *TimeLimit[O, A]) Batched() bool {
	return w.inner.Batched()
}

func (w *TimeLimit[O, A]) Reset() Step[O] {
	w.steps = 0
	w.resetRequired = false
	return w.inner.Reset()
}

func (w *TimeLimit[O, A]) Step(action A) Step[O] {
	if w.resetRequired {
		return w.Reset()
	}

	step := w.inner.Step(action)
	switch step.Kind {
	case First:
		// Inner auto-reset; a new episode begins.
		w.steps = 0
		return step
	case Last:
		// Natural termination before the limit.
		w.steps = 0
		return step
	default:
		w.steps++
		if w.steps >= w.limit {
			step.Kind = Last
			w.steps = 0
			// The inner environment does not know its episode ended, so the
			// auto-reset contract is ours to honor on the next call.
			w.resetRequired = true
		}
		return step
	}
}

func (w *TimeLimit[O, A]) Copy() Environment[O, A] {
	return &TimeLimit[O, A]{
		inner:         w.inner.Copy(),
		limit:         w.limit,
		steps:         w.steps,
		resetRequired: w.resetRequired,
	}
}
