package env

import "rollout/pkg/space"

// RunStatistics is a pure observer wrapper that counts resets, episodes and
// steps flowing through it. Steps pass through unmodified.
type RunStatistics[O, A any] struct {
	inner Environment[O, A]

	numResets       int
	numEpisodes     int
	numEpisodeSteps int
	numTotalSteps   int
}

var _ Environment[int, int] = (*RunStatistics[int, int])(nil)

// NewRunStatistics wraps inner with step and episode counters.
func NewRunStatistics[O, A any](inner Environment[O, A]) *RunStatistics[O, A] {
	return &RunStatistics[O, A]{inner: inner}
}

// NumResets returns how many First steps have been observed.
func (w *RunStatistics[O, A]) NumResets() int { return w.numResets }

// NumEpisodes returns how many Last steps have been observed.
func (w *RunStatistics[O, A]) NumEpisodes() int { return w.numEpisodes }

// NumEpisodeSteps returns the number of non-First steps since the last
// First step.
func (w *RunStatistics[O, A]) NumEpisodeSteps() int { return w.numEpisodeSteps }

// NumTotalSteps returns the number of non-First steps observed overall.
func (w *RunStatistics[O, A]) NumTotalSteps() int { return w.numTotalSteps }

func (w *RunStatistics[O, A]) ObservationSpace() space.Space[O] {
	return w.inner.ObservationSpace()
}

func (w *RunStatistics[O, A]) ActionSpace() space.Space[A] {
	return w.inner.ActionSpace()
}

func (w *RunStatistics[O, A]) Batched() bool {
	return w.inner.Batched()
}

func (w *RunStatistics[O, A]) Reset() Step[O] {
	return w.observe(w.inner.Reset())
}

func (w *RunStatistics[O, A]) Step(action A) Step[O] {
	return w.observe(w.inner.Step(action))
}

func (w *RunStatistics[O, A]) observe(step Step[O]) Step[O] {
	if step.Kind == First {
		w.numResets++
		w.numEpisodeSteps = 0
		return step
	}
	w.numEpisodeSteps++
	w.numTotalSteps++
	if step.Kind == Last {
		w.numEpisodes++
	}
	return step
}

func (w *RunStatistics[O, A]) Copy() Environment[O, A] {
	copied := *w
	copied.inner = w.inner.Copy()
	return &copied
}
