package driver

import "rollout/pkg/env"

// TrajectoryStep is the atomic record delivered for one environment
// instance: the step the policy acted on, the step that resulted, the action
// taken and the policy state that produced it. Immutable once constructed.
type TrajectoryStep[O, A, S any] struct {
	Current env.Step[O]
	Next    env.Step[O]
	Action  A
	State   S
}

// IsBoundary reports whether the current step is a terminal one. Boundary
// steps are excluded from step counts.
func (t TrajectoryStep[O, A, S]) IsBoundary() bool {
	return t.Current.Kind == env.Last
}

// IsLast reports whether this record ends an episode.
func (t TrajectoryStep[O, A, S]) IsLast() bool {
	return t.Next.Kind == env.Last
}

// Trajectory is one iteration's batch of trajectory steps, stacked
// field-wise. Index i of every field refers to environment instance i.
type Trajectory[O, A, S any] struct {
	Current env.StepBatch[O]
	Next    env.StepBatch[O]
	Actions []A
	States  []S
}

// Len returns the batch size.
func (t Trajectory[O, A, S]) Len() int {
	return t.Current.Len()
}

// At unstacks the record for instance i.
func (t Trajectory[O, A, S]) At(i int) TrajectoryStep[O, A, S] {
	return TrajectoryStep[O, A, S]{
		Current: t.Current.At(i),
		Next:    t.Next.At(i),
		Action:  t.Actions[i],
		State:   t.States[i],
	}
}

// NumBoundary counts instances whose current step is terminal.
func (t Trajectory[O, A, S]) NumBoundary() int {
	return t.Current.CountLast()
}

// NumEnded counts instances whose next step is terminal.
func (t Trajectory[O, A, S]) NumEnded() int {
	return t.Next.CountLast()
}

// Listener receives one Trajectory per driver iteration, synchronously and
// in registration order. Listeners must treat the trajectory as read-only.
type Listener[O, A, S any] interface {
	OnTrajectory(t Trajectory[O, A, S])
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc[O, A, S any] func(t Trajectory[O, A, S])

func (f ListenerFunc[O, A, S]) OnTrajectory(t Trajectory[O, A, S]) {
	f(t)
}
