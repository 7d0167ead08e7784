// Package testkit provides deterministic environments, policies and
// listeners for exercising the rollout machinery in tests.
package testkit

import (
	"fmt"
	"math/rand/v2"

	"rollout/pkg/driver"
	"rollout/pkg/env"
	"rollout/pkg/policy"
	"rollout/pkg/space"
)

// CountingEnv is a deterministic environment whose observation is the
// current within-episode step number. Every episode lasts exactly
// EpisodeLen steps, each worth StepReward; the final step is Last and the
// next call auto-resets. Actions come from Discrete(2) and are ignored,
// though they are still validated against the action space.
type CountingEnv struct {
	EpisodeLen int
	StepReward float64

	t     int
	ended bool
}

var _ env.Environment[int, int] = (*CountingEnv)(nil)

// NewCountingEnv builds a counting environment. episodeLen must be positive.
func NewCountingEnv(episodeLen int, stepReward float64) *CountingEnv {
	if episodeLen <= 0 {
		panic("testkit: episode length must be positive")
	}
	return &CountingEnv{EpisodeLen: episodeLen, StepReward: stepReward}
}

func (e *CountingEnv) ObservationSpace() space.Space[int] {
	return space.NewDiscrete(e.EpisodeLen + 1)
}

func (e *CountingEnv) ActionSpace() space.Space[int] {
	return space.NewDiscrete(2)
}

func (e *CountingEnv) Batched() bool {
	return false
}

func (e *CountingEnv) Reset() env.Step[int] {
	e.t = 0
	e.ended = false
	return env.Step[int]{Kind: env.First, Observation: 0, Reward: 0}
}

func (e *CountingEnv) Step(action int) env.Step[int] {
	if !e.ActionSpace().Contains(action) {
		panic(fmt.Sprintf("testkit: action %d outside action space", action))
	}
	if e.ended {
		return e.Reset()
	}
	e.t++
	kind := env.Transition
	if e.t >= e.EpisodeLen {
		kind = env.Last
		e.ended = true
	}
	return env.Step[int]{Kind: kind, Observation: e.t, Reward: e.StepReward}
}

func (e *CountingEnv) Copy() env.Environment[int, int] {
	copied := *e
	return &copied
}

// VectorEnv is a deterministic environment with float vector observations,
// for exercising Box spaces and batched float stacking. The observation is
// [t, offset] and episodes last EpisodeLen steps.
type VectorEnv struct {
	EpisodeLen int
	Offset     float64

	t     int
	ended bool
}

var _ env.Environment[[]float64, int] = (*VectorEnv)(nil)

func NewVectorEnv(episodeLen int, offset float64) *VectorEnv {
	if episodeLen <= 0 {
		panic("testkit: episode length must be positive")
	}
	return &VectorEnv{EpisodeLen: episodeLen, Offset: offset}
}

func (e *VectorEnv) ObservationSpace() space.Space[[]float64] {
	high := float64(e.EpisodeLen)
	return space.NewBox([]float64{0, -1e9}, []float64{high, 1e9})
}

func (e *VectorEnv) ActionSpace() space.Space[int] {
	return space.NewDiscrete(2)
}

func (e *VectorEnv) Batched() bool {
	return false
}

func (e *VectorEnv) Reset() env.Step[[]float64] {
	e.t = 0
	e.ended = false
	return env.Step[[]float64]{Kind: env.First, Observation: []float64{0, e.Offset}}
}

func (e *VectorEnv) Step(action int) env.Step[[]float64] {
	if !e.ActionSpace().Contains(action) {
		panic(fmt.Sprintf("testkit: action %d outside action space", action))
	}
	if e.ended {
		return e.Reset()
	}
	e.t++
	kind := env.Transition
	if e.t >= e.EpisodeLen {
		kind = env.Last
		e.ended = true
	}
	return env.Step[[]float64]{
		Kind:        kind,
		Observation: []float64{float64(e.t), e.Offset},
		Reward:      1,
	}
}

func (e *VectorEnv) Copy() env.Environment[[]float64, int] {
	copied := *e
	return &copied
}

// ConstPolicy always selects the same action. Stateless.
type ConstPolicy[O any] struct {
	ActionValue int
}

var _ policy.Policy[int, int, policy.NoState] = (*ConstPolicy[int])(nil)

func (p *ConstPolicy[O]) Batched() bool                            { return false }
func (p *ConstPolicy[O]) State() policy.NoState                    { return policy.NoState{} }
func (p *ConstPolicy[O]) SetState(policy.NoState)                  {}
func (p *ConstPolicy[O]) Action(_ *rand.Rand, _ env.Step[O]) int   { return p.ActionValue }
func (p *ConstPolicy[O]) Copy() policy.Policy[O, int, policy.NoState] {
	return &ConstPolicy[O]{ActionValue: p.ActionValue}
}

// Recorder is a listener that retains every trajectory it sees, in delivery
// order.
type Recorder[O, A, S any] struct {
	Trajectories []driver.Trajectory[O, A, S]
}

var _ driver.Listener[int, int, policy.NoState] = (*Recorder[int, int, policy.NoState])(nil)

func (r *Recorder[O, A, S]) OnTrajectory(t driver.Trajectory[O, A, S]) {
	r.Trajectories = append(r.Trajectories, t)
}

// Steps flattens the recorded trajectories into per-instance records for
// instance i, in iteration order.
func (r *Recorder[O, A, S]) Steps(i int) []driver.TrajectoryStep[O, A, S] {
	out := make([]driver.TrajectoryStep[O, A, S], 0, len(r.Trajectories))
	for _, t := range r.Trajectories {
		out = append(out, t.At(i))
	}
	return out
}
