package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollout/pkg/env"
	"rollout/pkg/testkit"
)

func TestStepKindString(t *testing.T) {
	assert.Equal(t, "first", env.First.String())
	assert.Equal(t, "transition", env.Transition.String())
	assert.Equal(t, "last", env.Last.String())
}

func TestAutoResetSequencing(t *testing.T) {
	e := testkit.NewCountingEnv(3, 1)
	require.Equal(t, env.First, e.Reset().Kind)

	// A Last step is always immediately followed by a First step,
	// regardless of the action passed.
	for episode := 0; episode < 3; episode++ {
		for i := 0; i < 2; i++ {
			assert.Equal(t, env.Transition, e.Step(0).Kind)
		}
		assert.Equal(t, env.Last, e.Step(0).Kind)
		assert.Equal(t, env.First, e.Step(1).Kind)
	}
}

func TestInvalidActionPanics(t *testing.T) {
	e := testkit.NewCountingEnv(3, 1)
	e.Reset()
	assert.Panics(t, func() { e.Step(7) })
}

func TestCopyIndependence(t *testing.T) {
	e := testkit.NewCountingEnv(5, 1)
	e.Reset()
	e.Step(0)

	clone := e.Copy()
	e.Step(0)
	e.Step(0)

	// The copy continues from where it was taken, unaffected by the
	// original's progress.
	step := clone.Step(0)
	assert.Equal(t, env.Transition, step.Kind)
	assert.Equal(t, 2, step.Observation)
	assert.Equal(t, 3, clone.Step(0).Observation)
}

func TestStepBatchAccessors(t *testing.T) {
	b := env.StepBatch[int]{
		Kinds:        []env.StepKind{env.First, env.Last, env.Last},
		Observations: []int{0, 5, 9},
		Rewards:      []float64{0, 1, 2},
	}
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 2, b.CountLast())
	assert.Equal(t, env.Step[int]{Kind: env.Last, Observation: 5, Reward: 1}, b.At(1))
}

func TestTimeLimitExactness(t *testing.T) {
	// Inner episodes are long enough that only the limit terminates.
	w := env.NewTimeLimit[int, int](testkit.NewCountingEnv(100, 1), 5)
	require.Equal(t, env.First, w.Reset().Kind)

	for i := 0; i < 4; i++ {
		assert.Equal(t, env.Transition, w.Step(0).Kind, "step %d", i+1)
	}
	assert.Equal(t, env.Last, w.Step(0).Kind, "5th step hits the limit")

	// The 6th call is redirected to Reset; the stale action is dropped.
	assert.Equal(t, env.First, w.Step(1).Kind)

	// The counter restarted with the new episode.
	for i := 0; i < 4; i++ {
		assert.Equal(t, env.Transition, w.Step(0).Kind)
	}
	assert.Equal(t, env.Last, w.Step(0).Kind)
}

func TestTimeLimitPassesNaturalTermination(t *testing.T) {
	w := env.NewTimeLimit[int, int](testkit.NewCountingEnv(2, 1), 5)
	w.Reset()
	assert.Equal(t, env.Transition, w.Step(0).Kind)
	assert.Equal(t, env.Last, w.Step(0).Kind, "inner episode ends before the limit")
	assert.Equal(t, env.First, w.Step(0).Kind, "inner auto-reset flows through")

	// The limit still applies to the new episode from its own start.
	assert.Equal(t, env.Transition, w.Step(0).Kind)
	assert.Equal(t, env.Last, w.Step(0).Kind)
}

func TestTimeLimitRequiresPositiveLimit(t *testing.T) {
	assert.Panics(t, func() { env.NewTimeLimit[int, int](testkit.NewCountingEnv(3, 1), 0) })
}

func TestActionRepeatRewardAccumulation(t *testing.T) {
	w := env.NewActionRepeat[int, int](testkit.NewCountingEnv(100, 1), 3)
	w.Reset()
	step := w.Step(0)
	assert.Equal(t, env.Transition, step.Kind)
	assert.Equal(t, 3.0, step.Reward)
	assert.Equal(t, 3, step.Observation, "observation is the last executed repeat's")
}

func TestActionRepeatEarlyStop(t *testing.T) {
	w := env.NewActionRepeat[int, int](testkit.NewCountingEnv(2, 1), 3)
	w.Reset()
	step := w.Step(0)
	assert.Equal(t, env.Last, step.Kind, "2nd of 3 repeats ended the episode")
	assert.Equal(t, 2.0, step.Reward, "only executed repeats contribute reward")
}

func TestActionRepeatRequiresPositiveCount(t *testing.T) {
	assert.Panics(t, func() { env.NewActionRepeat[int, int](testkit.NewCountingEnv(3, 1), 0) })
}

func TestRunStatisticsCounters(t *testing.T) {
	w := env.NewRunStatistics[int, int](testkit.NewCountingEnv(5, 1))

	w.Reset()
	// Two full episodes of 5 steps each: 10 non-First steps, 2 Last steps.
	for episode := 0; episode < 2; episode++ {
		for i := 0; i < 5; i++ {
			w.Step(0)
		}
		w.Step(0) // auto-reset First
	}

	assert.Equal(t, 2, w.NumEpisodes())
	assert.Equal(t, 10, w.NumTotalSteps())
	assert.Equal(t, 3, w.NumResets(), "initial reset plus two auto-resets")
	assert.Equal(t, 0, w.NumEpisodeSteps(), "fresh episode just started")
}

func TestRunStatisticsDoesNotAlterSteps(t *testing.T) {
	plain := testkit.NewCountingEnv(3, 2.5)
	wrapped := env.NewRunStatistics[int, int](testkit.NewCountingEnv(3, 2.5))

	assert.Equal(t, plain.Reset(), wrapped.Reset())
	for i := 0; i < 7; i++ {
		assert.Equal(t, plain.Step(0), wrapped.Step(0))
	}
}

func TestWrapperComposition(t *testing.T) {
	// TimeLimit wrapping ActionRepeat wrapping RunStatistics.
	stats := env.NewRunStatistics[int, int](testkit.NewCountingEnv(100, 1))
	repeat := env.NewActionRepeat[int, int](stats, 2)
	limited := env.NewTimeLimit[int, int](repeat, 3)

	limited.Reset()
	for i := 0; i < 2; i++ {
		assert.Equal(t, env.Transition, limited.Step(0).Kind)
	}
	step := limited.Step(0)
	assert.Equal(t, env.Last, step.Kind, "outer limit fires after 3 wrapped steps")
	assert.Equal(t, 2.0, step.Reward, "inner repeat still accumulates")

	// The inner environment saw 2 raw steps per wrapped step.
	assert.Equal(t, 6, stats.NumTotalSteps())
	assert.Equal(t, env.First, limited.Step(0).Kind)
}

func TestVectorizedEnvironment(t *testing.T) {
	v := env.Vectorize[int, int](testkit.NewCountingEnv(2, 1), 3)
	require.True(t, v.Batched())
	require.Equal(t, 3, v.BatchSize())

	first := v.ResetBatch()
	assert.Equal(t, []env.StepKind{env.First, env.First, env.First}, first.Kinds)

	v.StepBatch([]int{0, 0, 0})
	last := v.StepBatch([]int{0, 0, 0})
	assert.Equal(t, 3, last.CountLast(), "instances advance in lockstep")

	assert.Panics(t, func() { v.Step(0) })
	assert.Panics(t, func() { v.StepBatch([]int{0}) }, "batch size mismatch is fatal")
}
