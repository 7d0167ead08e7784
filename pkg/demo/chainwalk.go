package demo

import (
	"rollout/pkg/env"
	"rollout/pkg/space"
)

// ChainWalk is a deterministic chain of n states. The agent starts in the
// middle, action 0 moves left and action 1 moves right. Reaching the rightmost
// state ends the episode with reward 1.0; reaching the leftmost state ends it
// with reward 0.0. All other transitions pay a small step cost so shorter
// paths score higher.
type ChainWalk struct {
	n        int
	stepCost float64
	pos      int
	done     bool
	fresh    bool

	obsSpace    space.Space[int]
	actionSpace space.Space[int]
}

var _ env.Environment[int, int] = (*ChainWalk)(nil)

// NewChainWalk returns a chain with n states. n must be at least 3 so the
// start state is not terminal.
func NewChainWalk(n int, stepCost float64) *ChainWalk {
	if n < 3 {
		panic("demo: chain walk needs at least 3 states")
	}
	return &ChainWalk{
		n:           n,
		stepCost:    stepCost,
		fresh:       true,
		obsSpace:    space.NewDiscrete(n),
		actionSpace: space.NewDiscrete(2),
	}
}

func (c *ChainWalk) ObservationSpace() space.Space[int] { return c.obsSpace }
func (c *ChainWalk) ActionSpace() space.Space[int]      { return c.actionSpace }
func (c *ChainWalk) Batched() bool                      { return false }

func (c *ChainWalk) Reset() env.Step[int] {
	c.pos = c.n / 2
	c.done = false
	c.fresh = false
	return env.Step[int]{Kind: env.First, Observation: c.pos}
}

func (c *ChainWalk) Step(action int) env.Step[int] {
	if !c.actionSpace.Contains(action) {
		panic("demo: chain walk action out of range")
	}
	if c.done || c.fresh {
		return c.Reset()
	}
	if action == 0 {
		c.pos--
	} else {
		c.pos++
	}
	step := env.Step[int]{Kind: env.Transition, Observation: c.pos, Reward: -c.stepCost}
	switch c.pos {
	case 0:
		c.done = true
		step.Kind = env.Last
		step.Reward = 0.0
	case c.n - 1:
		c.done = true
		step.Kind = env.Last
		step.Reward = 1.0
	}
	return step
}

func (c *ChainWalk) Copy() env.Environment[int, int] {
	clone := *c
	return &clone
}
