// Package demo provides small example environments used by the command-line
// runner and by tests that need a concrete dynamics model. The environments
// terminate on their own failure conditions only; wrap them with
// env.NewTimeLimit to cap episode length.
package demo

import (
	"math"
	"math/rand/v2"

	"rollout/pkg/env"
	"rollout/pkg/space"
)

// Classic cart-pole constants.
const (
	gravity        = 9.81
	massCart       = 1.0
	massPole       = 0.1
	totalMass      = massCart + massPole
	poleLength     = 0.5 // half the pole length
	poleMassLen    = massPole * poleLength
	forceMag       = 10.0
	tau            = 0.02 // seconds between state updates
	xThreshold     = 2.4
	thetaThreshold = 12.0 * math.Pi / 180.0
)

// CartPole is the classic pole-balancing control problem. Observations are
// [x, xDot, theta, thetaDot]; actions are 0 (push left) and 1 (push right).
// Reward is 1.0 for every transition while the pole stays within the failure
// thresholds, 0.0 on the transition that leaves them.
type CartPole struct {
	rng   *rand.Rand
	seed  uint64
	state [4]float64
	done  bool
	fresh bool

	obsSpace    space.Space[[]float64]
	actionSpace space.Space[int]
}

var _ env.Environment[[]float64, int] = (*CartPole)(nil)

// NewCartPole returns a cart-pole environment seeded with seed.
func NewCartPole(seed uint64) *CartPole {
	low := []float64{-xThreshold * 2, math.Inf(-1), -thetaThreshold * 2, math.Inf(-1)}
	high := []float64{xThreshold * 2, math.Inf(1), thetaThreshold * 2, math.Inf(1)}
	return &CartPole{
		rng:         rand.New(rand.NewPCG(seed, 0)),
		seed:        seed,
		fresh:       true,
		obsSpace:    space.NewBox(low, high),
		actionSpace: space.NewDiscrete(2),
	}
}

func (c *CartPole) ObservationSpace() space.Space[[]float64] { return c.obsSpace }
func (c *CartPole) ActionSpace() space.Space[int]            { return c.actionSpace }
func (c *CartPole) Batched() bool                            { return false }

// Reset draws a fresh state uniformly from [-0.05, 0.05) in every component.
func (c *CartPole) Reset() env.Step[[]float64] {
	for i := range c.state {
		c.state[i] = c.rng.Float64()*0.1 - 0.05
	}
	c.done = false
	c.fresh = false
	return env.Step[[]float64]{
		Kind:        env.First,
		Observation: c.observation(),
		Reward:      0,
	}
}

// Step advances the dynamics by one tick of Euler integration. Stepping a
// finished or never-reset environment resets it first.
func (c *CartPole) Step(action int) env.Step[[]float64] {
	if !c.actionSpace.Contains(action) {
		panic("demo: cart-pole action out of range")
	}
	if c.done || c.fresh {
		return c.Reset()
	}

	force := -forceMag
	if action == 1 {
		force = forceMag
	}

	x, xDot, theta, thetaDot := c.state[0], c.state[1], c.state[2], c.state[3]
	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)

	temp := (force + poleMassLen*thetaDot*thetaDot*sinTheta) / totalMass
	thetaAcc := (gravity*sinTheta - cosTheta*temp) /
		(poleLength * (4.0/3.0 - massPole*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLen*thetaAcc*cosTheta/totalMass

	x += tau * xDot
	xDot += tau * xAcc
	theta += tau * thetaDot
	thetaDot += tau * thetaAcc
	c.state = [4]float64{x, xDot, theta, thetaDot}

	failed := x < -xThreshold || x > xThreshold ||
		theta < -thetaThreshold || theta > thetaThreshold

	step := env.Step[[]float64]{
		Kind:        env.Transition,
		Observation: c.observation(),
		Reward:      1.0,
	}
	if failed {
		c.done = true
		step.Kind = env.Last
		step.Reward = 0.0
	}
	return step
}

// Copy returns an independent cart-pole with the same state and a derived
// random stream, so the copy and the original diverge from each other but
// remain reproducible from the seed.
func (c *CartPole) Copy() env.Environment[[]float64, int] {
	clone := *c
	clone.rng = rand.New(rand.NewPCG(c.seed, c.rng.Uint64()))
	return &clone
}

func (c *CartPole) observation() []float64 {
	obs := make([]float64, 4)
	copy(obs, c.state[:])
	return obs
}
