package policy

import (
	"math/rand/v2"

	"rollout/pkg/distribution"
	"rollout/pkg/env"
)

// Network computes an action distribution from an observation and the
// current recurrent state, returning the updated state. Implementations must
// not mutate the state they are given.
type Network[O, A, S any] func(observation O, state S) (distribution.Distribution[A], S)

// Actor is a learned policy: it computes its action distribution from the
// observation through a Network and samples from it. Recurrent state is
// threaded through each Action call.
type Actor[O, A, S any] struct {
	network   Network[O, A, S]
	state     S
	cloneFunc func(S) S
}

var _ Probabilistic[[]float64, int, NoState] = (*Actor[[]float64, int, NoState])(nil)

// NewActor builds an actor policy from a network and its initial state.
// clone deep-copies a state for Copy; nil means plain value copy, which is
// only correct for states without reference fields.
func NewActor[O, A, S any](network Network[O, A, S], initial S, clone func(S) S) *Actor[O, A, S] {
	if clone == nil {
		clone = func(s S) S { return s }
	}
	return &Actor[O, A, S]{network: network, state: initial, cloneFunc: clone}
}

func (p *Actor[O, A, S]) Batched() bool {
	return false
}

func (p *Actor[O, A, S]) State() S {
	return p.state
}

func (p *Actor[O, A, S]) SetState(state S) {
	p.state = state
}

func (p *Actor[O, A, S]) Action(rng *rand.Rand, step env.Step[O]) A {
	dist, next := p.network(step.Observation, p.state)
	p.state = next
	return dist.Sample(rng)
}

// ActionDistribution runs the network without committing the state update.
func (p *Actor[O, A, S]) ActionDistribution(step env.Step[O]) distribution.Distribution[A] {
	dist, _ := p.network(step.Observation, p.state)
	return dist
}

func (p *Actor[O, A, S]) Copy() Policy[O, A, S] {
	return &Actor[O, A, S]{
		network:   p.network,
		state:     p.cloneFunc(p.state),
		cloneFunc: p.cloneFunc,
	}
}
