package policy

import (
	"math/rand/v2"

	"rollout/pkg/distribution"
	"rollout/pkg/env"
	"rollout/pkg/space"
)

// Random ignores the observation and always samples the action space's
// default distribution. It is stateless.
type Random[O, A any] struct {
	dist distribution.Distribution[A]
}

var _ Probabilistic[int, int, NoState] = (*Random[int, int])(nil)

// NewRandom builds a random policy over actionSpace.
func NewRandom[O, A any](actionSpace space.Space[A]) *Random[O, A] {
	return &Random[O, A]{dist: actionSpace.Distribution()}
}

func (p *Random[O, A]) Batched() bool {
	return false
}

func (p *Random[O, A]) State() NoState {
	return NoState{}
}

func (p *Random[O, A]) SetState(NoState) {}

func (p *Random[O, A]) Action(rng *rand.Rand, _ env.Step[O]) A {
	return p.dist.Sample(rng)
}

func (p *Random[O, A]) ActionDistribution(_ env.Step[O]) distribution.Distribution[A] {
	return p.dist
}

func (p *Random[O, A]) Copy() Policy[O, A, NoState] {
	return &Random[O, A]{dist: p.dist}
}
