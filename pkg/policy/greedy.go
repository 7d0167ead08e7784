package policy

import (
	"math/rand/v2"

	"rollout/pkg/distribution"
	"rollout/pkg/env"
)

// Greedy wraps any probabilistic policy and always takes the mode of its
// action distribution. As a probabilistic policy itself it reports a
// degenerate Deterministic distribution concentrated on that mode.
type Greedy[O, A, S any] struct {
	inner Probabilistic[O, A, S]
}

var _ Probabilistic[int, int, NoState] = (*Greedy[int, int, NoState])(nil)

// NewGreedy wraps inner with greedy action selection.
func NewGreedy[O, A, S any](inner Probabilistic[O, A, S]) *Greedy[O, A, S] {
	return &Greedy[O, A, S]{inner: inner}
}

func (p *Greedy[O, A, S]) Batched() bool {
	return p.inner.Batched()
}

func (p *Greedy[O, A, S]) State() S {
	return p.inner.State()
}

func (p *Greedy[O, A, S]) SetState(state S) {
	p.inner.SetState(state)
}

func (p *Greedy[O, A, S]) Action(rng *rand.Rand, step env.Step[O]) A {
	return p.inner.ActionDistribution(step).Mode(rng)
}

func (p *Greedy[O, A, S]) ActionDistribution(step env.Step[O]) distribution.Distribution[A] {
	mode := p.inner.ActionDistribution(step).Mode(nil)
	return distribution.NewDeterministicFunc(mode, nil)
}

func (p *Greedy[O, A, S]) Copy() Policy[O, A, S] {
	inner, ok := p.inner.Copy().(Probabilistic[O, A, S])
	if !ok {
		panic("policy: greedy inner copy lost its action distribution")
	}
	return &Greedy[O, A, S]{inner: inner}
}
