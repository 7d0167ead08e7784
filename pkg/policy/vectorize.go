package policy

import (
	"fmt"
	"math/rand/v2"

	"rollout/pkg/env"
)

// Vectorized turns n independent copies of a per-instance policy into one
// batched policy. Instance i always serves batch index i.
type Vectorized[O, A, S any] struct {
	instances []Policy[O, A, S]
}

var _ BatchedPolicy[int, int, NoState] = (*Vectorized[int, int, NoState])(nil)

// Vectorize builds a batched policy from n copies of proto. proto must
// itself be unbatched and n positive.
func Vectorize[O, A, S any](proto Policy[O, A, S], n int) *Vectorized[O, A, S] {
	if n <= 0 {
		panic("policy: vectorize needs a positive batch size")
	}
	if proto.Batched() {
		panic("policy: vectorize needs a per-instance policy")
	}
	instances := make([]Policy[O, A, S], n)
	for i := range instances {
		instances[i] = proto.Copy()
	}
	return &Vectorized[O, A, S]{instances: instances}
}

func (v *Vectorized[O, A, S]) Batched() bool {
	return true
}

func (v *Vectorized[O, A, S]) BatchSize() int {
	return len(v.instances)
}

// State panics; a vectorized policy has one state per instance, see States.
func (v *Vectorized[O, A, S]) State() S {
	panic("policy: State on a vectorized policy; use States")
}

// SetState panics; per-instance states are owned by the instances.
func (v *Vectorized[O, A, S]) SetState(S) {
	panic("policy: SetState on a vectorized policy")
}

func (v *Vectorized[O, A, S]) States() []S {
	states := make([]S, len(v.instances))
	for i, inst := range v.instances {
		states[i] = inst.State()
	}
	return states
}

// Action panics; use ActionBatch on a batched policy.
func (v *Vectorized[O, A, S]) Action(*rand.Rand, env.Step[O]) A {
	panic("policy: per-instance Action on a batched policy; use ActionBatch")
}

func (v *Vectorized[O, A, S]) ActionBatch(rng *rand.Rand, steps env.StepBatch[O]) []A {
	if steps.Len() != len(v.instances) {
		panic(fmt.Sprintf("policy: vectorized action got %d steps for %d instances",
			steps.Len(), len(v.instances)))
	}
	actions := make([]A, len(v.instances))
	for i, inst := range v.instances {
		actions[i] = inst.Action(rng, steps.At(i))
	}
	return actions
}

func (v *Vectorized[O, A, S]) Copy() Policy[O, A, S] {
	instances := make([]Policy[O, A, S], len(v.instances))
	for i, inst := range v.instances {
		instances[i] = inst.Copy()
	}
	return &Vectorized[O, A, S]{instances: instances}
}
