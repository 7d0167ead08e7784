package env

import (
	"fmt"

	"rollout/pkg/space"
)

// Vectorized turns n independent copies of a per-instance environment into
// one batched environment stepping all instances per call. Instance i always
// maps to batch index i.
type Vectorized[O, A any] struct {
	instances []Environment[O, A]
}

var _ BatchedEnvironment[int, int] = (*Vectorized[int, int])(nil)

// Vectorize builds a batched environment from n copies of proto. proto must
// itself be unbatched and n positive.
func Vectorize[O, A any](proto Environment[O, A], n int) *Vectorized[O, A] {
	if n <= 0 {
		panic("env: vectorize needs a positive batch size")
	}
	if proto.Batched() {
		panic("env: vectorize needs a per-instance environment")
	}
	instances := make([]Environment[O, A], n)
	for i := range instances {
		instances[i] = proto.Copy()
	}
	return &Vectorized[O, A]{instances: instances}
}

func (v *Vectorized[O, A]) ObservationSpace() space.Space[O] {
	return v.instances[0].ObservationSpace()
}

func (v *Vectorized[O, A]) ActionSpace() space.Space[A] {
	return v.instances[0].ActionSpace()
}

func (v *Vectorized[O, A]) Batched() bool {
	return true
}

func (v *Vectorized[O, A]) BatchSize() int {
	return len(v.instances)
}

// Reset panics; use ResetBatch on a batched environment.
func (v *Vectorized[O, A]) Reset() Step[O] {
	panic("env: per-instance Reset on a batched environment; use ResetBatch")
}

// Step panics; use StepBatch on a batched environment.
func (v *Vectorized[O, A]) Step(A) Step[O] {
	panic("env: per-instance Step on a batched environment; use StepBatch")
}

func (v *Vectorized[O, A]) ResetBatch() StepBatch[O] {
	batch := newStepBatch[O](len(v.instances))
	for i, inst := range v.instances {
		batch.set(i, inst.Reset())
	}
	return batch
}

func (v *Vectorized[O, A]) StepBatch(actions []A) StepBatch[O] {
	if len(actions) != len(v.instances) {
		panic(fmt.Sprintf("env: vectorized step got %d actions for %d instances",
			len(actions), len(v.instances)))
	}
	batch := newStepBatch[O](len(v.instances))
	for i, inst := range v.instances {
		batch.set(i, inst.Step(actions[i]))
	}
	return batch
}

func (v *Vectorized[O, A]) Copy() Environment[O, A] {
	instances := make([]Environment[O, A], len(v.instances))
	for i, inst := range v.instances {
		instances[i] = inst.Copy()
	}
	return &Vectorized[O, A]{instances: instances}
}

func newStepBatch[O any](n int) StepBatch[O] {
	return StepBatch[O]{
		Kinds:        make([]StepKind, n),
		Observations: make([]O, n),
		Rewards:      make([]float64, n),
	}
}

func (b StepBatch[O]) set(i int, s Step[O]) {
	b.Kinds[i] = s.Kind
	b.Observations[i] = s.Observation
	b.Rewards[i] = s.Reward
}
