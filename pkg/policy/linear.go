package policy

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"rollout/pkg/batch"
	"rollout/pkg/distribution"
	"rollout/pkg/env"
)

// LinearSoftmax builds a stateless actor whose network is a single linear
// layer over a float observation followed by a softmax over discrete
// actions. weights is numActions x obsDim, bias has one entry per action.
func LinearSoftmax(weights *mat.Dense, bias []float64) *Actor[[]float64, int, NoState] {
	numActions, obsDim := weights.Dims()
	if len(bias) != numActions {
		panic("policy: linear softmax bias length must match the action count")
	}
	network := func(obs []float64, state NoState) (distribution.Distribution[int], NoState) {
		if len(obs) != obsDim {
			panic(fmt.Sprintf("policy: linear softmax got observation of dim %d, want %d",
				len(obs), obsDim))
		}
		logits := make([]float64, numActions)
		for a := 0; a < numActions; a++ {
			logits[a] = bias[a] + mat.Dot(weights.RowView(a), mat.NewVecDense(obsDim, obs))
		}
		return distribution.NewCategoricalLogits(logits), state
	}
	return NewActor(network, NoState{}, nil)
}

// BatchedLinearSoftmax is the vectorized form of LinearSoftmax: one matrix
// multiply computes the logits of the whole batch.
type BatchedLinearSoftmax struct {
	weights   *mat.Dense // numActions x obsDim
	bias      []float64
	batchSize int
}

var _ BatchedPolicy[[]float64, int, NoState] = (*BatchedLinearSoftmax)(nil)

// NewBatchedLinearSoftmax builds a batched linear-softmax policy for a fixed
// batch size.
func NewBatchedLinearSoftmax(weights *mat.Dense, bias []float64, batchSize int) *BatchedLinearSoftmax {
	numActions, _ := weights.Dims()
	if len(bias) != numActions {
		panic("policy: linear softmax bias length must match the action count")
	}
	if batchSize <= 0 {
		panic("policy: batch size must be positive")
	}
	return &BatchedLinearSoftmax{weights: weights, bias: bias, batchSize: batchSize}
}

func (p *BatchedLinearSoftmax) Batched() bool {
	return true
}

func (p *BatchedLinearSoftmax) BatchSize() int {
	return p.batchSize
}

func (p *BatchedLinearSoftmax) State() NoState {
	return NoState{}
}

func (p *BatchedLinearSoftmax) SetState(NoState) {}

func (p *BatchedLinearSoftmax) States() []NoState {
	return make([]NoState, p.batchSize)
}

// Action panics; use ActionBatch on a batched policy.
func (p *BatchedLinearSoftmax) Action(*rand.Rand, env.Step[[]float64]) int {
	panic("policy: per-instance Action on a batched policy; use ActionBatch")
}

func (p *BatchedLinearSoftmax) ActionBatch(rng *rand.Rand, steps env.StepBatch[[]float64]) []int {
	obs, err := batch.Matrix(steps.Observations)
	if err != nil {
		panic(fmt.Sprintf("policy: ragged observation batch: %v", err))
	}

	// logits = obs * weights^T, one row per instance.
	var logits mat.Dense
	logits.Mul(obs, p.weights.T())

	actions := make([]int, steps.Len())
	row := make([]float64, len(p.bias))
	for i := range actions {
		for a := range row {
			row[a] = logits.At(i, a) + p.bias[a]
		}
		actions[i] = distribution.NewCategoricalLogits(row).Sample(rng)
	}
	return actions
}

func (p *BatchedLinearSoftmax) Copy() Policy[[]float64, int, NoState] {
	return &BatchedLinearSoftmax{
		weights:   mat.DenseCopyOf(p.weights),
		bias:      append([]float64(nil), p.bias...),
		batchSize: p.batchSize,
	}
}
