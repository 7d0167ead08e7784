package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollout/pkg/env"
)

func TestStepsRoundTrip(t *testing.T) {
	steps := []env.Step[[]float64]{
		{Kind: env.First, Observation: []float64{0, 0}, Reward: 0},
		{Kind: env.Transition, Observation: []float64{1, -1}, Reward: 0.5},
		{Kind: env.Last, Observation: []float64{2, -2}, Reward: 1},
	}

	stacked, err := Steps(steps)
	require.NoError(t, err)
	assert.Equal(t, 3, stacked.Len())
	assert.Equal(t, []env.StepKind{env.First, env.Transition, env.Last}, stacked.Kinds)

	unstacked, err := UnstackSteps(stacked)
	require.NoError(t, err)
	assert.Equal(t, steps, unstacked)
}

func TestStepsEmptyInput(t *testing.T) {
	_, err := Steps[int](nil)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestUnstackStepsFieldMismatch(t *testing.T) {
	b := env.StepBatch[int]{
		Kinds:        []env.StepKind{env.First, env.Transition},
		Observations: []int{1},
		Rewards:      []float64{0, 0},
	}
	_, err := UnstackSteps(b)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "observations", shapeErr.Field)
}

func TestMatrixRoundTrip(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := Matrix(rows)
	require.NoError(t, err)

	r, c := m.Dims()
	assert.Equal(t, 2, r, "leading axis is the batch axis")
	assert.Equal(t, 3, c)
	assert.Equal(t, rows, Rows(m))
}

func TestMatrixRaggedInput(t *testing.T) {
	_, err := Matrix([][]float64{{1, 2}, {1, 2, 3}})
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)
}

func TestScalarHelpersCopy(t *testing.T) {
	in := []int{3, 1, 4}
	out := Ints(in)
	assert.Equal(t, in, out)
	out[0] = 99
	assert.Equal(t, 3, in[0], "stacked scalars do not alias the input")

	fin := []float64{1.5, 2.5}
	fout := Floats(fin)
	assert.Equal(t, fin, fout)
	fout[1] = 0
	assert.Equal(t, 2.5, fin[1])
}
