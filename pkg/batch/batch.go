// Package batch implements the stacking contract: conversion between a list
// of per-instance values and one batched representation with a leading batch
// axis. Composite structures stack field-wise; the round-trip law
// Unstack(Stack(xs)) == xs holds for any non-empty list of equal-shaped
// elements, and shape disagreements fail with a *ShapeError.
package batch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"rollout/pkg/env"
)

// ShapeError reports a batching shape or length mismatch. It is a
// programming error; nothing retries it.
type ShapeError struct {
	Field string
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("batch: %s shape mismatch: want %d, got %d", e.Field, e.Want, e.Got)
}

// Steps stacks per-instance steps into one StepBatch field-wise. The input
// must be non-empty.
func Steps[O any](steps []env.Step[O]) (env.StepBatch[O], error) {
	if len(steps) == 0 {
		return env.StepBatch[O]{}, &ShapeError{Field: "steps", Want: 1, Got: 0}
	}
	batch := env.StepBatch[O]{
		Kinds:        make([]env.StepKind, len(steps)),
		Observations: make([]O, len(steps)),
		Rewards:      make([]float64, len(steps)),
	}
	for i, s := range steps {
		batch.Kinds[i] = s.Kind
		batch.Observations[i] = s.Observation
		batch.Rewards[i] = s.Reward
	}
	return batch, nil
}

// UnstackSteps splits a StepBatch back into per-instance steps, verifying
// that the field lengths agree.
func UnstackSteps[O any](b env.StepBatch[O]) ([]env.Step[O], error) {
	n := len(b.Kinds)
	if len(b.Observations) != n {
		return nil, &ShapeError{Field: "observations", Want: n, Got: len(b.Observations)}
	}
	if len(b.Rewards) != n {
		return nil, &ShapeError{Field: "rewards", Want: n, Got: len(b.Rewards)}
	}
	steps := make([]env.Step[O], n)
	for i := range steps {
		steps[i] = b.At(i)
	}
	return steps, nil
}

// Matrix stacks equal-length float vectors into a dense matrix whose leading
// axis is the batch axis (row i holds instance i).
func Matrix(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, &ShapeError{Field: "rows", Want: 1, Got: 0}
	}
	dim := len(rows[0])
	if dim == 0 {
		return nil, &ShapeError{Field: "row 0", Want: 1, Got: 0}
	}
	data := make([]float64, 0, len(rows)*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, &ShapeError{Field: fmt.Sprintf("row %d", i), Want: dim, Got: len(row)}
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), dim, data), nil
}

// Rows unstacks a matrix into per-instance vectors, copying row data.
func Rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		row := make([]float64, c)
		for j := range row {
			row[j] = m.At(i, j)
		}
		rows[i] = row
	}
	return rows
}

// Ints copies an int slice; the batched representation of independent scalar
// values is the slice itself.
func Ints(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	return out
}

// Floats copies a float slice.
func Floats(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
