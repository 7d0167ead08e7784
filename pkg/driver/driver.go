// Package driver implements the rollout engine: it repeatedly pairs policy
// action-selection with environment stepping, assembles the resulting
// trajectory records, delivers them to listeners and enforces step and
// episode budgets.
//
// Environments and policies each independently declare whether they are
// batched. The driver reconciles all four combinations through the stacking
// contract, so trajectory construction and budget accounting run through one
// code path regardless of batching mode: unbatched sides are materialized as
// batch-size independent copies, batched sides as a single shared instance,
// and per-instance values are stacked/unstacked at the boundary between the
// two styles.
package driver

import (
	"fmt"
	"math/rand/v2"

	"rollout/pkg/batch"
	"rollout/pkg/env"
	"rollout/pkg/logx"
	"rollout/pkg/policy"
)

// Options configures a Driver.
type Options struct {
	// BatchSize is the number of environment instances stepped per
	// iteration. Zero means one, unless a batched side dictates its own
	// size. When set alongside a batched environment or policy it must
	// agree with their batch size.
	BatchSize int

	// MaxSteps bounds the number of non-boundary steps across the whole
	// batch. Zero means unbounded.
	MaxSteps int

	// MaxEpisodes bounds the number of completed episodes across the whole
	// batch. Zero means unbounded.
	MaxEpisodes int

	// Seed initializes the driver's sampling stream.
	Seed uint64
}

// Driver owns the environment and policy instances for the duration of a
// Run and produces the trajectory stream. It is not safe for concurrent use.
type Driver[O, A, S any] struct {
	batchSize int

	envs       []env.Environment[O, A] // per-instance, nil when batched
	batchedEnv env.BatchedEnvironment[O, A]

	policies      []policy.Policy[O, A, S] // per-instance, nil when batched
	batchedPolicy policy.BatchedPolicy[O, A, S]

	listeners []Listener[O, A, S]

	maxSteps    int
	maxEpisodes int
	numSteps    int
	numEpisodes int

	rng *rand.Rand
	log *logx.Logger
}

// New builds a driver around one environment and one policy. Batched sides
// are shared; unbatched sides are multiplied into independent copies. Batch
// size disagreements and negative budgets are programming errors and panic.
func New[O, A, S any](e env.Environment[O, A], p policy.Policy[O, A, S], opts Options) *Driver[O, A, S] {
	if opts.MaxSteps < 0 || opts.MaxEpisodes < 0 {
		panic("driver: budgets must be non-negative")
	}

	d := &Driver[O, A, S]{
		batchSize:   opts.BatchSize,
		maxSteps:    opts.MaxSteps,
		maxEpisodes: opts.MaxEpisodes,
		rng:         rand.New(rand.NewPCG(opts.Seed, 0)),
		log:         logx.NewLogger("driver"),
	}

	if e.Batched() {
		be, ok := e.(env.BatchedEnvironment[O, A])
		if !ok {
			panic("driver: batched environment does not implement BatchedEnvironment")
		}
		if d.batchSize != 0 && d.batchSize != be.BatchSize() {
			panic(fmt.Sprintf("driver: batch size %d disagrees with environment batch size %d",
				d.batchSize, be.BatchSize()))
		}
		d.batchSize = be.BatchSize()
		d.batchedEnv = be
	}

	if p.Batched() {
		bp, ok := p.(policy.BatchedPolicy[O, A, S])
		if !ok {
			panic("driver: batched policy does not implement BatchedPolicy")
		}
		if d.batchSize != 0 && d.batchSize != bp.BatchSize() {
			panic(fmt.Sprintf("driver: batch size %d disagrees with policy batch size %d",
				d.batchSize, bp.BatchSize()))
		}
		d.batchSize = bp.BatchSize()
		d.batchedPolicy = bp
	}

	if d.batchSize == 0 {
		d.batchSize = 1
	}

	if d.batchedEnv == nil {
		d.envs = make([]env.Environment[O, A], d.batchSize)
		for i := range d.envs {
			d.envs[i] = e.Copy()
		}
	}
	if d.batchedPolicy == nil {
		d.policies = make([]policy.Policy[O, A, S], d.batchSize)
		for i := range d.policies {
			d.policies[i] = p.Copy()
		}
	}

	return d
}

// Listen registers a listener. Listeners are invoked once per iteration in
// registration order.
func (d *Driver[O, A, S]) Listen(l Listener[O, A, S]) {
	d.listeners = append(d.listeners, l)
}

// BatchSize returns the number of environment instances per iteration.
func (d *Driver[O, A, S]) BatchSize() int {
	return d.batchSize
}

// NumSteps returns the number of non-boundary steps taken so far.
func (d *Driver[O, A, S]) NumSteps() int {
	return d.numSteps
}

// NumEpisodes returns the number of episodes completed so far.
func (d *Driver[O, A, S]) NumEpisodes() int {
	return d.numEpisodes
}

// Run resets every environment instance and iterates until a budget is
// reached. Budget exhaustion is ordinary termination: Run returns the final
// steps and per-instance policy states. Shape mismatches surface as errors;
// they are programming errors and nothing retries them.
func (d *Driver[O, A, S]) Run() (env.StepBatch[O], []S, error) {
	current, err := d.resetAll()
	if err != nil {
		return env.StepBatch[O]{}, nil, fmt.Errorf("driver: reset: %w", err)
	}

	for !d.budgetReached() {
		actions, err := d.selectActions(current)
		if err != nil {
			return env.StepBatch[O]{}, nil, fmt.Errorf("driver: action selection: %w", err)
		}

		next, err := d.advance(actions)
		if err != nil {
			return env.StepBatch[O]{}, nil, fmt.Errorf("driver: step: %w", err)
		}

		trajectory := Trajectory[O, A, S]{
			Current: current,
			Next:    next,
			Actions: actions,
			States:  d.states(),
		}
		for _, l := range d.listeners {
			l.OnTrajectory(trajectory)
		}

		// Boundary steps are free: an iteration whose current step is
		// terminal only carries the auto-reset transition.
		d.numSteps += trajectory.Len() - trajectory.NumBoundary()
		d.numEpisodes += trajectory.NumEnded()
		d.log.Debug("iteration done: steps=%d episodes=%d", d.numSteps, d.numEpisodes)

		current = next
	}

	return current, d.states(), nil
}

func (d *Driver[O, A, S]) budgetReached() bool {
	if d.maxSteps > 0 && d.numSteps >= d.maxSteps {
		return true
	}
	if d.maxEpisodes > 0 && d.numEpisodes >= d.maxEpisodes {
		return true
	}
	return false
}

func (d *Driver[O, A, S]) resetAll() (env.StepBatch[O], error) {
	if d.batchedEnv != nil {
		return d.checkBatch(d.batchedEnv.ResetBatch())
	}
	steps := make([]env.Step[O], len(d.envs))
	for i, e := range d.envs {
		steps[i] = e.Reset()
	}
	return batch.Steps(steps)
}

// selectActions obtains one action per instance, stacking or unstacking
// steps as the policy's batching mode dictates.
func (d *Driver[O, A, S]) selectActions(current env.StepBatch[O]) ([]A, error) {
	if d.batchedPolicy != nil {
		actions := d.batchedPolicy.ActionBatch(d.rng, current)
		if len(actions) != d.batchSize {
			return nil, &batch.ShapeError{Field: "actions", Want: d.batchSize, Got: len(actions)}
		}
		return actions, nil
	}
	actions := make([]A, d.batchSize)
	for i, p := range d.policies {
		actions[i] = p.Action(d.rng, current.At(i))
	}
	return actions, nil
}

// advance feeds the actions to the environment side, stacking per-instance
// results into one batch.
func (d *Driver[O, A, S]) advance(actions []A) (env.StepBatch[O], error) {
	if d.batchedEnv != nil {
		return d.checkBatch(d.batchedEnv.StepBatch(actions))
	}
	steps := make([]env.Step[O], len(d.envs))
	for i, e := range d.envs {
		steps[i] = e.Step(actions[i])
	}
	return batch.Steps(steps)
}

func (d *Driver[O, A, S]) checkBatch(b env.StepBatch[O]) (env.StepBatch[O], error) {
	if b.Len() != d.batchSize {
		return env.StepBatch[O]{}, &batch.ShapeError{Field: "steps", Want: d.batchSize, Got: b.Len()}
	}
	return b, nil
}

// states returns the per-instance policy states. A batched policy owns one
// state for the whole batch and reports its per-instance view.
func (d *Driver[O, A, S]) states() []S {
	if d.batchedPolicy != nil {
		return d.batchedPolicy.States()
	}
	states := make([]S, len(d.policies))
	for i, p := range d.policies {
		states[i] = p.State()
	}
	return states
}
