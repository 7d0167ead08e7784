// Package metrics provides Prometheus-based metrics recording for rollout
// runs. The Recorder is a driver listener; registering it on a driver
// exports step/episode counters and per-episode reward and length
// distributions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rollout/pkg/driver"
)

// Recorder records rollout metrics for one run.
type Recorder[O, A, S any] struct {
	runID string

	stepsTotal    *prometheus.CounterVec
	episodesTotal *prometheus.CounterVec
	episodeReward *prometheus.HistogramVec
	episodeLength *prometheus.HistogramVec

	// Per env instance accumulation for the episode in flight.
	rewards []float64
	lengths []int
}

var _ driver.Listener[int, int, struct{}] = (*Recorder[int, int, struct{}])(nil)

// NewRecorder creates a metrics recorder registering with reg.
// prometheus.DefaultRegisterer is the usual choice; tests pass their own
// registry.
func NewRecorder[O, A, S any](reg prometheus.Registerer, runID string) *Recorder[O, A, S] {
	factory := promauto.With(reg)
	return &Recorder[O, A, S]{
		runID: runID,
		stepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollout_steps_total",
				Help: "Total number of non-boundary environment steps",
			},
			[]string{"run_id"},
		),
		episodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollout_episodes_total",
				Help: "Total number of completed episodes",
			},
			[]string{"run_id"},
		),
		episodeReward: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rollout_episode_reward",
				Help:    "Total reward per completed episode",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"run_id"},
		),
		episodeLength: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rollout_episode_length_steps",
				Help:    "Number of steps per completed episode",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
			[]string{"run_id"},
		),
	}
}

// OnTrajectory updates counters and, on episode completion, observes the
// episode histograms.
func (r *Recorder[O, A, S]) OnTrajectory(t driver.Trajectory[O, A, S]) {
	if len(r.rewards) == 0 {
		r.rewards = make([]float64, t.Len())
		r.lengths = make([]int, t.Len())
	}

	for i := 0; i < t.Len(); i++ {
		record := t.At(i)
		if record.IsBoundary() {
			continue
		}
		r.stepsTotal.WithLabelValues(r.runID).Inc()
		r.rewards[i] += record.Next.Reward
		r.lengths[i]++

		if record.IsLast() {
			r.episodesTotal.WithLabelValues(r.runID).Inc()
			r.episodeReward.WithLabelValues(r.runID).Observe(r.rewards[i])
			r.episodeLength.WithLabelValues(r.runID).Observe(float64(r.lengths[i]))
			r.rewards[i] = 0
			r.lengths[i] = 0
		}
	}
}
