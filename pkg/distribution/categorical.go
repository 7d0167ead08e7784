package distribution

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Categorical is a distribution over {0, ..., n-1} held as normalized
// log-probabilities.
type Categorical struct {
	logProbs []float64
}

var _ Distribution[int] = Categorical{}

// NewCategorical builds a Categorical from per-outcome probabilities.
// The probabilities are normalized; a zero entry yields a -Inf
// log-probability for that outcome.
func NewCategorical(probs []float64) Categorical {
	logits := make([]float64, len(probs))
	for i, p := range probs {
		logits[i] = math.Log(p)
	}
	return NewCategoricalLogits(logits)
}

// NewCategoricalLogits builds a Categorical from unnormalized log-odds,
// normalizing with a log-sum-exp rather than exponentiating first.
func NewCategoricalLogits(logits []float64) Categorical {
	if len(logits) == 0 {
		panic("distribution: categorical needs at least one outcome")
	}
	total := logSumExp(logits)
	logProbs := make([]float64, len(logits))
	for i, l := range logits {
		logProbs[i] = l - total
	}
	return Categorical{logProbs: logProbs}
}

// NewUniformCategorical builds the uniform distribution over n outcomes.
func NewUniformCategorical(n int) Categorical {
	if n <= 0 {
		panic("distribution: categorical needs at least one outcome")
	}
	logProbs := make([]float64, n)
	for i := range logProbs {
		logProbs[i] = -math.Log(float64(n))
	}
	return Categorical{logProbs: logProbs}
}

// NumOutcomes returns the size of the support.
func (c Categorical) NumOutcomes() int {
	return len(c.logProbs)
}

func (c Categorical) Sample(rng *rand.Rand) int {
	weights := make([]float64, len(c.logProbs))
	for i, lp := range c.logProbs {
		weights[i] = math.Exp(lp)
	}
	return int(distuv.NewCategorical(weights, rng).Rand())
}

// Mode returns the outcome with the highest probability; ties resolve to
// the lowest index.
func (c Categorical) Mode(_ *rand.Rand) int {
	best := 0
	for i, lp := range c.logProbs {
		if lp > c.logProbs[best] {
			best = i
		}
	}
	return best
}

func (c Categorical) LogProb(value int) float64 {
	if value < 0 || value >= len(c.logProbs) {
		return math.Inf(-1)
	}
	return c.logProbs[value]
}

func (c Categorical) Entropy() float64 {
	var h float64
	for _, lp := range c.logProbs {
		if math.IsInf(lp, -1) {
			continue
		}
		h -= math.Exp(lp) * lp
	}
	return h
}
