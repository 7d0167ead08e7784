package distribution

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Bernoulli is a distribution over {0, 1}, parameterized by a logit.
type Bernoulli struct {
	logit float64
}

var _ Distribution[int] = Bernoulli{}

// NewBernoulli builds a Bernoulli from the probability of drawing 1.
func NewBernoulli(p float64) Bernoulli {
	return Bernoulli{logit: math.Log(p) - math.Log1p(-p)}
}

// NewBernoulliLogit builds a Bernoulli from the log-odds of drawing 1.
func NewBernoulliLogit(logit float64) Bernoulli {
	return Bernoulli{logit: logit}
}

// P returns the probability of drawing 1.
func (b Bernoulli) P() float64 {
	return sigmoid(b.logit)
}

func (b Bernoulli) Sample(rng *rand.Rand) int {
	return int(distuv.Bernoulli{P: b.P(), Src: rng}.Rand())
}

// Mode returns the more probable outcome; an exact tie resolves to 0.
func (b Bernoulli) Mode(_ *rand.Rand) int {
	if b.logit > 0 {
		return 1
	}
	return 0
}

// LogProb uses the log-sigmoid identity log σ(x) = -softplus(-x), which
// avoids computing log(exp(x)) directly.
func (b Bernoulli) LogProb(value int) float64 {
	switch value {
	case 1:
		return -softplus(-b.logit)
	case 0:
		return -softplus(b.logit)
	default:
		return math.Inf(-1)
	}
}

func (b Bernoulli) Entropy() float64 {
	p := b.P()
	return entropyTerm(p) + entropyTerm(1-p)
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1 + e)
}

// entropyTerm is -p*log(p) with the 0*log(0) = 0 convention.
func entropyTerm(p float64) float64 {
	if p == 0 {
		return 0
	}
	return -p * math.Log(p)
}
