package risk

import (
	"math"
	"sort"
)

// Monte Carlo Value-at-Risk parameters.
const (
	VaRSimulations = 5000
	VaRConfidence  = 0.95
)

// NormalSampler draws standard normal variates. *math/rand.Rand satisfies
// it; tests inject a seeded instance for deterministic output.
type NormalSampler interface {
	NormFloat64() float64
}

// MonteCarloVaR estimates 1-day Value-at-Risk at VaRConfidence by
// sampling VaRSimulations returns from a normal distribution fitted to
// the historical daily log returns, sorting, and taking the return at
// the (1-confidence) quantile rank. The result is |position value x
// simulated return|, rounded to 2 decimals. Requires at least 2 return
// observations; otherwise nil.
func MonteCarloVaR(positionValue float64, returns []float64, rng NormalSampler) *float64 {
	if len(returns) < 2 {
		return nil
	}

	mu := mean(returns)
	sigma := stdDev(returns)

	simulated := make([]float64, VaRSimulations)
	for i := range simulated {
		simulated[i] = rng.NormFloat64()*sigma + mu
	}
	sort.Float64s(simulated)

	cutoff := int((1 - VaRConfidence) * VaRSimulations)
	v := round(math.Abs(positionValue*simulated[cutoff]), 2)
	return &v
}
