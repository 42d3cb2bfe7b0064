package risk

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonteCarloVaR_InsufficientData(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Nil(t, MonteCarloVaR(1000, nil, rng))
	assert.Nil(t, MonteCarloVaR(1000, []float64{0.01}, rng))
}

func TestMonteCarloVaR_MatchesAnalyticPercentile(t *testing.T) {
	// Alternating returns: mu = 0, population sigma = 0.02 exactly.
	returns := make([]float64, 100)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.02
		} else {
			returns[i] = -0.02
		}
	}

	positionValue := 1000.0
	v := MonteCarloVaR(positionValue, returns, rand.New(rand.NewSource(42)))
	require.NotNil(t, v)

	// Analytic 5th percentile of N(0, 0.02) is -1.6449 x 0.02; the
	// rank-250 estimate over 5000 draws has a standard error well under
	// 1 in position-value units, so a band of 3 is generous.
	analytic := 1.6449 * 0.02 * positionValue
	assert.InDelta(t, analytic, *v, 3.0)
}

func TestMonteCarloVaR_DeterministicWithSeed(t *testing.T) {
	returns := []float64{0.01, -0.015, 0.02, -0.005, 0.012, -0.02}

	a := MonteCarloVaR(5000, returns, rand.New(rand.NewSource(7)))
	b := MonteCarloVaR(5000, returns, rand.New(rand.NewSource(7)))
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, *a, *b)

	c := MonteCarloVaR(5000, returns, rand.New(rand.NewSource(8)))
	require.NotNil(t, c)
	assert.NotEqual(t, *a, *c)
}

func TestMonteCarloVaR_ZeroVolatility(t *testing.T) {
	returns := []float64{0, 0, 0, 0}
	v := MonteCarloVaR(1500, returns, rand.New(rand.NewSource(1)))
	require.NotNil(t, v)
	assert.Equal(t, 0.0, *v)
}
