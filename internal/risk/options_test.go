package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlackScholesCall_DegenerateInputs(t *testing.T) {
	assert.Equal(t, 0.0, BlackScholesCall(0, 100, 0.05, 0.2, 1))
	assert.Equal(t, 0.0, BlackScholesCall(100, 0, 0.05, 0.2, 1))
	assert.Equal(t, 0.0, BlackScholesCall(100, 100, 0.05, 0, 1))
	assert.Equal(t, 0.0, BlackScholesCall(100, 100, 0.05, 0.2, 0))
	assert.Equal(t, 0.0, BlackScholesCall(-5, 100, 0.05, -0.2, -1))
}

func TestBlackScholesCall_KnownValue(t *testing.T) {
	// Standard textbook case: S=100, K=100, r=5%, sigma=20%, T=1y.
	price := BlackScholesCall(100, 100, 0.05, 0.2, 1)
	assert.InDelta(t, 10.4506, price, 1e-3)
}

func TestBlackScholesCall_DeepInTheMoney(t *testing.T) {
	// Far ITM call converges to S - K e^{-rT}.
	price := BlackScholesCall(200, 100, 0.05, 0.2, 1)
	intrinsic := 200 - 100*math.Exp(-0.05)
	assert.InDelta(t, intrinsic, price, 0.05)
}

func TestEstimateImpliedVol_InsufficientData(t *testing.T) {
	assert.Nil(t, EstimateImpliedVol(0, 0.0488, IVTenorDays, []float64{0.01, 0.02, 0.01, 0.02, 0.01}))
	assert.Nil(t, EstimateImpliedVol(100, 0.0488, IVTenorDays, []float64{0.01, 0.02}))
}

func TestEstimateImpliedVol_ZeroRealizedVol(t *testing.T) {
	returns := []float64{0, 0, 0, 0, 0, 0}
	assert.Nil(t, EstimateImpliedVol(100, 0.0488, IVTenorDays, returns))
}

func TestEstimateImpliedVol_ConvergesToRealizedSeed(t *testing.T) {
	// The target price derives from the realized-vol seed, so the
	// calibration converges to the seed almost by construction.
	returns := make([]float64, 10)
	for i := range returns {
		if i%2 == 0 {
			returns[i] = 0.01
		} else {
			returns[i] = -0.01
		}
	}

	iv := EstimateImpliedVol(150, 0.0488, IVTenorDays, returns)
	require.NotNil(t, iv)

	expected := 0.01 * math.Sqrt(TradingDaysPerYear)
	assert.InDelta(t, expected, *iv, 1e-4)
	assert.GreaterOrEqual(t, *iv, 0.0)
}
