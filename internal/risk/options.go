package risk

import "math"

// Implied volatility proxy parameters.
const (
	IVTenorDays   = 30
	ivNewtonSteps = 8
	ivVegaFloor   = 1e-8
	daysPerYear   = 365.0
)

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}

// normPDF is the standard normal probability density function.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// BlackScholesCall prices a European call. Returns 0 when spot, strike,
// sigma, or time-to-expiry is non-positive.
func BlackScholesCall(spot, strike, rate, sigma, t float64) float64 {
	if spot <= 0 || strike <= 0 || sigma <= 0 || t <= 0 {
		return 0
	}
	d1 := (math.Log(spot/strike) + (rate+0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	d2 := d1 - sigma*math.Sqrt(t)
	return spot*normCDF(d1) - strike*math.Exp(-rate*t)*normCDF(d2)
}

// EstimateImpliedVol produces the implied-volatility proxy: annualized
// realized volatility seeds a Newton-Raphson calibration of an
// at-the-money call with a fixed 30-day tenor. The target price is
// itself computed at the realized-vol seed, so the converged sigma is a
// self-consistent approximation, not a market-quote-derived implied
// volatility. Floored
// at 0 and rounded to 4 decimals; nil when spot <= 0 or fewer than 5
// return observations, or when the seed volatility is zero.
func EstimateImpliedVol(spot, rate float64, tenorDays int, returns []float64) *float64 {
	if spot <= 0 || len(returns) < 5 {
		return nil
	}

	sigmaGuess := stdDev(returns) * math.Sqrt(TradingDaysPerYear)
	if sigmaGuess <= 0 {
		return nil
	}

	t := float64(tenorDays) / daysPerYear
	targetPrice := BlackScholesCall(spot, spot, rate, sigmaGuess, t)
	if targetPrice <= 0 {
		return nil
	}

	sigma := sigmaGuess
	for i := 0; i < ivNewtonSteps; i++ {
		price := BlackScholesCall(spot, spot, rate, sigma, t)
		if price <= 0 {
			break
		}
		// ATM vega: ln(S/K) = 0
		d1 := (rate + 0.5*sigma*sigma) * t / (sigma * math.Sqrt(t))
		vega := spot * math.Sqrt(t) * normPDF(d1)
		if vega <= ivVegaFloor {
			break
		}
		sigma -= (price - targetPrice) / vega
		if sigma <= 0 {
			sigma = sigmaGuess
			break
		}
	}

	v := round(sigma, 4)
	if v < 0 {
		v = 0
	}
	return &v
}
