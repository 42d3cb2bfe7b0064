// Package risk implements the position risk pipeline: ATR volatility
// bands, beta, Monte Carlo Value-at-Risk, a Black-Scholes implied
// volatility proxy, CAPM expected return, and portfolio aggregation.
package risk

import (
	"math"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// TradingDaysPerYear is the annualization factor for daily return series.
const TradingDaysPerYear = 252

// LogReturns computes daily log returns ln(close_t / close_{t-1}) from a
// chronological bar history. Returns an empty slice for fewer than 2 bars.
func LogReturns(bars []models.PriceBar) []float64 {
	if len(bars) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1].Close
		if prev <= 0 || bars[i].Close <= 0 {
			continue
		}
		returns = append(returns, math.Log(bars[i].Close/prev))
	}
	return returns
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the population standard deviation (divisor n).
func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
