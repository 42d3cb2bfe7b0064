package risk

import (
	"math"
	"time"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// ATRWindow is the rolling window for Average True Range.
const ATRWindow = 14

// TrueRange computes the per-bar true range series. The first bar has no
// previous close, so its entry is NaN.
func TrueRange(bars []models.PriceBar) []float64 {
	tr := make([]float64, len(bars))
	for i := range bars {
		if i == 0 {
			tr[i] = math.NaN()
			continue
		}
		prevClose := bars[i-1].Close
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - prevClose)
		lc := math.Abs(bars[i].Low - prevClose)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

// ATRSeries computes the Average True Range as a simple rolling mean of
// true range over ATRWindow bars (not Wilder's smoothing). The output has
// the same length as the input; entries whose window is incomplete or
// contains an undefined true range are NaN.
func ATRSeries(bars []models.PriceBar) []float64 {
	tr := TrueRange(bars)
	atr := make([]float64, len(bars))
	for i := range atr {
		if i < ATRWindow-1 {
			atr[i] = math.NaN()
			continue
		}
		sum := 0.0
		valid := true
		for j := i - ATRWindow + 1; j <= i; j++ {
			if math.IsNaN(tr[j]) {
				valid = false
				break
			}
			sum += tr[j]
		}
		if !valid {
			atr[i] = math.NaN()
			continue
		}
		atr[i] = sum / ATRWindow
	}
	return atr
}

// LastATR returns the most recent defined ATR value, or nil if the series
// is empty or ends in NaN.
func LastATR(atr []float64) *float64 {
	if len(atr) == 0 {
		return nil
	}
	last := atr[len(atr)-1]
	if math.IsNaN(last) {
		return nil
	}
	v := round(last, 4)
	return &v
}

// ATRAt looks up the ATR at the bar dated on-or-before date (backward
// "pad" lookup). Returns nil when date precedes the whole history or the
// ATR there is undefined.
func ATRAt(bars []models.PriceBar, atr []float64, date time.Time) *float64 {
	idx := -1
	for i := range bars {
		if bars[i].Date.After(date) {
			break
		}
		idx = i
	}
	if idx < 0 || idx >= len(atr) {
		return nil
	}
	if math.IsNaN(atr[idx]) {
		return nil
	}
	v := round(atr[idx], 4)
	return &v
}
