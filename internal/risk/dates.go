package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// InferPurchaseDate reconciles a user-entered entry price with the
// trading history. When priceBought > 0 it selects the most recent bar
// whose low-high band contains the price; that date supersedes any
// caller-supplied date. When no bar matches, the row fails with
// ErrPriceNotFound. When priceBought == 0 the caller-supplied date
// passes through unchanged and may be absent.
func InferPurchaseDate(bars []models.PriceBar, priceBought float64, dateBought string) (string, error) {
	if priceBought <= 0 {
		return dateBought, nil
	}

	var matched *time.Time
	for i := range bars {
		if bars[i].Low <= priceBought && priceBought <= bars[i].High {
			d := bars[i].Date
			matched = &d
		}
	}
	if matched == nil {
		return "", fmt.Errorf("%w: price %g matched no bar", models.ErrPriceNotFound, priceBought)
	}
	return matched.Format(models.DateFormat), nil
}

// HoldingPeriodDays returns whole calendar days between now and the
// resolved purchase date, or 0 when the date is absent or unparseable.
func HoldingPeriodDays(resolvedDate string, now time.Time) int {
	if resolvedDate == "" {
		return 0
	}
	dt, err := time.Parse(models.DateFormat, resolvedDate)
	if err != nil {
		return 0
	}
	return int(math.Floor(now.Sub(dt).Hours() / 24))
}
