package risk

import "github.com/NawraaSayed/RiskSheet/internal/models"

// ApplyPortfolioWeights fills weight, beta_weighted, and
// weighted_expected_return across a completed batch. Total portfolio
// value sums position values over error-free rows; error rows keep all
// three fields null, as does every row when the total is zero. Returns
// the total portfolio value.
func ApplyPortfolioWeights(rows []models.EvaluatedPosition) float64 {
	total := 0.0
	for i := range rows {
		if rows[i].Error == "" && rows[i].PositionValue != nil {
			total += *rows[i].PositionValue
		}
	}
	if total == 0 {
		return 0
	}

	for i := range rows {
		row := &rows[i]
		if row.Error != "" || row.PositionValue == nil {
			continue
		}
		w := round(*row.PositionValue/total, 4)
		row.Weight = &w
		if row.Beta != nil {
			row.BetaWeighted = models.Float(round(*row.Beta*w, 6))
		}
		if row.ExpectedReturn != nil {
			row.WeightedExpectedReturn = models.Float(round(*row.ExpectedReturn*w, 6))
		}
	}
	return total
}
