package interfaces

import (
	"context"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// EvaluationService runs the risk pipeline over a batch of positions.
// It is a pure service: it never reads or writes persisted state.
type EvaluationService interface {
	// Evaluate produces exactly one EvaluatedPosition per input position,
	// in input order. Per-row failures become degraded rows; only invalid
	// input (negative shares or price) fails the whole call.
	Evaluate(ctx context.Context, positions []models.Position) (*models.RecalculateResponse, error)
}
