// Package interfaces defines the service, storage, and client contracts
// wired together in internal/app.
package interfaces

import (
	"context"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// MarketDataProvider supplies historical daily bars and issuer metadata
// for a ticker. Implementations must return models.ErrDataUnavailable
// (wrapped) when no bars exist for a ticker.
type MarketDataProvider interface {
	// FetchHistory returns the maximum available daily history for a
	// ticker, ordered chronologically (oldest first).
	FetchHistory(ctx context.Context, ticker string) ([]models.PriceBar, error)

	// FetchMetadata returns sector and market cap for a ticker. Sector
	// defaults to "Unknown" when the source has none.
	FetchMetadata(ctx context.Context, ticker string) (*models.IssuerMetadata, error)

	// FetchSectorWeights returns the sector weight breakdown of an index
	// proxy. Best effort: an empty map on any failure, never an error.
	FetchSectorWeights(ctx context.Context, proxyTicker string) map[string]float64
}
