package risk

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

func TestInferPurchaseDate_PriceMatch(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []models.PriceBar{
		{Date: start, Low: 20, High: 22, Close: 21},
		{Date: start.AddDate(0, 0, 1), Low: 10, High: 12, Close: 11},
		{Date: start.AddDate(0, 0, 2), Low: 20, High: 22, Close: 21},
	}

	date, err := InferPurchaseDate(bars, 11, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", date)
}

func TestInferPurchaseDate_MostRecentMatchWins(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []models.PriceBar{
		{Date: start, Low: 10, High: 12, Close: 11},
		{Date: start.AddDate(0, 0, 1), Low: 20, High: 22, Close: 21},
		{Date: start.AddDate(0, 0, 2), Low: 10, High: 12, Close: 11},
	}

	date, err := InferPurchaseDate(bars, 11, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-03", date)
}

func TestInferPurchaseDate_OverridesSuppliedDate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := []models.PriceBar{
		{Date: start, Low: 10, High: 12, Close: 11},
	}

	// A matching price deliberately supersedes the caller's date.
	date, err := InferPurchaseDate(bars, 11, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", date)
}

func TestInferPurchaseDate_PriceNotFound(t *testing.T) {
	bars := flatBars(5, 10, 12, 10, 11)

	_, err := InferPurchaseDate(bars, 99, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrPriceNotFound))
}

func TestInferPurchaseDate_ZeroPricePassthrough(t *testing.T) {
	bars := flatBars(5, 10, 12, 10, 11)

	date, err := InferPurchaseDate(bars, 0, "2023-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2023-06-15", date)

	date, err = InferPurchaseDate(bars, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "", date)
}

func TestHoldingPeriodDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, HoldingPeriodDays("", now))
	assert.Equal(t, 0, HoldingPeriodDays("not-a-date", now))
	assert.Equal(t, 14, HoldingPeriodDays("2024-03-01", now))
	assert.Equal(t, 0, HoldingPeriodDays("2024-03-15", now))
}
