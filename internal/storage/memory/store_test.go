package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/models"
)

func TestPositionStorage_UpsertListDelete(t *testing.T) {
	m := NewManager(common.NewSilentLogger())
	ctx := context.Background()
	store := m.Positions()

	require.NoError(t, store.UpsertPosition(ctx, models.Position{Ticker: "aapl", Shares: 10, PriceBought: 150}))
	require.NoError(t, store.UpsertPosition(ctx, models.Position{Ticker: "MSFT", Shares: 5, PriceBought: 300}))

	positions, err := store.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, "AAPL", positions[0].Ticker)
	assert.Equal(t, "MSFT", positions[1].Ticker)

	// Upsert by ticker replaces, never duplicates.
	require.NoError(t, store.UpsertPosition(ctx, models.Position{Ticker: "AAPL", Shares: 20, PriceBought: 140}))
	positions, err = store.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, 20.0, positions[0].Shares)

	require.NoError(t, store.DeletePosition(ctx, " aapl "))
	positions, err = store.ListPositions(ctx)
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "MSFT", positions[0].Ticker)

	// Deleting a missing ticker is not an error.
	assert.NoError(t, store.DeletePosition(ctx, "GONE"))
}

func TestPositionStorage_RejectsEmptyTicker(t *testing.T) {
	m := NewManager(common.NewSilentLogger())
	err := m.Positions().UpsertPosition(context.Background(), models.Position{Ticker: "  "})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestCashStorage(t *testing.T) {
	m := NewManager(common.NewSilentLogger())
	ctx := context.Background()

	amount, err := m.Cash().GetCash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, amount)

	require.NoError(t, m.Cash().SetCash(ctx, 2500.50))
	amount, err = m.Cash().GetCash(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2500.50, amount)
}

func TestSectorTargetStorage(t *testing.T) {
	m := NewManager(common.NewSilentLogger())
	ctx := context.Background()
	store := m.SectorTargets()

	allocations, err := store.GetSectorAllocations(ctx)
	require.NoError(t, err)
	assert.Empty(t, allocations)

	require.NoError(t, store.UpsertSectorAllocation(ctx, "Technology", 0.3))
	require.NoError(t, store.UpsertSectorAllocation(ctx, "Healthcare", 0.2))
	require.NoError(t, store.UpsertSectorAllocation(ctx, "Technology", 0.35))

	allocations, err = store.GetSectorAllocations(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Technology": 0.35, "Healthcare": 0.2}, allocations)

	assert.ErrorIs(t, store.UpsertSectorAllocation(ctx, "", 0.1), models.ErrInvalidInput)
}
