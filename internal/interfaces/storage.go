package interfaces

import (
	"context"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// PositionStorage persists user positions keyed by ticker.
type PositionStorage interface {
	ListPositions(ctx context.Context) ([]models.Position, error)
	UpsertPosition(ctx context.Context, pos models.Position) error
	DeletePosition(ctx context.Context, ticker string) error
}

// CashStorage persists the single uninvested cash balance.
type CashStorage interface {
	GetCash(ctx context.Context) (float64, error)
	SetCash(ctx context.Context, amount float64) error
}

// SectorTargetStorage persists target sector allocations keyed by sector name.
type SectorTargetStorage interface {
	GetSectorAllocations(ctx context.Context) (map[string]float64, error)
	UpsertSectorAllocation(ctx context.Context, sector string, allocation float64) error
}

// StorageManager bundles the storage areas behind one pluggable backend.
type StorageManager interface {
	Positions() PositionStorage
	Cash() CashStorage
	SectorTargets() SectorTargetStorage
	Close() error
}
