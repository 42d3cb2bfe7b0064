package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/NawraaSayed/RiskSheet/internal/models"
)

type sectorStorage struct {
	db *badgerhold.Store
}

func (s *sectorStorage) GetSectorAllocations(_ context.Context) (map[string]float64, error) {
	var entries []models.SectorAllocation
	if err := s.db.Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("failed to list sector allocations: %w", err)
	}
	result := make(map[string]float64, len(entries))
	for _, entry := range entries {
		result[entry.Sector] = entry.Allocation
	}
	return result, nil
}

func (s *sectorStorage) UpsertSectorAllocation(_ context.Context, sector string, allocation float64) error {
	if sector == "" {
		return fmt.Errorf("%w: sector is required", models.ErrInvalidInput)
	}
	entry := models.SectorAllocation{Sector: sector, Allocation: allocation}
	if err := s.db.Upsert(sector, &entry); err != nil {
		return fmt.Errorf("failed to save sector allocation '%s': %w", sector, err)
	}
	return nil
}
