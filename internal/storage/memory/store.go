// Package memory provides an in-memory storage backend for tests and
// ephemeral deployments. Safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/interfaces"
	"github.com/NawraaSayed/RiskSheet/internal/models"
)

// Manager holds all state behind one mutex; the dataset is small enough
// that finer locking buys nothing.
type Manager struct {
	mu        sync.RWMutex
	logger    *common.Logger
	positions map[string]models.Position
	cash      float64
	sectors   map[string]float64
}

// NewManager creates an empty in-memory storage manager.
func NewManager(logger *common.Logger) *Manager {
	return &Manager{
		logger:    logger,
		positions: map[string]models.Position{},
		sectors:   map[string]float64{},
	}
}

func (m *Manager) Positions() interfaces.PositionStorage         { return (*positionStorage)(m) }
func (m *Manager) Cash() interfaces.CashStorage                  { return (*cashStorage)(m) }
func (m *Manager) SectorTargets() interfaces.SectorTargetStorage { return (*sectorStorage)(m) }

// Close is a no-op for the memory backend.
func (m *Manager) Close() error { return nil }

type positionStorage Manager

func (s *positionStorage) ListPositions(_ context.Context) ([]models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	positions := make([]models.Position, 0, len(s.positions))
	for _, pos := range s.positions {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Ticker < positions[j].Ticker })
	return positions, nil
}

func (s *positionStorage) UpsertPosition(_ context.Context, pos models.Position) error {
	pos.Normalize()
	if pos.Ticker == "" {
		return fmt.Errorf("%w: ticker is required", models.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[pos.Ticker] = pos
	return nil
}

func (s *positionStorage) DeletePosition(_ context.Context, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, models.NormalizeTicker(ticker))
	return nil
}

type cashStorage Manager

func (s *cashStorage) GetCash(_ context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cash, nil
}

func (s *cashStorage) SetCash(_ context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cash = amount
	return nil
}

type sectorStorage Manager

func (s *sectorStorage) GetSectorAllocations(_ context.Context) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]float64, len(s.sectors))
	for sector, allocation := range s.sectors {
		result[sector] = allocation
	}
	return result, nil
}

func (s *sectorStorage) UpsertSectorAllocation(_ context.Context, sector string, allocation float64) error {
	if sector == "" {
		return fmt.Errorf("%w: sector is required", models.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sectors[sector] = allocation
	return nil
}
