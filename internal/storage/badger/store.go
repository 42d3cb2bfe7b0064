// Package badger provides BadgerHold-based storage for RiskSheet's
// persisted state: positions, the cash balance, and sector targets.
package badger

import (
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/interfaces"
)

// Manager wraps a BadgerHold database connection and exposes the
// storage areas.
type Manager struct {
	db     *badgerhold.Store
	logger *common.Logger

	positions *positionStorage
	cash      *cashStorage
	sectors   *sectorStorage
}

// NewManager opens a BadgerHold store at the given directory path.
func NewManager(logger *common.Logger, path string) (*Manager, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create badger directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("BadgerHold store opened")

	m := &Manager{db: db, logger: logger}
	m.positions = &positionStorage{db: db, logger: logger}
	m.cash = &cashStorage{db: db}
	m.sectors = &sectorStorage{db: db}
	return m, nil
}

// Positions returns the position storage area.
func (m *Manager) Positions() interfaces.PositionStorage {
	return m.positions
}

// Cash returns the cash storage area.
func (m *Manager) Cash() interfaces.CashStorage {
	return m.cash
}

// SectorTargets returns the sector target storage area.
func (m *Manager) SectorTargets() interfaces.SectorTargetStorage {
	return m.sectors
}

// Close closes the BadgerHold database.
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
