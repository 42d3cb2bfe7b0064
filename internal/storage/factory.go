// Package storage provides persistence for positions, cash, and sector
// targets behind one pluggable backend selected by configuration.
package storage

import (
	"fmt"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/interfaces"
	"github.com/NawraaSayed/RiskSheet/internal/storage/badger"
	"github.com/NawraaSayed/RiskSheet/internal/storage/memory"
)

// Backend type constants.
const (
	BackendBadger = "badger"
	BackendMemory = "memory"
)

// NewManager creates a storage manager for the configured backend.
// Supported backends: "badger" (default, embedded), "memory" (ephemeral).
func NewManager(logger *common.Logger, cfg common.StorageConfig) (interfaces.StorageManager, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = BackendBadger
	}

	switch backend {
	case BackendBadger:
		return badger.NewManager(logger, cfg.Path)

	case BackendMemory:
		return memory.NewManager(logger), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: badger, memory)", backend)
	}
}
