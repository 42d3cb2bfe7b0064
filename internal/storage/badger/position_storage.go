package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/models"
)

type positionStorage struct {
	db     *badgerhold.Store
	logger *common.Logger
}

func (s *positionStorage) ListPositions(_ context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.Find(&positions, nil); err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return positions, nil
}

func (s *positionStorage) UpsertPosition(_ context.Context, pos models.Position) error {
	pos.Normalize()
	if pos.Ticker == "" {
		return fmt.Errorf("%w: ticker is required", models.ErrInvalidInput)
	}
	if err := s.db.Upsert(pos.Ticker, &pos); err != nil {
		return fmt.Errorf("failed to save position '%s': %w", pos.Ticker, err)
	}
	s.logger.Debug().Str("ticker", pos.Ticker).Msg("Position saved")
	return nil
}

func (s *positionStorage) DeletePosition(_ context.Context, ticker string) error {
	ticker = models.NormalizeTicker(ticker)
	err := s.db.Delete(ticker, models.Position{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete position '%s': %w", ticker, err)
	}
	s.logger.Debug().Str("ticker", ticker).Msg("Position deleted")
	return nil
}
