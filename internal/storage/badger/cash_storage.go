package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"
)

// cashEntry is the single persisted cash balance record.
type cashEntry struct {
	Key    string `badgerhold:"key"`
	Amount float64
}

const cashKey = "cash"

type cashStorage struct {
	db *badgerhold.Store
}

func (s *cashStorage) GetCash(_ context.Context) (float64, error) {
	var entry cashEntry
	err := s.db.Get(cashKey, &entry)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get cash balance: %w", err)
	}
	return entry.Amount, nil
}

func (s *cashStorage) SetCash(_ context.Context, amount float64) error {
	entry := cashEntry{Key: cashKey, Amount: amount}
	if err := s.db.Upsert(cashKey, &entry); err != nil {
		return fmt.Errorf("failed to set cash balance: %w", err)
	}
	return nil
}
