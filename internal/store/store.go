// internal/store/store.go
package store

import (
	"fmt"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// Store holds the charge and stock collections for the lifetime of the
// process. Records are validated and copied on construction and never
// mutated afterwards; every aggregation reads from the same snapshot, which
// is what makes the single-slot memoization sound.
type Store struct {
	charges []domain.ChargeRecord
	stocks  []domain.StockRecord

	initialStockByLot map[string]float64
}

// New validates and loads the record collections. A record without a lot id
// is a structural defect of the upstream export and is rejected here, at the
// boundary, so the aggregation core never has to tolerate it.
func New(charges []domain.ChargeRecord, stocks []domain.StockRecord) (*Store, error) {
	for i, c := range charges {
		if c.LotID == "" {
			return nil, fmt.Errorf("charge record %d is missing a lot id", i)
		}
	}
	for i, s := range stocks {
		if s.LotID == "" {
			return nil, fmt.Errorf("stock record %d is missing a lot id", i)
		}
	}

	st := &Store{
		charges:           make([]domain.ChargeRecord, len(charges)),
		stocks:            make([]domain.StockRecord, len(stocks)),
		initialStockByLot: make(map[string]float64),
	}
	copy(st.charges, charges)
	copy(st.stocks, stocks)

	// First value wins: the export repeats a lot's initial stock on every
	// row, so duplicates are repeats, not additional stock.
	for _, s := range st.stocks {
		if _, ok := st.initialStockByLot[s.LotID]; !ok {
			st.initialStockByLot[s.LotID] = s.InitialStock
		}
	}

	return st, nil
}

// Charges returns the charge collection. Callers must treat it as read-only.
func (s *Store) Charges() []domain.ChargeRecord {
	return s.charges
}

// Stocks returns the stock collection. Callers must treat it as read-only.
func (s *Store) Stocks() []domain.StockRecord {
	return s.stocks
}

// InitialStock returns the initial box count recorded for a lot, or 0 when
// the lot has no stock record.
func (s *Store) InitialStock(lotID string) float64 {
	return s.initialStockByLot[lotID]
}

// ChargeCount reports the number of charge records loaded.
func (s *Store) ChargeCount() int {
	return len(s.charges)
}

// StockCount reports the number of stock records loaded.
func (s *Store) StockCount() int {
	return len(s.stocks)
}
