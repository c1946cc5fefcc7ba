// internal/domain/records.go
package domain

import "time"

// ChargeRecord is one line-item charge against a lot, as produced by the
// upstream CSV export. Many charge rows share one lot.
type ChargeRecord struct {
	LotID          string  `json:"lot_id"`
	Exporter       string  `json:"exporter"`
	ChargeCategory string  `json:"charge_category"`
	Amount         float64 `json:"amount"`
	Quantity       float64 `json:"quantity,omitempty"`
	// InitialStock is the lot's initial box count, redundantly repeated on
	// every charge row of the lot by the export.
	InitialStock float64 `json:"initial_stock"`
}

// StockRecord is one inventory entry for a lot.
type StockRecord struct {
	LotID        string    `json:"lot_id"`
	Exporter     string    `json:"exporter"`
	Variety      string    `json:"variety"`
	EntryDate    time.Time `json:"entry_date"`
	InitialStock float64   `json:"initial_stock"`
}

// SalesLotRollup is the externally aggregated per-lot sales summary consumed
// by the profitability joiner. It is produced by a sibling module and treated
// as opaque input here.
type SalesLotRollup struct {
	LotID            string  `json:"lot_id"`
	Exporter         string  `json:"exporter"`
	Variety          string  `json:"variety"`
	TotalSales       float64 `json:"total_sales"`
	TotalQuantity    float64 `json:"total_quantity"`
	TransactionCount int     `json:"transaction_count"`
	RetailerCount    int     `json:"retailer_count"`
	AvgPrice         float64 `json:"avg_price"`
}
