// internal/dataset/loader.go
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
	"github.com/jpgart/famus-unified-reports-sub001/internal/numparse"
)

// The loaders read the CSV/JSON exports produced by the upstream ETL step.
// Column matching is tolerant of header variations across export versions;
// numeric fields follow the aggregation layer's contract (missing or
// malformed -> 0). Structural validation (lot ids) happens in the store,
// not here.

// LoadCharges reads a charge export CSV.
func LoadCharges(path string) ([]domain.ChargeRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open charges file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read charges header: %w", err)
	}

	idxLot := colIndex(header, "lotid", "lot_id", "lot")
	idxExporter := colIndex(header, "exporter", "exporter_clean", "exporter name")
	idxCategory := colIndex(header, "charge_category", "chargedescr", "charge description", "category")
	idxAmount := colIndex(header, "amount", "chgamt", "charge amount")
	idxQuantity := colIndex(header, "quantity", "chgqty")
	idxInitialStock := colIndex(header, "initial_stock", "initial stock", "invoiced boxes")

	records := make([]domain.ChargeRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read charges row: %w", err)
		}

		records = append(records, domain.ChargeRecord{
			LotID:          get(row, idxLot),
			Exporter:       get(row, idxExporter),
			ChargeCategory: get(row, idxCategory),
			Amount:         numparse.Float(get(row, idxAmount)),
			Quantity:       numparse.Float(get(row, idxQuantity)),
			InitialStock:   numparse.Float(get(row, idxInitialStock)),
		})
	}

	return records, nil
}

// LoadStocks reads a stock export CSV. Rows with unparseable entry dates
// keep a zero date; the monthly stock view skips them, the other views do
// not.
func LoadStocks(path string) ([]domain.StockRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stock file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read stock header: %w", err)
	}

	idxLot := colIndex(header, "lotid", "lot_id", "lot")
	idxExporter := colIndex(header, "exporter", "exporter_clean", "exporter name")
	idxVariety := colIndex(header, "variety")
	idxEntryDate := colIndex(header, "entry_date", "entry date", "entrydate")
	idxInitialStock := colIndex(header, "initial_stock", "initial stock", "stock")

	records := make([]domain.StockRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read stock row: %w", err)
		}

		entryDate, _ := numparse.Date(get(row, idxEntryDate))

		records = append(records, domain.StockRecord{
			LotID:        get(row, idxLot),
			Exporter:     get(row, idxExporter),
			Variety:      get(row, idxVariety),
			EntryDate:    entryDate,
			InitialStock: numparse.Float(get(row, idxInitialStock)),
		})
	}

	return records, nil
}

// LoadSalesByLot reads the externally aggregated per-lot sales rollup from
// its JSON export and keys it by lot id.
func LoadSalesByLot(path string) (map[string]domain.SalesLotRollup, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open sales rollup file: %w", err)
	}

	var rollups []domain.SalesLotRollup
	if err := json.Unmarshal(payload, &rollups); err != nil {
		return nil, fmt.Errorf("decode sales rollup: %w", err)
	}

	byLot := make(map[string]domain.SalesLotRollup, len(rollups))
	for _, r := range rollups {
		byLot[r.LotID] = r
	}
	return byLot, nil
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}

func colIndex(header []string, names ...string) int {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalizeColumnName(name)] = struct{}{}
	}
	for i, h := range header {
		if _, ok := targets[normalizeColumnName(h)]; ok {
			return i
		}
	}
	return -1
}

func get(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
