package analysis

import (
	"testing"
	"time"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

func stockRow(lot, exporter, variety string, date time.Time, boxes float64) domain.StockRecord {
	return domain.StockRecord{LotID: lot, Exporter: exporter, Variety: variety, EntryDate: date, InitialStock: boxes}
}

func TestAnalyzeStock_SumsStockPerLot(t *testing.T) {
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	stocks := []domain.StockRecord{
		stockRow("L1", "Agrolatina", "Crimson", march, 100),
		stockRow("L1", "Agrolatina", "Crimson", march, 50),
		stockRow("L2", "Unifrutti", "Thompson", march, 80),
	}
	result := AnalyzeStock(stocks, defaultFilter(), 10)

	// Stock rows are entries, not repeated totals, so they sum.
	if got := result.ByLot["L1"].TotalStock; got != 150 {
		t.Errorf("ByLot[L1] = %v, want 150", got)
	}
	if result.TotalStock != 230 {
		t.Errorf("TotalStock = %v, want 230", result.TotalStock)
	}
	if result.TotalLots != 2 {
		t.Errorf("TotalLots = %v, want 2", result.TotalLots)
	}
	if result.AvgStockPerLot != 115 {
		t.Errorf("AvgStockPerLot = %v, want 115", result.AvgStockPerLot)
	}
}

func TestAnalyzeStock_TopVarieties(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	stocks := []domain.StockRecord{
		stockRow("L1", "Agrolatina", "Crimson", date, 300),
		stockRow("L2", "Agrolatina", "Thompson", date, 500),
		stockRow("L3", "Agrolatina", "Flame", date, 100),
		stockRow("L4", "Agrolatina", "Thompson", date, 50),
	}
	result := AnalyzeStock(stocks, defaultFilter(), 2)

	if len(result.ByVariety) != 2 {
		t.Fatalf("expected top 2 varieties, got %d", len(result.ByVariety))
	}
	if result.ByVariety[0].Variety != "Thompson" || result.ByVariety[0].TotalStock != 550 {
		t.Errorf("top variety = %+v, want Thompson/550", result.ByVariety[0])
	}
	if result.ByVariety[0].LotCount != 2 {
		t.Errorf("Thompson LotCount = %v, want 2", result.ByVariety[0].LotCount)
	}
	if result.ByVariety[1].Variety != "Crimson" {
		t.Errorf("second variety = %+v, want Crimson", result.ByVariety[1])
	}
}

func TestAnalyzeStock_MonthlyViewIsChronologicalSubset(t *testing.T) {
	stocks := []domain.StockRecord{
		stockRow("L1", "Agrolatina", "Crimson", time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), 40),
		stockRow("L2", "Agrolatina", "Crimson", time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), 60),
		// Unparseable entry date: excluded from the monthly view only.
		stockRow("L3", "Agrolatina", "Flame", time.Time{}, 25),
	}
	result := AnalyzeStock(stocks, defaultFilter(), 10)

	if len(result.ByMonth) != 2 {
		t.Fatalf("expected 2 months, got %v", result.ByMonth)
	}
	if result.ByMonth[0].Month != "2024-02" || result.ByMonth[1].Month != "2024-04" {
		t.Errorf("months not chronological: %v", result.ByMonth)
	}

	var monthly float64
	for _, m := range result.ByMonth {
		monthly += m.TotalStock
	}
	if monthly != 100 {
		t.Errorf("monthly total = %v, want 100 (dateless row excluded)", monthly)
	}
	// The dateless row still counts in the by-lot and by-variety views.
	if result.TotalStock != 125 {
		t.Errorf("TotalStock = %v, want 125", result.TotalStock)
	}
	if _, ok := result.ByLot["L3"]; !ok {
		t.Error("dateless row missing from by-lot view")
	}
}

func TestAnalyzeStock_ExcludedExporterDropped(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	stocks := []domain.StockRecord{
		stockRow("L1", "Videxport", "Crimson", date, 999),
		stockRow("L2", "Agrolatina", "Crimson", date, 10),
	}
	result := AnalyzeStock(stocks, defaultFilter(), 10)

	if _, ok := result.ByLot["L1"]; ok {
		t.Fatal("excluded exporter lot leaked into by-lot view")
	}
	if result.TotalStock != 10 {
		t.Fatalf("TotalStock = %v, want 10", result.TotalStock)
	}
}

func TestAnalyzeStock_EmptyInput(t *testing.T) {
	result := AnalyzeStock(nil, defaultFilter(), 10)

	if result.TotalStock != 0 || result.TotalLots != 0 || result.AvgStockPerLot != 0 {
		t.Fatalf("expected zero totals, got %+v", result)
	}
	if result.ByLot == nil || result.ByVariety == nil || result.ByMonth == nil {
		t.Fatal("views must be empty, not nil")
	}
}
