package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCharges(t *testing.T) {
	path := writeFile(t, "charges.csv",
		"Lot ID,Exporter,Charge Category,Amount,Quantity,Initial Stock\n"+
			"L1,Agrolatina,OCEAN FREIGHT,\"1.234,56\",10,120\n"+
			"L1,Agrolatina,GROWER ADVANCES,\"50,00\",,120\n"+
			"L2,Unifrutti,COMMISSION,,5,80\n")

	records, err := LoadCharges(path)
	if err != nil {
		t.Fatalf("LoadCharges: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if first.LotID != "L1" || first.Exporter != "Agrolatina" || first.ChargeCategory != "OCEAN FREIGHT" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Amount != 1234.56 {
		t.Errorf("Amount = %v, want 1234.56", first.Amount)
	}
	if first.InitialStock != 120 {
		t.Errorf("InitialStock = %v, want 120", first.InitialStock)
	}

	// Missing amount resolves to zero, not an error.
	if records[2].Amount != 0 {
		t.Errorf("missing amount = %v, want 0", records[2].Amount)
	}
}

func TestLoadStocks(t *testing.T) {
	path := writeFile(t, "stock.csv",
		"lot_id,exporter,variety,entry_date,initial_stock\n"+
			"L1,Agrolatina,Crimson,03/15/2024,\"1.000\"\n"+
			"L2,Unifrutti,Thompson,bad-date,50\n")

	records, err := LoadStocks(path)
	if err != nil {
		t.Fatalf("LoadStocks: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !records[0].EntryDate.Equal(want) {
		t.Errorf("EntryDate = %v, want %v", records[0].EntryDate, want)
	}
	if records[0].InitialStock != 1000 {
		t.Errorf("InitialStock = %v, want 1000", records[0].InitialStock)
	}

	// An unparseable date keeps the row with a zero date.
	if !records[1].EntryDate.IsZero() {
		t.Errorf("bad date should be zero, got %v", records[1].EntryDate)
	}
}

func TestLoadSalesByLot(t *testing.T) {
	path := writeFile(t, "sales_by_lot.json", `[
		{"lot_id":"L1","exporter":"Agrolatina","variety":"Crimson","total_sales":2500.5,"total_quantity":100,"transaction_count":4,"retailer_count":2,"avg_price":25.005},
		{"lot_id":"L2","exporter":"Unifrutti","variety":"Thompson","total_sales":900,"total_quantity":45}
	]`)

	byLot, err := LoadSalesByLot(path)
	if err != nil {
		t.Fatalf("LoadSalesByLot: %v", err)
	}
	if len(byLot) != 2 {
		t.Fatalf("got %d rollups, want 2", len(byLot))
	}
	if byLot["L1"].TotalSales != 2500.5 || byLot["L1"].RetailerCount != 2 {
		t.Errorf("L1 rollup = %+v", byLot["L1"])
	}
}

func TestLoadCharges_MissingFile(t *testing.T) {
	if _, err := LoadCharges(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
