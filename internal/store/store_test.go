package store

import (
	"strings"
	"testing"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

func TestNew_RejectsMissingLotID(t *testing.T) {
	_, err := New([]domain.ChargeRecord{{Exporter: "Agrolatina", Amount: 10}}, nil)
	if err == nil {
		t.Fatal("expected error for charge record without lot id")
	}
	if !strings.Contains(err.Error(), "lot id") {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = New(nil, []domain.StockRecord{{Exporter: "Agrolatina"}})
	if err == nil {
		t.Fatal("expected error for stock record without lot id")
	}
}

func TestNew_InitialStockFirstValueWins(t *testing.T) {
	st, err := New(nil, []domain.StockRecord{
		{LotID: "L1", Exporter: "Agrolatina", InitialStock: 100},
		{LotID: "L1", Exporter: "Agrolatina", InitialStock: 40},
		{LotID: "L2", Exporter: "Unifrutti", InitialStock: 25},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := st.InitialStock("L1"); got != 100 {
		t.Fatalf("InitialStock(L1) = %v, want 100 (first value wins)", got)
	}
	if got := st.InitialStock("L2"); got != 25 {
		t.Fatalf("InitialStock(L2) = %v, want 25", got)
	}
	if got := st.InitialStock("missing"); got != 0 {
		t.Fatalf("InitialStock(missing) = %v, want 0", got)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	charges := []domain.ChargeRecord{{LotID: "L1", Exporter: "Agrolatina", Amount: 50}}
	st, err := New(charges, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	charges[0].Amount = 999
	if got := st.Charges()[0].Amount; got != 50 {
		t.Fatalf("store charge mutated through caller slice: %v", got)
	}
	if st.ChargeCount() != 1 || st.StockCount() != 0 {
		t.Fatalf("unexpected counts: %d charges, %d stocks", st.ChargeCount(), st.StockCount())
	}
}
