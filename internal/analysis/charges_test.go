package analysis

import (
	"fmt"
	"testing"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

func oceanFreightMatcher() CategoryMatcher {
	return MatcherFor(DefaultConfig().CategoryGroups, "OCEAN FREIGHT")
}

func TestAnalyzeCharge_Summary(t *testing.T) {
	charges := []domain.ChargeRecord{
		charge("L1", "Agrolatina", "OCEAN FREIGHT", 100),
		charge("L1", "Agrolatina", "OCEAN FREIGHT", 50),
		charge("L2", "Unifrutti", "OCEAN FREIGHT", 150),
		charge("L3", "Agrolatina", "COMMISSION", 999), // different category
	}
	result := AnalyzeCharge(charges, stockMap{"L1": 10, "L2": 30}, defaultFilter(), oceanFreightMatcher(), 2)

	if result.Summary.TotalAmount != 300 {
		t.Errorf("TotalAmount = %v, want 300", result.Summary.TotalAmount)
	}
	if result.Summary.TotalRecords != 3 {
		t.Errorf("TotalRecords = %v, want 3", result.Summary.TotalRecords)
	}
	if result.Summary.LotsWithCharge != 2 {
		t.Errorf("LotsWithCharge = %v, want 2", result.Summary.LotsWithCharge)
	}
	if result.Summary.AvgChargePerLot != 150 {
		t.Errorf("AvgChargePerLot = %v, want 150", result.Summary.AvgChargePerLot)
	}
	if result.Summary.AvgChargeAmount != 100 {
		t.Errorf("AvgChargeAmount = %v, want 100", result.Summary.AvgChargeAmount)
	}

	agro := result.ByExporter["Agrolatina"]
	if agro.TotalAmount != 150 || agro.Lots != 1 || agro.TotalBoxes != 10 {
		t.Errorf("Agrolatina rollup = %+v", agro)
	}
	if agro.AvgPerBox != 15 {
		t.Errorf("Agrolatina AvgPerBox = %v, want 15", agro.AvgPerBox)
	}
}

func TestAnalyzeCharge_EmptyCategoryIsWellFormed(t *testing.T) {
	charges := []domain.ChargeRecord{charge("L1", "Agrolatina", "OCEAN FREIGHT", 100)}
	matcher := MatcherFor(nil, "NONEXISTENT CATEGORY")
	result := AnalyzeCharge(charges, stockMap{}, defaultFilter(), matcher, 2)

	if result.Summary.TotalAmount != 0 || result.Summary.TotalRecords != 0 || result.Summary.LotsWithCharge != 0 {
		t.Fatalf("expected zero summary, got %+v", result.Summary)
	}
	if result.ByExporter == nil || len(result.ByExporter) != 0 {
		t.Fatalf("ByExporter must be an empty map, got %v", result.ByExporter)
	}
	if result.Outliers == nil || len(result.Outliers) != 0 {
		t.Fatalf("Outliers must be an empty slice, got %v", result.Outliers)
	}
}

func TestAnalyzeCharge_OutlierSymmetry(t *testing.T) {
	// Ten lots near-constant at 100, one far above, one equally far below.
	// The threshold is symmetric, so both extremes must be flagged.
	var charges []domain.ChargeRecord
	for i := 0; i < 10; i++ {
		charges = append(charges, charge(fmt.Sprintf("M%02d", i), "Agrolatina", "COMMISSION", 100))
	}
	// Symmetric extremes around the mean of 100: with these twelve totals the
	// population stddev is ~36.7, so the 2-stddev band is ~73.5 wide and only
	// the two 90-point deviations fall outside it.
	charges = append(charges,
		charge("HIGH", "Agrolatina", "COMMISSION", 190),
		charge("LOW", "Agrolatina", "COMMISSION", 10),
	)

	matcher := MatcherFor(nil, "COMMISSION")
	result := AnalyzeCharge(charges, stockMap{}, defaultFilter(), matcher, 2)

	flagged := make(map[string]domain.ChargeOutlier)
	for _, o := range result.Outliers {
		flagged[o.LotID] = o
	}

	high, ok := flagged["HIGH"]
	if !ok {
		t.Fatalf("high extreme not flagged; outliers: %v", result.Outliers)
	}
	if high.Deviation <= 0 {
		t.Errorf("high outlier deviation = %v, want > 0", high.Deviation)
	}
	low, ok := flagged["LOW"]
	if !ok {
		t.Fatalf("low extreme not flagged; outliers: %v", result.Outliers)
	}
	if low.Deviation >= 0 {
		t.Errorf("low outlier deviation = %v, want < 0", low.Deviation)
	}
	if len(result.Outliers) != 2 {
		t.Fatalf("expected exactly the two extremes, got %v", result.Outliers)
	}
}

func TestAnalyzeCharge_IdenticalTotalsProduceNoOutliers(t *testing.T) {
	var charges []domain.ChargeRecord
	for i := 0; i < 5; i++ {
		charges = append(charges, charge(fmt.Sprintf("L%d", i), "Agrolatina", "COMMISSION", 250))
	}
	result := AnalyzeCharge(charges, stockMap{}, defaultFilter(), MatcherFor(nil, "COMMISSION"), 2)

	if len(result.Outliers) != 0 {
		t.Fatalf("stddev is 0, expected no outliers, got %v", result.Outliers)
	}
}

func TestAnalyzeCharge_PositiveAmountAsymmetry(t *testing.T) {
	// The analyzer drops non-positive amounts from its display totals, but
	// lot metrics keep them. Changing either side silently changes what the
	// dashboards show versus the KPI totals.
	charges := []domain.ChargeRecord{
		charge("L1", "Agrolatina", "COMMISSION", 100),
		charge("L1", "Agrolatina", "COMMISSION", -20),
		charge("L1", "Agrolatina", "COMMISSION", 0),
	}

	result := AnalyzeCharge(charges, stockMap{}, defaultFilter(), MatcherFor(nil, "COMMISSION"), 2)
	if result.Summary.TotalAmount != 100 || result.Summary.TotalRecords != 1 {
		t.Errorf("analyzer summary = %+v, want only the positive row", result.Summary)
	}

	metrics := ComputeLotMetrics(charges, stockMap{}, defaultFilter())
	if got := metrics["L1"].TotalChargeAmount; got != 80 {
		t.Errorf("lot metrics total = %v, want 80 (non-positive amounts included)", got)
	}
}

func TestAnalyzeCharge_CategoryGroup(t *testing.T) {
	cfg := DefaultConfig()
	charges := []domain.ChargeRecord{
		charge("L1", "Agrolatina", "PACKING MATERIALS", 60),
		charge("L1", "Agrolatina", "REPACKING CHARGES", 40),
		charge("L2", "Unifrutti", "REPACKING CHARGES", 25),
		charge("L3", "Agrolatina", "OCEAN FREIGHT", 500),
	}

	matcher := MatcherFor(cfg.CategoryGroups, "Repacking")
	if len(matcher.Categories) != 2 {
		t.Fatalf("Repacking group should span 2 categories, got %v", matcher.Categories)
	}

	result := AnalyzeCharge(charges, stockMap{}, defaultFilter(), matcher, cfg.OutlierStdDevs)
	if result.Summary.TotalAmount != 125 {
		t.Errorf("TotalAmount = %v, want 125", result.Summary.TotalAmount)
	}
	if result.Summary.LotsWithCharge != 2 {
		t.Errorf("LotsWithCharge = %v, want 2", result.Summary.LotsWithCharge)
	}
	if result.DisplayName != "Repacking" {
		t.Errorf("DisplayName = %q", result.DisplayName)
	}
}

func TestAnalyzeCharge_ExcludedExporterNeverAppears(t *testing.T) {
	charges := []domain.ChargeRecord{
		charge("L1", "Del Monte", "OCEAN FREIGHT", 100),
		charge("L2", "Agrolatina", "OCEAN FREIGHT", 60),
	}
	result := AnalyzeCharge(charges, stockMap{}, defaultFilter(), oceanFreightMatcher(), 2)

	if _, ok := result.ByExporter["Del Monte"]; ok {
		t.Fatal("excluded exporter leaked into byExporter breakdown")
	}
	if result.Summary.TotalAmount != 60 {
		t.Fatalf("TotalAmount = %v, want 60", result.Summary.TotalAmount)
	}
}
