// internal/domain/reports.go
package domain

// LotMetric is the per-lot cost rollup computed from charge records.
type LotMetric struct {
	LotID    string `json:"lot_id"`
	Exporter string `json:"exporter"`
	// TotalChargeAmount excludes block-listed charge categories.
	TotalChargeAmount float64 `json:"total_charge_amount"`
	TotalBoxes        float64 `json:"total_boxes"`
	CostPerBox        float64 `json:"cost_per_box"`
	// ChargeBreakdown sums every category individually, including excluded
	// ones, to support category drill-down.
	ChargeBreakdown map[string]float64 `json:"charge_breakdown"`
}

// ChargeSummary summarizes one charge category (or category group).
type ChargeSummary struct {
	TotalAmount     float64 `json:"total_amount"`
	TotalRecords    int     `json:"total_records"`
	LotsWithCharge  int     `json:"lots_with_charge"`
	AvgChargePerLot float64 `json:"avg_charge_per_lot"`
	AvgChargeAmount float64 `json:"avg_charge_amount"`
}

// ChargeOutlier is a lot whose total for the analyzed category deviates from
// the mean by more than the configured number of standard deviations.
type ChargeOutlier struct {
	LotID       string  `json:"lot_id"`
	Exporter    string  `json:"exporter"`
	TotalAmount float64 `json:"total_amount"`
	Deviation   float64 `json:"deviation"`
}

// ExporterChargeStat is the per-exporter rollup inside a charge analysis.
type ExporterChargeStat struct {
	TotalAmount float64 `json:"total_amount"`
	Lots        int     `json:"lots"`
	TotalBoxes  float64 `json:"total_boxes"`
	AvgPerBox   float64 `json:"avg_per_box"`
}

// ChargeAnalysis is the result of analyzing a single charge category or a
// named group of categories.
type ChargeAnalysis struct {
	DisplayName string                        `json:"display_name"`
	Categories  []string                      `json:"categories"`
	Summary     ChargeSummary                 `json:"summary"`
	Outliers    []ChargeOutlier               `json:"outliers"`
	ByExporter  map[string]ExporterChargeStat `json:"by_exporter"`
}

// LotStock is the summed stock for one lot.
type LotStock struct {
	Exporter   string  `json:"exporter"`
	TotalStock float64 `json:"total_stock"`
}

// VarietyStock is one entry of the top-varieties view.
type VarietyStock struct {
	Variety    string  `json:"variety"`
	TotalStock float64 `json:"total_stock"`
	LotCount   int     `json:"lot_count"`
}

// MonthStock is one entry of the chronological monthly view. Month uses the
// YYYY-MM key derived from the entry date.
type MonthStock struct {
	Month      string  `json:"month"`
	TotalStock float64 `json:"total_stock"`
	LotCount   int     `json:"lot_count"`
}

// StockAnalysis aggregates stock records by lot, variety and month.
type StockAnalysis struct {
	TotalStock     float64             `json:"total_stock"`
	TotalLots      int                 `json:"total_lots"`
	AvgStockPerLot float64             `json:"avg_stock_per_lot"`
	ByLot          map[string]LotStock `json:"by_lot"`
	ByVariety      []VarietyStock      `json:"by_variety"`
	ByMonth        []MonthStock        `json:"by_month"`
}

// ProfitabilityRecord joins a lot's cost metrics with its sales rollup.
// Only lots present in both datasets produce a record.
type ProfitabilityRecord struct {
	LotID             string  `json:"lot_id"`
	Exporter          string  `json:"exporter"`
	Variety           string  `json:"variety"`
	TotalSales        float64 `json:"total_sales"`
	TotalQuantity     float64 `json:"total_quantity"`
	TotalChargeAmount float64 `json:"total_charge_amount"`
	TotalBoxes        float64 `json:"total_boxes"`
	Profit            float64 `json:"profit"`
	ProfitMargin      float64 `json:"profit_margin"`
	ROI               float64 `json:"roi"`
	ProfitPerBox      float64 `json:"profit_per_box"`
}

// ProfitabilityRollup is a grouped sum over profitability records, keyed by
// exporter or variety.
type ProfitabilityRollup struct {
	Lots         int     `json:"lots"`
	TotalSales   float64 `json:"total_sales"`
	TotalCharges float64 `json:"total_charges"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
	ROI          float64 `json:"roi"`
}

// ProfitabilityReport is the full output of the profitability joiner.
type ProfitabilityReport struct {
	Records    []ProfitabilityRecord          `json:"records"`
	ByExporter map[string]ProfitabilityRollup `json:"by_exporter"`
	ByVariety  map[string]ProfitabilityRollup `json:"by_variety"`
	Totals     ProfitabilityRollup            `json:"totals"`
}

// CoverageReport makes the silent join exclusions observable: lots dropped
// from the profitability join on either side, and lots whose charge rows
// carry more than one exporter.
type CoverageReport struct {
	LotsWithCosts     int      `json:"lots_with_costs"`
	LotsWithSales     int      `json:"lots_with_sales"`
	LotsJoined        int      `json:"lots_joined"`
	CostOnlyLots      []string `json:"cost_only_lots"`
	SalesOnlyLots     []string `json:"sales_only_lots"`
	CostOnlyAmount    float64  `json:"cost_only_amount"`
	SalesOnlyAmount   float64  `json:"sales_only_amount"`
	MultiExporterLots []string `json:"multi_exporter_lots"`
}

// DashboardFilter selects what goes into a combined dashboard payload.
type DashboardFilter struct {
	Categories   []string `json:"categories"`
	TopVarieties int      `json:"top_varieties"`
}

// DashboardReport is the combined payload consumed by the reporting UI.
type DashboardReport struct {
	Lots          []LotMetric               `json:"lots"`
	Charges       map[string]ChargeAnalysis `json:"charges"`
	Stock         StockAnalysis             `json:"stock"`
	Profitability ProfitabilityReport       `json:"profitability"`
	Coverage      CoverageReport            `json:"coverage"`
}
