// internal/analysis/lotmetrics.go
package analysis

import "github.com/jpgart/famus-unified-reports-sub001/internal/domain"

// StockLookup resolves a lot's initial box count from the stock side.
type StockLookup interface {
	InitialStock(lotID string) float64
}

// ComputeLotMetrics groups charge records by lot and produces the per-lot
// cost rollup. It is a pure single pass over the filtered charges:
//
//   - total charge amount sums only non-excluded categories
//   - the breakdown sums every category, excluded ones included, for
//     drill-down views
//   - the exporter is the first one seen for the lot
//   - total boxes come from the stock lookup, falling back to the initial
//     stock the export repeats on each charge row when the lot has no stock
//     record
//
// A lot with no charge rows does not appear in the result: absence means
// "no charge data", which callers must keep distinct from "zero charges".
func ComputeLotMetrics(charges []domain.ChargeRecord, stock StockLookup, f *Filter) map[string]domain.LotMetric {
	metrics := make(map[string]domain.LotMetric)

	for _, c := range charges {
		if !f.IncludeCharge(c) {
			continue
		}

		m, ok := metrics[c.LotID]
		if !ok {
			boxes := stock.InitialStock(c.LotID)
			if boxes == 0 {
				boxes = c.InitialStock
			}
			m = domain.LotMetric{
				LotID:           c.LotID,
				Exporter:        c.Exporter,
				TotalBoxes:      boxes,
				ChargeBreakdown: make(map[string]float64),
			}
		}

		m.ChargeBreakdown[c.ChargeCategory] += c.Amount
		if !f.CategoryExcluded(c.ChargeCategory) {
			m.TotalChargeAmount += c.Amount
		}
		metrics[c.LotID] = m
	}

	for id, m := range metrics {
		m.CostPerBox = safeDiv(m.TotalChargeAmount, m.TotalBoxes)
		metrics[id] = m
	}

	return metrics
}
