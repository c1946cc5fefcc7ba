// internal/analysis/profitability.go
package analysis

import (
	"sort"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// JoinProfitability joins lot metrics with the externally supplied per-lot
// sales rollup. The join is driven from the sales side on purpose: a lot in
// the sales rollup without cost data is skipped (profitability cannot be
// computed), and a lot with cost data but no sales never appears. Both
// directions of silent exclusion are surfaced by ComputeCoverage, never by
// an error here.
func JoinProfitability(lotMetrics map[string]domain.LotMetric, salesByLot map[string]domain.SalesLotRollup, f *Filter) domain.ProfitabilityReport {
	report := domain.ProfitabilityReport{
		Records:    []domain.ProfitabilityRecord{},
		ByExporter: map[string]domain.ProfitabilityRollup{},
		ByVariety:  map[string]domain.ProfitabilityRollup{},
	}

	lotIDs := make([]string, 0, len(salesByLot))
	for id := range salesByLot {
		lotIDs = append(lotIDs, id)
	}
	sort.Strings(lotIDs)

	for _, id := range lotIDs {
		sales := salesByLot[id]
		if f.ExporterExcluded(sales.Exporter) {
			continue
		}
		metric, ok := lotMetrics[id]
		if !ok {
			continue
		}

		profit := sales.TotalSales - metric.TotalChargeAmount
		rec := domain.ProfitabilityRecord{
			LotID:             id,
			Exporter:          metric.Exporter,
			Variety:           sales.Variety,
			TotalSales:        sales.TotalSales,
			TotalQuantity:     sales.TotalQuantity,
			TotalChargeAmount: metric.TotalChargeAmount,
			TotalBoxes:        metric.TotalBoxes,
			Profit:            profit,
			ProfitMargin:      safeDiv(profit, sales.TotalSales) * 100,
			ROI:               safeDiv(profit, metric.TotalChargeAmount) * 100,
			ProfitPerBox:      safeDiv(profit, metric.TotalBoxes),
		}
		report.Records = append(report.Records, rec)
	}

	for _, rec := range report.Records {
		accumulateRollup(report.ByExporter, rec.Exporter, rec)
		accumulateRollup(report.ByVariety, rec.Variety, rec)

		report.Totals.Lots++
		report.Totals.TotalSales += rec.TotalSales
		report.Totals.TotalCharges += rec.TotalChargeAmount
		report.Totals.Profit += rec.Profit
	}
	report.Totals.ProfitMargin = safeDiv(report.Totals.Profit, report.Totals.TotalSales) * 100
	report.Totals.ROI = safeDiv(report.Totals.Profit, report.Totals.TotalCharges) * 100

	return report
}

func accumulateRollup(rollups map[string]domain.ProfitabilityRollup, key string, rec domain.ProfitabilityRecord) {
	r := rollups[key]
	r.Lots++
	r.TotalSales += rec.TotalSales
	r.TotalCharges += rec.TotalChargeAmount
	r.Profit += rec.Profit
	r.ProfitMargin = safeDiv(r.Profit, r.TotalSales) * 100
	r.ROI = safeDiv(r.Profit, r.TotalCharges) * 100
	rollups[key] = r
}
