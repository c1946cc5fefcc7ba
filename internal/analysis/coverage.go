// internal/analysis/coverage.go
package analysis

import (
	"sort"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// ComputeCoverage reconciles the cost and sales datasets. The profitability
// join silently drops lots present on only one side; this report is where
// that data-coverage gap becomes visible. It also flags lots whose charge
// rows carry more than one exporter, which the lot metrics resolve
// first-seen-wins.
func ComputeCoverage(lotMetrics map[string]domain.LotMetric, salesByLot map[string]domain.SalesLotRollup, charges []domain.ChargeRecord, f *Filter) domain.CoverageReport {
	report := domain.CoverageReport{
		CostOnlyLots:      []string{},
		SalesOnlyLots:     []string{},
		MultiExporterLots: []string{},
	}

	report.LotsWithCosts = len(lotMetrics)
	for id, m := range lotMetrics {
		if _, ok := salesByLot[id]; ok {
			report.LotsJoined++
			continue
		}
		report.CostOnlyLots = append(report.CostOnlyLots, id)
		report.CostOnlyAmount += m.TotalChargeAmount
	}
	sort.Strings(report.CostOnlyLots)

	for id, sales := range salesByLot {
		if f.ExporterExcluded(sales.Exporter) {
			continue
		}
		report.LotsWithSales++
		if _, ok := lotMetrics[id]; ok {
			continue
		}
		report.SalesOnlyLots = append(report.SalesOnlyLots, id)
		report.SalesOnlyAmount += sales.TotalSales
	}
	sort.Strings(report.SalesOnlyLots)

	exportersByLot := make(map[string]map[string]struct{})
	for _, c := range charges {
		if !f.IncludeCharge(c) {
			continue
		}
		set, ok := exportersByLot[c.LotID]
		if !ok {
			set = make(map[string]struct{})
			exportersByLot[c.LotID] = set
		}
		set[normalizeName(c.Exporter)] = struct{}{}
	}
	for id, set := range exportersByLot {
		if len(set) > 1 {
			report.MultiExporterLots = append(report.MultiExporterLots, id)
		}
	}
	sort.Strings(report.MultiExporterLots)

	return report
}
