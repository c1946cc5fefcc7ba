// internal/analysis/stock.go
package analysis

import (
	"sort"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// AnalyzeStock aggregates stock records into three views over the same
// group-sum-count pattern: per lot, per variety (top N by stock), and per
// calendar month (chronological).
//
// Unlike charges, stock rows ARE summed per lot: each row is an inventory
// entry, not a repeated lot total. Rows without a parseable entry date are
// excluded from the monthly view only; they still count everywhere else.
func AnalyzeStock(stocks []domain.StockRecord, f *Filter, topVarieties int) domain.StockAnalysis {
	result := domain.StockAnalysis{
		ByLot:     map[string]domain.LotStock{},
		ByVariety: []domain.VarietyStock{},
		ByMonth:   []domain.MonthStock{},
	}

	type varietyAgg struct {
		total float64
		lots  map[string]struct{}
	}
	type monthAgg struct {
		total float64
		lots  map[string]struct{}
	}

	varieties := make(map[string]*varietyAgg)
	months := make(map[string]*monthAgg)

	for _, s := range stocks {
		if !f.IncludeStock(s) {
			continue
		}

		ls := result.ByLot[s.LotID]
		if ls.Exporter == "" {
			ls.Exporter = s.Exporter
		}
		ls.TotalStock += s.InitialStock
		result.ByLot[s.LotID] = ls
		result.TotalStock += s.InitialStock

		va, ok := varieties[s.Variety]
		if !ok {
			va = &varietyAgg{lots: make(map[string]struct{})}
			varieties[s.Variety] = va
		}
		va.total += s.InitialStock
		va.lots[s.LotID] = struct{}{}

		if !s.EntryDate.IsZero() {
			key := s.EntryDate.Format("2006-01")
			ma, ok := months[key]
			if !ok {
				ma = &monthAgg{lots: make(map[string]struct{})}
				months[key] = ma
			}
			ma.total += s.InitialStock
			ma.lots[s.LotID] = struct{}{}
		}
	}

	result.TotalLots = len(result.ByLot)
	result.AvgStockPerLot = safeDiv(result.TotalStock, float64(result.TotalLots))

	for name, va := range varieties {
		result.ByVariety = append(result.ByVariety, domain.VarietyStock{
			Variety:    name,
			TotalStock: va.total,
			LotCount:   len(va.lots),
		})
	}
	sort.Slice(result.ByVariety, func(i, j int) bool {
		if result.ByVariety[i].TotalStock != result.ByVariety[j].TotalStock {
			return result.ByVariety[i].TotalStock > result.ByVariety[j].TotalStock
		}
		return result.ByVariety[i].Variety < result.ByVariety[j].Variety
	})
	if topVarieties > 0 && len(result.ByVariety) > topVarieties {
		result.ByVariety = result.ByVariety[:topVarieties]
	}

	for key, ma := range months {
		result.ByMonth = append(result.ByMonth, domain.MonthStock{
			Month:      key,
			TotalStock: ma.total,
			LotCount:   len(ma.lots),
		})
	}
	sort.Slice(result.ByMonth, func(i, j int) bool {
		return result.ByMonth[i].Month < result.ByMonth[j].Month
	})

	return result
}
