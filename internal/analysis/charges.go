// internal/analysis/charges.go
package analysis

import (
	"math"
	"sort"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// CategoryMatcher selects the charge categories one analysis covers: a
// single raw category, or a named group spanning several ("Repacking").
type CategoryMatcher struct {
	DisplayName string
	Categories  []string
}

// MatcherFor resolves a requested name against the configured category
// groups. An unknown name is treated as a single raw category, so callers
// can ask for any category that appears in the data.
func MatcherFor(groups map[string][]string, name string) CategoryMatcher {
	if members, ok := groups[name]; ok {
		return CategoryMatcher{DisplayName: name, Categories: members}
	}
	return CategoryMatcher{DisplayName: name, Categories: []string{name}}
}

func (m CategoryMatcher) matches(category string) bool {
	for _, c := range m.Categories {
		if normalizeName(c) == normalizeName(category) {
			return true
		}
	}
	return false
}

type lotChargeStat struct {
	exporter string
	total    float64
	records  int
}

// AnalyzeCharge analyzes one charge category (or category group): per-lot
// totals, a summary, symmetric statistical outliers, and a per-exporter
// rollup. Rows with a non-positive amount are excluded from this display
// analysis even though lot metrics still count them; that asymmetry is
// deliberate and covered by tests.
//
// An empty match set returns a well-formed zero-valued result so UI code
// never needs a nil check.
func AnalyzeCharge(charges []domain.ChargeRecord, stock StockLookup, f *Filter, matcher CategoryMatcher, outlierStdDevs float64) domain.ChargeAnalysis {
	result := domain.ChargeAnalysis{
		DisplayName: matcher.DisplayName,
		Categories:  matcher.Categories,
		Outliers:    []domain.ChargeOutlier{},
		ByExporter:  map[string]domain.ExporterChargeStat{},
	}

	// 1+2. Filter to matching positive-amount rows, group by lot.
	byLot := make(map[string]*lotChargeStat)
	for _, c := range charges {
		if !f.IncludeCharge(c) {
			continue
		}
		if !matcher.matches(c.ChargeCategory) || c.Amount <= 0 {
			continue
		}
		s, ok := byLot[c.LotID]
		if !ok {
			s = &lotChargeStat{exporter: c.Exporter}
			byLot[c.LotID] = s
		}
		s.total += c.Amount
		s.records++
		result.Summary.TotalAmount += c.Amount
		result.Summary.TotalRecords++
	}

	result.Summary.LotsWithCharge = len(byLot)
	result.Summary.AvgChargePerLot = safeDiv(result.Summary.TotalAmount, float64(len(byLot)))
	result.Summary.AvgChargeAmount = safeDiv(result.Summary.TotalAmount, float64(result.Summary.TotalRecords))

	if len(byLot) == 0 {
		return result
	}

	lotIDs := make([]string, 0, len(byLot))
	totals := make([]float64, 0, len(byLot))
	for id, s := range byLot {
		lotIDs = append(lotIDs, id)
		totals = append(totals, s.total)
	}
	sort.Strings(lotIDs)

	// 3. Symmetric outliers on per-lot totals. A zero standard deviation
	// (all totals equal) produces no outliers.
	m := mean(totals)
	sd := stdDev(totals, m)
	if sd > 0 {
		for _, id := range lotIDs {
			s := byLot[id]
			if math.Abs(s.total-m) > outlierStdDevs*sd {
				result.Outliers = append(result.Outliers, domain.ChargeOutlier{
					LotID:       id,
					Exporter:    s.exporter,
					TotalAmount: s.total,
					Deviation:   s.total - m,
				})
			}
		}
	}

	// 4. Per-exporter rollup, with boxes taken from the stock side.
	for _, id := range lotIDs {
		s := byLot[id]
		es := result.ByExporter[s.exporter]
		es.TotalAmount += s.total
		es.Lots++
		es.TotalBoxes += stock.InitialStock(id)
		result.ByExporter[s.exporter] = es
	}
	for name, es := range result.ByExporter {
		es.AvgPerBox = safeDiv(es.TotalAmount, es.TotalBoxes)
		result.ByExporter[name] = es
	}

	return result
}
