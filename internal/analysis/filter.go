// internal/analysis/filter.go
package analysis

import (
	"strings"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// Filter is the exclusion predicate applied before every aggregation.
//
// Exporter exclusion drops the row entirely: a block-listed exporter never
// contributes to any output. Category exclusion is narrower by design: the
// row still feeds the per-category breakdown (so the UI can drill into
// GROWER ADVANCES), but its amount never enters a lot's total charge.
// Centralizing both rules here is what keeps every aggregator consistent.
type Filter struct {
	exporters  map[string]struct{}
	categories map[string]struct{}
}

// NewFilter builds a filter from the two block-lists. Matching is
// case-insensitive so "Videxport" and "VIDEXPORT" are one rule.
func NewFilter(excludedExporters, excludedCategories []string) *Filter {
	f := &Filter{
		exporters:  make(map[string]struct{}, len(excludedExporters)),
		categories: make(map[string]struct{}, len(excludedCategories)),
	}
	for _, e := range excludedExporters {
		f.exporters[normalizeName(e)] = struct{}{}
	}
	for _, c := range excludedCategories {
		f.categories[normalizeName(c)] = struct{}{}
	}
	return f
}

// ExporterExcluded reports whether an exporter is block-listed.
func (f *Filter) ExporterExcluded(name string) bool {
	_, ok := f.exporters[normalizeName(name)]
	return ok
}

// CategoryExcluded reports whether a charge category is block-listed.
func (f *Filter) CategoryExcluded(category string) bool {
	_, ok := f.categories[normalizeName(category)]
	return ok
}

// IncludeCharge reports whether a charge row participates in aggregation at
// all. Only the exporter rule drops whole rows; see the type docs.
func (f *Filter) IncludeCharge(c domain.ChargeRecord) bool {
	return !f.ExporterExcluded(c.Exporter)
}

// IncludeStock reports whether a stock row participates in aggregation.
func (f *Filter) IncludeStock(s domain.StockRecord) bool {
	return !f.ExporterExcluded(s.Exporter)
}

func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
