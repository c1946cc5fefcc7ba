// internal/analysis/analyzer.go
package analysis

import (
	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
	"github.com/jpgart/famus-unified-reports-sub001/internal/store"
)

// Analyzer binds the aggregation functions to a record store and one set of
// business rules. Every method is a pure recomputation over the store;
// memoization lives with the caller (see the service layer).
type Analyzer struct {
	store  *store.Store
	filter *Filter
	cfg    Config
}

// NewAnalyzer builds an analyzer for the given store. Zero-valued rule
// fields fall back to the defaults.
func NewAnalyzer(st *store.Store, cfg Config) *Analyzer {
	def := DefaultConfig()
	if cfg.OutlierStdDevs <= 0 {
		cfg.OutlierStdDevs = def.OutlierStdDevs
	}
	if cfg.TopVarieties <= 0 {
		cfg.TopVarieties = def.TopVarieties
	}
	if cfg.CategoryGroups == nil {
		cfg.CategoryGroups = def.CategoryGroups
	}

	return &Analyzer{
		store:  st,
		filter: NewFilter(cfg.ExcludedExporters, cfg.ExcludedCategories),
		cfg:    cfg,
	}
}

// Filter exposes the exclusion predicate shared by all aggregations.
func (a *Analyzer) Filter() *Filter {
	return a.filter
}

// LotMetrics recomputes the per-lot cost rollup from the store.
func (a *Analyzer) LotMetrics() map[string]domain.LotMetric {
	return ComputeLotMetrics(a.store.Charges(), a.store, a.filter)
}

// ChargeAnalysis analyzes one charge category or configured category group.
func (a *Analyzer) ChargeAnalysis(name string) domain.ChargeAnalysis {
	matcher := MatcherFor(a.cfg.CategoryGroups, name)
	return AnalyzeCharge(a.store.Charges(), a.store, a.filter, matcher, a.cfg.OutlierStdDevs)
}

// StockAnalysis aggregates the stock collection with the configured top-N
// variety cut.
func (a *Analyzer) StockAnalysis() domain.StockAnalysis {
	return a.StockAnalysisTopN(a.cfg.TopVarieties)
}

// StockAnalysisTopN aggregates the stock collection with a caller-chosen
// top-N variety cut. A non-positive n falls back to the configured value.
func (a *Analyzer) StockAnalysisTopN(n int) domain.StockAnalysis {
	if n <= 0 {
		n = a.cfg.TopVarieties
	}
	return AnalyzeStock(a.store.Stocks(), a.filter, n)
}

// Profitability joins the given lot metrics against the sales rollup.
func (a *Analyzer) Profitability(lotMetrics map[string]domain.LotMetric, salesByLot map[string]domain.SalesLotRollup) domain.ProfitabilityReport {
	return JoinProfitability(lotMetrics, salesByLot, a.filter)
}

// Coverage reconciles the cost and sales datasets.
func (a *Analyzer) Coverage(lotMetrics map[string]domain.LotMetric, salesByLot map[string]domain.SalesLotRollup) domain.CoverageReport {
	return ComputeCoverage(lotMetrics, salesByLot, a.store.Charges(), a.filter)
}
