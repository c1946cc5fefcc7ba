// internal/service/report_service.go
package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jpgart/famus-unified-reports-sub001/internal/analysis"
	"github.com/jpgart/famus-unified-reports-sub001/internal/cache"
	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
)

// defaultDashboardCategories are the charge sections the combined dashboard
// renders when the caller does not ask for specific ones.
var defaultDashboardCategories = []string{"OCEAN FREIGHT", "COMMISSION", "Repacking"}

// ReportService exposes the aggregation engine to the HTTP and CLI
// surfaces. It owns the single-slot lot metrics memoization and the
// dashboard payload cache; everything underneath is a pure recomputation
// over the immutable record store.
type ReportService struct {
	analyzer   *analysis.Analyzer
	salesByLot map[string]domain.SalesLotRollup

	metrics   *cache.LotMetricsCache
	dashboard cache.DashboardCache
}

func NewReportService(analyzer *analysis.Analyzer, salesByLot map[string]domain.SalesLotRollup, dashboardCache cache.DashboardCache) *ReportService {
	if dashboardCache == nil {
		dashboardCache = cache.NewNoopDashboardCache()
	}
	return &ReportService{
		analyzer:   analyzer,
		salesByLot: salesByLot,
		metrics:    cache.NewLotMetricsCache(),
		dashboard:  dashboardCache,
	}
}

// LotMetrics returns the per-lot cost rollup, memoized until ClearCache.
// Every call after the first hands back the same map; callers must treat it
// as read-only. Consumers that need an owned shape go through LotMetricList.
func (s *ReportService) LotMetrics(ctx context.Context) map[string]domain.LotMetric {
	if metrics, ok := s.metrics.Get(); ok {
		return metrics
	}

	metrics := s.analyzer.LotMetrics()
	s.metrics.Set(metrics)
	return metrics
}

// LotMetricList returns the lot metrics as a slice sorted by lot id, the
// shape table views consume.
func (s *ReportService) LotMetricList(ctx context.Context) []domain.LotMetric {
	metrics := s.LotMetrics(ctx)

	list := make([]domain.LotMetric, 0, len(metrics))
	for _, m := range metrics {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LotID < list[j].LotID })
	return list
}

// ChargeAnalysis analyzes one charge category or configured group.
func (s *ReportService) ChargeAnalysis(ctx context.Context, name string) domain.ChargeAnalysis {
	return s.analyzer.ChargeAnalysis(name)
}

// StockAnalysis aggregates the stock collection.
func (s *ReportService) StockAnalysis(ctx context.Context) domain.StockAnalysis {
	return s.analyzer.StockAnalysis()
}

// Profitability joins costs against the sales rollup.
func (s *ReportService) Profitability(ctx context.Context) domain.ProfitabilityReport {
	return s.analyzer.Profitability(s.LotMetrics(ctx), s.salesByLot)
}

// Coverage reconciles the cost and sales datasets.
func (s *ReportService) Coverage(ctx context.Context) domain.CoverageReport {
	return s.analyzer.Coverage(s.LotMetrics(ctx), s.salesByLot)
}

// Dashboard assembles the combined payload. The per-section aggregations
// are independent pure reductions over the same immutable store, so they
// run in parallel. Rendered payloads are cached by filter.
func (s *ReportService) Dashboard(ctx context.Context, filter *domain.DashboardFilter) (*domain.DashboardReport, error) {
	if report, ok, err := s.dashboard.Get(ctx, filter); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard: cache get failed")
	}

	categories := defaultDashboardCategories
	topVarieties := 0
	if filter != nil {
		if len(filter.Categories) > 0 {
			categories = filter.Categories
		}
		topVarieties = filter.TopVarieties
	}

	report := &domain.DashboardReport{
		Charges: make(map[string]domain.ChargeAnalysis, len(categories)),
	}

	// Warm the memo slot before fanning out so the sections share one
	// computation of the lot metrics.
	metrics := s.LotMetrics(ctx)

	var (
		analyses = make([]domain.ChargeAnalysis, len(categories))
		g        errgroup.Group
	)

	g.Go(func() error {
		report.Lots = s.LotMetricList(ctx)
		return nil
	})
	for i, name := range categories {
		i, name := i, name
		g.Go(func() error {
			analyses[i] = s.analyzer.ChargeAnalysis(name)
			return nil
		})
	}
	g.Go(func() error {
		report.Stock = s.analyzer.StockAnalysisTopN(topVarieties)
		return nil
	})
	g.Go(func() error {
		report.Profitability = s.analyzer.Profitability(metrics, s.salesByLot)
		return nil
	})
	g.Go(func() error {
		report.Coverage = s.analyzer.Coverage(metrics, s.salesByLot)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, name := range categories {
		report.Charges[name] = analyses[i]
	}

	if err := s.dashboard.Set(ctx, filter, report); err != nil {
		log.Warn().Err(err).Msg("dashboard: cache set failed")
	}

	return report, nil
}

// ClearCache empties the lot metrics memo slot and invalidates cached
// dashboard payloads.
func (s *ReportService) ClearCache(ctx context.Context) error {
	s.metrics.Clear()
	return s.dashboard.InvalidateAll(ctx)
}
