// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jpgart/famus-unified-reports-sub001/internal/analysis"
	"github.com/jpgart/famus-unified-reports-sub001/internal/api"
	"github.com/jpgart/famus-unified-reports-sub001/internal/cache"
	"github.com/jpgart/famus-unified-reports-sub001/internal/config"
	"github.com/jpgart/famus-unified-reports-sub001/internal/dataset"
	"github.com/jpgart/famus-unified-reports-sub001/internal/service"
	"github.com/jpgart/famus-unified-reports-sub001/internal/store"
	"github.com/jpgart/famus-unified-reports-sub001/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	reports, err := buildReportService(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize report service")
	}

	router := api.NewRouter(reports, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildReportService(cfg *config.Config) (*service.ReportService, error) {
	charges, err := dataset.LoadCharges(filepath.Join(cfg.App.DataDir, cfg.App.ChargesFile))
	if err != nil {
		return nil, err
	}
	stocks, err := dataset.LoadStocks(filepath.Join(cfg.App.DataDir, cfg.App.StockFile))
	if err != nil {
		return nil, err
	}
	salesByLot, err := dataset.LoadSalesByLot(filepath.Join(cfg.App.DataDir, cfg.App.SalesFile))
	if err != nil {
		return nil, err
	}

	st, err := store.New(charges, stocks)
	if err != nil {
		return nil, err
	}
	logger.Log.Info().
		Int("charges", st.ChargeCount()).
		Int("stocks", st.StockCount()).
		Int("sales_lots", len(salesByLot)).
		Msg("Datasets loaded")

	analyzer := analysis.NewAnalyzer(st, analysis.Config{
		ExcludedExporters:  cfg.Analysis.ExcludedExporters,
		ExcludedCategories: cfg.Analysis.ExcludedCategories,
		OutlierStdDevs:     cfg.Analysis.OutlierStdDevs,
		TopVarieties:       cfg.Analysis.TopVarieties,
		CategoryGroups:     cfg.Analysis.CategoryGroups,
	})

	dashboardCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Dashboard cache unavailable, running without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	return service.NewReportService(analyzer, salesByLot, dashboardCache), nil
}
