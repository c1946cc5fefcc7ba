// cmd/report/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/jpgart/famus-unified-reports-sub001/internal/analysis"
	"github.com/jpgart/famus-unified-reports-sub001/internal/cache"
	"github.com/jpgart/famus-unified-reports-sub001/internal/config"
	"github.com/jpgart/famus-unified-reports-sub001/internal/dataset"
	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
	"github.com/jpgart/famus-unified-reports-sub001/internal/service"
	"github.com/jpgart/famus-unified-reports-sub001/internal/storage"
	"github.com/jpgart/famus-unified-reports-sub001/internal/store"
	"github.com/jpgart/famus-unified-reports-sub001/pkg/logger"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "report",
		Usage: "Render sales and cost reports from the exported datasets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory containing the dataset exports",
				EnvVars: []string{"APP_DATA_DIR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "Download the dataset exports from object storage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "prefix",
						Usage:   "Object key prefix to fetch",
						EnvVars: []string{"STORAGE_PREFIX"},
					},
				},
				Action: runFetch,
			},
			{
				Name:   "lots",
				Usage:  "Render the per-lot cost metrics",
				Action: runLots,
			},
			{
				Name:      "charges",
				Usage:     "Analyze a charge category or group, e.g. 'OCEAN FREIGHT' or 'Repacking'",
				ArgsUsage: "<category>",
				Action:    runCharges,
			},
			{
				Name:   "stock",
				Usage:  "Render the stock aggregations",
				Action: runStock,
			},
			{
				Name:   "profitability",
				Usage:  "Render the cost vs sales profitability report",
				Action: runProfitability,
			},
			{
				Name:   "coverage",
				Usage:  "Render the dataset reconciliation report",
				Action: runCoverage,
			},
			{
				Name:  "dashboard",
				Usage: "Render the combined dashboard payload",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "category",
						Usage: "Charge categories to include (repeatable)",
					},
				},
				Action: runDashboard,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("report command failed")
	}
}

func loadService(c *cli.Context) (*service.ReportService, error) {
	cfg := config.Load()

	dataDir := c.String("data-dir")
	if dataDir == "" {
		dataDir = cfg.App.DataDir
	}

	charges, err := dataset.LoadCharges(filepath.Join(dataDir, cfg.App.ChargesFile))
	if err != nil {
		return nil, err
	}
	stocks, err := dataset.LoadStocks(filepath.Join(dataDir, cfg.App.StockFile))
	if err != nil {
		return nil, err
	}
	salesByLot, err := dataset.LoadSalesByLot(filepath.Join(dataDir, cfg.App.SalesFile))
	if err != nil {
		return nil, err
	}

	st, err := store.New(charges, stocks)
	if err != nil {
		return nil, err
	}

	analyzer := analysis.NewAnalyzer(st, analysis.Config{
		ExcludedExporters:  cfg.Analysis.ExcludedExporters,
		ExcludedCategories: cfg.Analysis.ExcludedCategories,
		OutlierStdDevs:     cfg.Analysis.OutlierStdDevs,
		TopVarieties:       cfg.Analysis.TopVarieties,
		CategoryGroups:     cfg.Analysis.CategoryGroups,
	})

	// One-shot renders have no use for a remote payload cache.
	return service.NewReportService(analyzer, salesByLot, cache.NewNoopDashboardCache()), nil
}

func render(v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	fmt.Println(string(payload))
	return nil
}

func runFetch(c *cli.Context) error {
	cfg := config.Load()

	client, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return err
	}

	prefix := c.String("prefix")
	if prefix == "" {
		prefix = cfg.Storage.Prefix
	}

	dataDir := c.String("data-dir")
	if dataDir == "" {
		dataDir = cfg.App.DataDir
	}

	objects, err := client.ListObjects(c.Context, prefix)
	if err != nil {
		return err
	}

	downloaded := 0
	for _, obj := range objects {
		lower := strings.ToLower(obj.Key)
		if !strings.HasSuffix(lower, ".csv") && !strings.HasSuffix(lower, ".json") {
			continue
		}
		destPath := filepath.Join(dataDir, filepath.Base(obj.Key))
		if err := client.DownloadObject(c.Context, obj.Key, destPath); err != nil {
			return err
		}
		logger.Log.Info().Str("key", obj.Key).Str("dest", destPath).Int64("size", obj.Size).Msg("Downloaded export")
		downloaded++
	}

	if downloaded == 0 {
		return fmt.Errorf("no dataset exports found under prefix %q", prefix)
	}
	return nil
}

func runLots(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	return render(svc.LotMetricList(context.Background()))
}

func runCharges(c *cli.Context) error {
	name := strings.TrimSpace(c.Args().First())
	if name == "" {
		return fmt.Errorf("a charge category is required")
	}

	svc, err := loadService(c)
	if err != nil {
		return err
	}
	return render(svc.ChargeAnalysis(context.Background(), name))
}

func runStock(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	return render(svc.StockAnalysis(context.Background()))
}

func runProfitability(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	return render(svc.Profitability(context.Background()))
}

func runCoverage(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	return render(svc.Coverage(context.Background()))
}

func runDashboard(c *cli.Context) error {
	svc, err := loadService(c)
	if err != nil {
		return err
	}

	var filter *domain.DashboardFilter
	if categories := c.StringSlice("category"); len(categories) > 0 {
		filter = &domain.DashboardFilter{Categories: categories}
	}

	report, err := svc.Dashboard(context.Background(), filter)
	if err != nil {
		return err
	}
	return render(report)
}
