// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jpgart/famus-unified-reports-sub001/internal/api/handlers"
	"github.com/jpgart/famus-unified-reports-sub001/internal/api/middleware"
	"github.com/jpgart/famus-unified-reports-sub001/internal/service"
)

func NewRouter(reports *service.ReportService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if reports != nil {
		reportHandler := handlers.NewReportHandler(reports)
		reportsGroup := apiGroup.Group("/reports")
		{
			reportsGroup.GET("/lots", reportHandler.GetLots)
			reportsGroup.GET("/charges/:category", reportHandler.GetChargeAnalysis)
			reportsGroup.GET("/stock", reportHandler.GetStock)
			reportsGroup.GET("/profitability", reportHandler.GetProfitability)
			reportsGroup.GET("/coverage", reportHandler.GetCoverage)
			reportsGroup.GET("/dashboard", reportHandler.GetDashboard)
			reportsGroup.POST("/cache/clear", reportHandler.ClearCache)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
