package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jpgart/famus-unified-reports-sub001/internal/domain"
	"github.com/jpgart/famus-unified-reports-sub001/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// parseDashboardFilter reads the optional dashboard filter from the query.
// Categories are accepted both as repeated params and as comma-separated
// strings:
//
//	?category=OCEAN FREIGHT&category=COMMISSION
//	?category=OCEAN FREIGHT,COMMISSION
func (h *ReportHandler) parseDashboardFilter(c *gin.Context) *domain.DashboardFilter {
	filter := &domain.DashboardFilter{}

	raw := c.QueryArray("category")
	if len(raw) == 0 {
		if single := strings.TrimSpace(c.Query("categories")); single != "" {
			raw = []string{single}
		}
	}
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				filter.Categories = append(filter.Categories, part)
			}
		}
	}

	if top, err := strconv.Atoi(c.DefaultQuery("top_varieties", "0")); err == nil && top > 0 {
		filter.TopVarieties = top
	}

	if len(filter.Categories) == 0 && filter.TopVarieties == 0 {
		return nil
	}
	return filter
}

func (h *ReportHandler) GetLots(c *gin.Context) {
	lots := h.service.LotMetricList(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"lots":  lots,
		"total": len(lots),
	})
}

func (h *ReportHandler) GetChargeAnalysis(c *gin.Context) {
	name := strings.TrimSpace(c.Param("category"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "charge category is required"})
		return
	}

	c.JSON(http.StatusOK, h.service.ChargeAnalysis(c.Request.Context(), name))
}

func (h *ReportHandler) GetStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.StockAnalysis(c.Request.Context()))
}

func (h *ReportHandler) GetProfitability(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Profitability(c.Request.Context()))
}

func (h *ReportHandler) GetCoverage(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Coverage(c.Request.Context()))
}

func (h *ReportHandler) GetDashboard(c *gin.Context) {
	filter := h.parseDashboardFilter(c)

	report, err := h.service.Dashboard(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) ClearCache(c *gin.Context) {
	if err := h.service.ClearCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
