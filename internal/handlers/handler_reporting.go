package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
	"github.com/FleetScanHQ/fuel_tax_app/internal/dto"
	"github.com/FleetScanHQ/fuel_tax_app/internal/middleware"
)

// reportingHandler handles IFTA audit endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

func registerAuditRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	audit := rg.Group("/audit")
	{
		audit.GET("/quarters", h.listQuarters)
		audit.GET("/summary", h.quarterlySummary)
	}
}

// listQuarters returns the selectable reporting periods with their
// deadline flags evaluated at request time.
func (h *reportingHandler) listQuarters(c *gin.Context) {
	now := time.Now()
	quarters := make([]dto.QuarterResponse, len(domain.Quarters))
	for i, q := range domain.Quarters {
		quarters[i] = dto.ToQuarterResponse(q, now)
	}
	c.JSON(http.StatusOK, dto.ListQuartersResponse{Quarters: quarters})
}

// quarterlySummary computes the IFTA figures for one quarter. Mileage
// totals come in as query parameters and default to zero when absent.
func (h *reportingHandler) quarterlySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.QuarterlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid summary query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "quarter query parameter is required"})
		return
	}

	quarter, ok := domain.FindQuarter(params.Quarter)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown quarter: " + params.Quarter})
		return
	}

	totalMiles, err := parseMiles(params.TotalMiles)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "total_miles must be a number"})
		return
	}
	gaMiles, err := parseMiles(params.GAMiles)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ga_miles must be a number"})
		return
	}

	summary, err := h.reportingService.QuarterlySummary(c.Request.Context(), quarter, totalMiles, gaMiles)
	if err != nil {
		logger.Error("Failed to compute quarterly summary",
			slog.String("quarter", quarter.Value),
			slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuarterlySummaryResponse(summary, time.Now()))
}

func parseMiles(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
