package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
	"github.com/FleetScanHQ/fuel_tax_app/internal/dto"
	"github.com/FleetScanHQ/fuel_tax_app/internal/middleware"
)

// fuelLogHandler handles HTTP requests related to fuel log records.
type fuelLogHandler struct {
	fuelLogService portssvc.FuelLogSvcFacade
}

// newFuelLogHandler creates a new fuelLogHandler.
func newFuelLogHandler(fs portssvc.FuelLogSvcFacade) *fuelLogHandler {
	return &fuelLogHandler{fuelLogService: fs}
}

// registerFuelLogRoutes registers all fuel-log routes.
func registerFuelLogRoutes(rg *gin.RouterGroup, fuelLogService portssvc.FuelLogSvcFacade) {
	h := newFuelLogHandler(fuelLogService)

	logs := rg.Group("/fuel-logs")
	{
		logs.GET("", h.listFuelLogs)
		logs.PUT("/:id/confirm", h.confirmFuelLog)
		logs.DELETE("/:id", h.deleteFuelLog)
	}
}

// confirmFuelLog overwrites the provisional row identified by the path
// id with the human-reviewed data. The id is the handle returned from
// the scan step; a 404 here means the provisional record was lost or
// deleted between scan and review.
func (h *fuelLogHandler) confirmFuelLog(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var req dto.ConfirmFuelLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for confirm request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.fuelLogService.ConfirmAndUpdate(c.Request.Context(), id, req.ToExtractedReceiptData())
	if err != nil {
		logger.Error("Failed to confirm fuel log", slog.String("fuel_log_id", id), slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelLogResponse(updated))
}

// listFuelLogs returns records with receipt dates inside [start, end],
// inclusive, ordered ascending. Used by the audit view.
func (h *fuelLogHandler) listFuelLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.ListFuelLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required as YYYY-MM-DD: " + err.Error()})
		return
	}

	start, _ := time.Parse("2006-01-02", params.Start)
	end, _ := time.Parse("2006-01-02", params.End)
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return
	}

	logs, err := h.fuelLogService.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		logger.Error("Failed to list fuel logs", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListFuelLogsResponse(logs))
}

// deleteFuelLog permanently removes a record. The client applies the
// same removal to its cached view instead of re-querying.
func (h *fuelLogHandler) deleteFuelLog(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	if err := h.fuelLogService.DeleteByID(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete fuel log", slog.String("fuel_log_id", id), slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
