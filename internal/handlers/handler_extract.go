package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
	"github.com/FleetScanHQ/fuel_tax_app/internal/dto"
	"github.com/FleetScanHQ/fuel_tax_app/internal/middleware"
)

// extractHandler handles the receipt scan pipeline endpoint.
type extractHandler struct {
	extractionService portssvc.ExtractionSvcFacade
}

func newExtractHandler(es portssvc.ExtractionSvcFacade) *extractHandler {
	return &extractHandler{extractionService: es}
}

// registerExtractRoutes registers the extraction route behind the rate
// limiter when one is configured.
func registerExtractRoutes(rg *gin.RouterGroup, extractionService portssvc.ExtractionSvcFacade, extractLimiter *limiter.Limiter) {
	h := newExtractHandler(extractionService)

	receipts := rg.Group("/receipts")
	if extractLimiter != nil {
		receipts.Use(middleware.RateLimit(extractLimiter))
	}
	receipts.POST("/extract", h.extractReceipt)
}

// extractReceipt accepts a multipart form with the receipt image under
// "receipt" and an optional "truck_id" fallback, runs extraction,
// uploads the image and persists a provisional record. The response
// carries the record ID the client must use for the confirm step.
func (h *extractHandler) extractReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No receipt file provided"})
		return
	}
	truckID := c.PostForm("truck_id")
	if truckID == "" {
		truckID = "unknown"
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded receipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read receipt file"})
		return
	}
	defer func() { _ = file.Close() }()

	image, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded receipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read receipt file"})
		return
	}

	mediaType := fileHeader.Header.Get("Content-Type")

	log, extracted, err := h.extractionService.ScanReceipt(c.Request.Context(), image, mediaType, fileHeader.Filename, truckID)
	if err != nil {
		logger.Error("Receipt scan failed", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ScanReceiptResponse{
		FuelLog:   dto.ToFuelLogResponse(log),
		Extracted: *extracted,
	})
}
