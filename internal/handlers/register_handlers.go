package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	health *healthHandler,
	extractLimiter *limiter.Limiter,
) {
	r.GET("/health", health.check)

	setupAPIV1Routes(r, services, extractLimiter)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
	extractLimiter *limiter.Limiter,
) {
	v1 := r.Group("/api/v1")

	registerExtractRoutes(v1, services.Extraction, extractLimiter)
	registerFuelLogRoutes(v1, services.FuelLog)
	registerAuditRoutes(v1, services.Reporting)
}

// respondWithError maps application errors to HTTP status codes with a
// human-readable message. No failure is silently swallowed; whatever
// reached this point is what the user sees.
func respondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrExtractionParse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
