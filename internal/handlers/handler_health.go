package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/repositories"
	"github.com/FleetScanHQ/fuel_tax_app/internal/middleware"
)

// StorageProbe verifies the blob store accepts writes.
type StorageProbe interface {
	HealthCheck(ctx context.Context) error
}

// VisionProbe verifies the vision API key works end to end. It returns
// the model used and the model's reply.
type VisionProbe interface {
	Ping(ctx context.Context) (string, string, error)
}

// healthHandler probes every external dependency of the scan pipeline:
// the database, the receipt image store and the vision API.
type healthHandler struct {
	fuelLogRepo portsrepo.FuelLogReader
	storage     StorageProbe
	vision      VisionProbe
}

// NewHealthHandler wires the dependency probes for the health endpoint.
// Storage and vision may be nil when not configured; their checks are
// then reported as skipped rather than failing the endpoint.
func NewHealthHandler(fuelLogRepo portsrepo.FuelLogReader, storage StorageProbe, vision VisionProbe) *healthHandler {
	return &healthHandler{fuelLogRepo: fuelLogRepo, storage: storage, vision: vision}
}

type healthCheck struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// check runs all dependency probes and returns 200 when every
// configured dependency is reachable, 503 otherwise.
func (h *healthHandler) check(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	checks := make(map[string]healthCheck, 3)
	healthy := true

	if count, err := h.fuelLogRepo.CountFuelLogs(ctx); err != nil {
		healthy = false
		checks["database"] = healthCheck{Status: "error", Detail: err.Error()}
		logger.Error("Health check: database unreachable", slog.String("error", err.Error()))
	} else {
		checks["database"] = healthCheck{Status: "ok", Detail: fmt.Sprintf("%d fuel logs", count)}
	}

	if h.storage == nil {
		checks["storage"] = healthCheck{Status: "skipped", Detail: "storage not configured"}
	} else if err := h.storage.HealthCheck(ctx); err != nil {
		healthy = false
		checks["storage"] = healthCheck{Status: "error", Detail: err.Error()}
		logger.Error("Health check: storage unreachable", slog.String("error", err.Error()))
	} else {
		checks["storage"] = healthCheck{Status: "ok"}
	}

	if h.vision == nil {
		checks["vision"] = healthCheck{Status: "skipped", Detail: "vision API not configured"}
	} else if model, reply, err := h.vision.Ping(ctx); err != nil {
		healthy = false
		checks["vision"] = healthCheck{Status: "error", Detail: err.Error()}
		logger.Error("Health check: vision API unreachable", slog.String("error", err.Error()))
	} else {
		checks["vision"] = healthCheck{Status: "ok", Detail: model + ": " + reply}
	}

	status := http.StatusOK
	overall := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": checks})
}
