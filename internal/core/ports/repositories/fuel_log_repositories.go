package repositories

import (
	"context"
	"time"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

// FuelLogReader defines read operations for fuel log data
type FuelLogReader interface {
	// FindFuelLogByID retrieves a single fuel log by its primary identity.
	FindFuelLogByID(ctx context.Context, id string) (*domain.FuelLog, error)

	// FindFuelLogsByDateRange retrieves logs whose receipt_date falls
	// within [start, end], inclusive on both bounds, ordered ascending
	// by receipt date.
	FindFuelLogsByDateRange(ctx context.Context, start, end time.Time) ([]domain.FuelLog, error)

	// CountFuelLogs returns the total number of persisted fuel logs.
	CountFuelLogs(ctx context.Context) (int64, error)
}

// FuelLogWriter defines write operations for fuel log data
type FuelLogWriter interface {
	// SaveFuelLog inserts a new row and returns it with its assigned
	// identity and creation timestamp.
	SaveFuelLog(ctx context.Context, log domain.FuelLog) (*domain.FuelLog, error)

	// UpdateFuelLogByID overwrites all extracted fields plus the audit
	// snapshot on the row identified by id, and returns the updated row.
	// The match is by primary identity alone; returns
	// apperrors.ErrNotFound if the row no longer exists.
	UpdateFuelLogByID(ctx context.Context, id string, data domain.ExtractedReceiptData) (*domain.FuelLog, error)

	// DeleteFuelLogByID permanently removes the row identified by id.
	// There is no soft delete. Returns apperrors.ErrNotFound if no row
	// matched.
	DeleteFuelLogByID(ctx context.Context, id string) error
}

// FuelLogRepositoryFacade combines all fuel-log repository interfaces
// for clients that need full access.
type FuelLogRepositoryFacade interface {
	FuelLogReader
	FuelLogWriter
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	FuelLogRepo FuelLogRepositoryFacade
}
