package services

import (
	"context"
	"time"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

// FuelLogSvcFacade defines the ledger record manager operations.
type FuelLogSvcFacade interface {
	// CreateProvisional persists a freshly extracted record before human
	// review so a scanned receipt cannot be lost mid-review. The
	// returned record's ID is the only safe handle for the confirm step.
	CreateProvisional(ctx context.Context, data domain.ExtractedReceiptData, imageURL string) (*domain.FuelLog, error)

	// ConfirmAndUpdate validates the human-reviewed data and overwrites
	// the row identified by id. Matching is by identity only, never by
	// "latest row for this truck".
	ConfirmAndUpdate(ctx context.Context, id string, data domain.ExtractedReceiptData) (*domain.FuelLog, error)

	// ListByDateRange returns logs with receipt dates in [start, end],
	// inclusive, ordered ascending by receipt date.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.FuelLog, error)

	// DeleteByID permanently removes a record. The caller owns its
	// cached view and applies the same removal locally.
	DeleteByID(ctx context.Context, id string) error
}
