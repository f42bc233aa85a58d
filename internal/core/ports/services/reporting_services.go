package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

// ReportingSvcFacade defines operations for generating IFTA quarterly figures.
type ReportingSvcFacade interface {
	// QuarterlySummary computes fleet MPG, Georgia consumed gallons, net
	// taxable gallons and tax due for the given quarter. Mileage totals
	// are supplied per session; they are never derived from receipts.
	// Degenerate inputs (no records, zero mileage) produce zero-valued
	// results, never an error.
	QuarterlySummary(ctx context.Context, quarter domain.Quarter, totalMiles, gaMiles decimal.Decimal) (*domain.QuarterlySummary, error)
}
