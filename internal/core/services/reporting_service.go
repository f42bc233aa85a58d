package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	portsrepo "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/repositories"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// reportingService computes the IFTA-100 figures for a quarter. The
// computation itself is pure; the only I/O is reading the quarter's
// fuel logs.
type reportingService struct {
	BaseService
	fuelLogRepo portsrepo.FuelLogReader
	taxRate     decimal.Decimal
}

// NewReportingService creates a new reporting service using the Georgia
// diesel rate for the active schedule.
func NewReportingService(repo portsrepo.FuelLogReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		fuelLogRepo: repo,
		taxRate:     domain.GADieselTaxRate2026,
	}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// QuarterlySummary reads the quarter's records and derives the
// regulatory figures. Intermediate sums keep full precision; division
// guards yield zero rather than an error since empty or mileage-less
// quarters are a normal state. A negative tax due means Georgia owes
// the filer a credit and the sign is preserved.
func (s *reportingService) QuarterlySummary(ctx context.Context, quarter domain.Quarter, totalMiles, gaMiles decimal.Decimal) (*domain.QuarterlySummary, error) {
	start, err := time.Parse("2006-01-02", quarter.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid quarter start date %q: %w", quarter.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", quarter.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid quarter end date %q: %w", quarter.EndDate, err)
	}

	logs, err := s.fuelLogRepo.FindFuelLogsByDateRange(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to read fuel logs for quarter",
			slog.String("quarter", quarter.Value))
		return nil, fmt.Errorf("failed to read fuel logs for quarter %s: %w", quarter.Value, err)
	}

	summary := ComputeQuarterlySummary(quarter, logs, totalMiles, gaMiles, s.taxRate)

	s.LogInfo(ctx, "Quarterly summary computed",
		slog.String("quarter", quarter.Value),
		slog.Int("receipt_count", summary.ReceiptCount),
		slog.String("net_taxable_gallons", summary.NetTaxableGallonsGA.StringFixed(3)),
		slog.String("tax_due", summary.TaxDueGA.StringFixed(2)),
		slog.Bool("credit", summary.IsCredit()))
	return &summary, nil
}

// ComputeQuarterlySummary is the pure aggregation over an in-memory
// record set:
//
//	fleetMPG          = totalMiles / dieselGallons    (0 when no diesel)
//	gaConsumedGallons = gaMiles / fleetMPG            (0 when MPG is 0)
//	netTaxableGallons = gaConsumedGallons - gaDieselGallons
//	taxDue            = netTaxableGallons * taxRate
func ComputeQuarterlySummary(quarter domain.Quarter, logs []domain.FuelLog, totalMiles, gaMiles, taxRate decimal.Decimal) domain.QuarterlySummary {
	summary := domain.QuarterlySummary{
		Quarter:      quarter,
		ReceiptCount: len(logs),
		TotalMiles:   totalMiles,
		GAMiles:      gaMiles,
	}

	for _, log := range logs {
		summary.TotalGallons = summary.TotalGallons.Add(log.Gallons)
		if log.FuelType != domain.FuelTypeDiesel {
			continue
		}
		summary.DieselGallons = summary.DieselGallons.Add(log.Gallons)
		if strings.EqualFold(log.SellerState, "GA") {
			summary.GADieselGallons = summary.GADieselGallons.Add(log.Gallons)
		}
	}

	if summary.DieselGallons.IsPositive() {
		summary.FleetMPG = totalMiles.Div(summary.DieselGallons)
	}
	if summary.FleetMPG.IsPositive() {
		summary.GAConsumedGallons = gaMiles.Div(summary.FleetMPG)
	}
	summary.NetTaxableGallonsGA = summary.GAConsumedGallons.Sub(summary.GADieselGallons)
	summary.TaxDueGA = summary.NetTaxableGallonsGA.Mul(taxRate)
	return summary
}
