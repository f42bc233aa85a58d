package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	portsrepo "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/repositories"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// fuelLogService implements the ledger record manager: one provisional
// insert, one identity-matched confirm update, ordered range reads and
// permanent deletes.
type fuelLogService struct {
	BaseService
	fuelLogRepo portsrepo.FuelLogRepositoryFacade
}

// NewFuelLogService creates a new fuel log service.
func NewFuelLogService(repo portsrepo.FuelLogRepositoryFacade) portssvc.FuelLogSvcFacade {
	return &fuelLogService{fuelLogRepo: repo}
}

// Ensure fuelLogService implements the FuelLogSvcFacade interface
var _ portssvc.FuelLogSvcFacade = (*fuelLogService)(nil)

// CreateProvisional persists a record immediately after extraction,
// before human review. The data is normalized but deliberately not
// passed through the confirmation gate: a provisional row may carry
// defaults the human still has to fix.
func (s *fuelLogService) CreateProvisional(ctx context.Context, data domain.ExtractedReceiptData, imageURL string) (*domain.FuelLog, error) {
	data = data.Normalize()

	log := domain.FuelLog{
		TruckID:        data.TruckID,
		SellerName:     data.SellerName,
		SellerAddress:  data.SellerAddress,
		SellerCity:     data.SellerCity,
		SellerState:    data.SellerState,
		FuelType:       data.FuelType,
		Gallons:        data.Gallons,
		PricePerGallon: data.PricePerGallon,
		TotalPrice:     data.TotalPrice,
		ReceiptDate:    data.ReceiptDate,
		ImageURL:       imageURL,
		ExtractedJSON:  data,
	}

	saved, err := s.fuelLogRepo.SaveFuelLog(ctx, log)
	if err != nil {
		s.LogError(ctx, err, "Failed to create provisional fuel log",
			slog.String("truck_id", data.TruckID))
		return nil, fmt.Errorf("failed to create provisional fuel log: %w", err)
	}

	s.LogInfo(ctx, "Provisional fuel log created",
		slog.String("fuel_log_id", saved.ID),
		slog.String("truck_id", saved.TruckID))
	return saved, nil
}

// ConfirmAndUpdate re-normalizes and validates the human-reviewed data,
// then overwrites the row identified by id. ErrNotFound from the
// repository means the provisional row was lost or deleted; it is
// surfaced, never swallowed.
func (s *fuelLogService) ConfirmAndUpdate(ctx context.Context, id string, data domain.ExtractedReceiptData) (*domain.FuelLog, error) {
	data = data.Normalize()
	if err := data.Validate(); err != nil {
		s.LogWarn(ctx, "Fuel log confirmation rejected by validation",
			slog.String("fuel_log_id", id),
			slog.String("reason", err.Error()))
		return nil, err
	}

	updated, err := s.fuelLogRepo.UpdateFuelLogByID(ctx, id, data)
	if err != nil {
		s.LogError(ctx, err, "Failed to confirm fuel log",
			slog.String("fuel_log_id", id))
		return nil, err
	}

	s.LogInfo(ctx, "Fuel log confirmed",
		slog.String("fuel_log_id", updated.ID),
		slog.String("seller_state", updated.SellerState))
	return updated, nil
}

func (s *fuelLogService) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.FuelLog, error) {
	logs, err := s.fuelLogRepo.FindFuelLogsByDateRange(ctx, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list fuel logs",
			slog.String("start", start.Format("2006-01-02")),
			slog.String("end", end.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to list fuel logs: %w", err)
	}
	return logs, nil
}

func (s *fuelLogService) DeleteByID(ctx context.Context, id string) error {
	if err := s.fuelLogRepo.DeleteFuelLogByID(ctx, id); err != nil {
		s.LogError(ctx, err, "Failed to delete fuel log", slog.String("fuel_log_id", id))
		return err
	}
	s.LogInfo(ctx, "Fuel log deleted", slog.String("fuel_log_id", id))
	return nil
}
