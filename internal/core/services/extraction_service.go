package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	portssvc "github.com/FleetScanHQ/fuel_tax_app/internal/core/ports/services"
)

// extractionService runs the scan pipeline in fixed order: vision
// extraction, image upload, provisional insert. Steps are sequential
// blocking calls; an abandoned request leaves any already-committed
// step in place.
type extractionService struct {
	BaseService
	extractor  portssvc.ReceiptExtractor
	imageStore portssvc.ReceiptImageStore
	fuelLogs   portssvc.FuelLogSvcFacade
}

// NewExtractionService creates the scan pipeline service.
func NewExtractionService(extractor portssvc.ReceiptExtractor, imageStore portssvc.ReceiptImageStore, fuelLogs portssvc.FuelLogSvcFacade) portssvc.ExtractionSvcFacade {
	return &extractionService{
		extractor:  extractor,
		imageStore: imageStore,
		fuelLogs:   fuelLogs,
	}
}

// Ensure extractionService implements the ExtractionSvcFacade interface
var _ portssvc.ExtractionSvcFacade = (*extractionService)(nil)

// ScanReceipt extracts structured data from the image, stores the image
// in the blob bucket, and persists a provisional row whose ID the
// caller must keep for the confirm step. The fallback truckID is used
// for the storage namespace when the model found no unit number.
func (s *extractionService) ScanReceipt(ctx context.Context, image []byte, mediaType, filename, truckID string) (*domain.FuelLog, *domain.ExtractedReceiptData, error) {
	if s.extractor == nil || s.imageStore == nil {
		return nil, nil, fmt.Errorf("%w: receipt scanning is not configured", apperrors.ErrValidation)
	}

	extracted, err := s.extractor.ExtractReceipt(ctx, image, mediaType)
	if err != nil {
		s.LogError(ctx, err, "Receipt extraction failed")
		return nil, nil, err
	}

	if extracted.TruckID == "" {
		extracted.TruckID = truckID
	}

	imageURL, err := s.imageStore.UploadReceiptImage(ctx, extracted.TruckID, filename, mediaType, image)
	if err != nil {
		s.LogError(ctx, err, "Receipt image upload failed",
			slog.String("truck_id", extracted.TruckID))
		return nil, nil, fmt.Errorf("receipt image upload failed: %w", err)
	}

	log, err := s.fuelLogs.CreateProvisional(ctx, extracted, imageURL)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Receipt scanned",
		slog.String("fuel_log_id", log.ID),
		slog.String("seller_state", log.SellerState),
		slog.String("gallons", log.Gallons.StringFixed(3)))
	return log, &extracted, nil
}
