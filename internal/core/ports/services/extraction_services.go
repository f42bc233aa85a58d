package services

import (
	"context"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

// ReceiptExtractor turns receipt image bytes into structured data via
// an external vision model. The call is blocking and cancellable
// through ctx; there are no partial results and no automatic retries.
type ReceiptExtractor interface {
	ExtractReceipt(ctx context.Context, image []byte, mediaType string) (domain.ExtractedReceiptData, error)
}

// ReceiptImageStore persists receipt images in a blob bucket. Upload
// paths are namespaced by truck and a write timestamp so the primary
// path never overwrites an existing object.
type ReceiptImageStore interface {
	UploadReceiptImage(ctx context.Context, truckID, filename, mediaType string, data []byte) (string, error)
}

// ExtractionSvcFacade runs the full scan pipeline: extract, upload the
// image, persist a provisional row. Order is fixed; a failure at any
// step surfaces to the caller and nothing already committed is rolled
// back.
type ExtractionSvcFacade interface {
	ScanReceipt(ctx context.Context, image []byte, mediaType, filename, truckID string) (*domain.FuelLog, *domain.ExtractedReceiptData, error)
}

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	FuelLog    FuelLogSvcFacade
	Reporting  ReportingSvcFacade
	Extraction ExtractionSvcFacade
}
