package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/services"
)

type MockReceiptExtractor struct {
	mock.Mock
}

func (m *MockReceiptExtractor) ExtractReceipt(ctx context.Context, image []byte, mediaType string) (domain.ExtractedReceiptData, error) {
	args := m.Called(ctx, image, mediaType)
	return args.Get(0).(domain.ExtractedReceiptData), args.Error(1)
}

type MockReceiptImageStore struct {
	mock.Mock
}

func (m *MockReceiptImageStore) UploadReceiptImage(ctx context.Context, truckID, filename, mediaType string, data []byte) (string, error) {
	args := m.Called(ctx, truckID, filename, mediaType, data)
	return args.String(0), args.Error(1)
}

type MockFuelLogService struct {
	mock.Mock
}

func (m *MockFuelLogService) CreateProvisional(ctx context.Context, data domain.ExtractedReceiptData, imageURL string) (*domain.FuelLog, error) {
	args := m.Called(ctx, data, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelLog), args.Error(1)
}

func (m *MockFuelLogService) ConfirmAndUpdate(ctx context.Context, id string, data domain.ExtractedReceiptData) (*domain.FuelLog, error) {
	args := m.Called(ctx, id, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelLog), args.Error(1)
}

func (m *MockFuelLogService) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.FuelLog, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FuelLog), args.Error(1)
}

func (m *MockFuelLogService) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ExtractionServiceTestSuite struct {
	suite.Suite
	mockExtractor *MockReceiptExtractor
	mockStore     *MockReceiptImageStore
	mockFuelLogs  *MockFuelLogService
}

func (suite *ExtractionServiceTestSuite) SetupTest() {
	suite.mockExtractor = new(MockReceiptExtractor)
	suite.mockStore = new(MockReceiptImageStore)
	suite.mockFuelLogs = new(MockFuelLogService)
}

func (suite *ExtractionServiceTestSuite) TestScanReceipt_Pipeline() {
	ctx := context.Background()
	image := []byte{0xFF, 0xD8}
	extracted := testReceiptData()
	imageURL := "https://example.supabase.co/storage/v1/object/public/fuel-receipts/receipts/TRK-7/1.jpg"
	saved := &domain.FuelLog{ID: uuid.NewString(), TruckID: "TRK-7"}

	suite.mockExtractor.On("ExtractReceipt", ctx, image, "image/jpeg").Return(extracted, nil).Once()
	suite.mockStore.On("UploadReceiptImage", ctx, "TRK-7", "receipt.jpg", "image/jpeg", image).
		Return(imageURL, nil).Once()
	suite.mockFuelLogs.On("CreateProvisional", ctx, extracted, imageURL).Return(saved, nil).Once()

	svc := services.NewExtractionService(suite.mockExtractor, suite.mockStore, suite.mockFuelLogs)
	log, data, err := svc.ScanReceipt(ctx, image, "image/jpeg", "receipt.jpg", "fallback-truck")

	suite.Require().NoError(err)
	suite.Equal(saved.ID, log.ID)
	suite.Equal("TRK-7", data.TruckID)
	suite.mockExtractor.AssertExpectations(suite.T())
	suite.mockStore.AssertExpectations(suite.T())
	suite.mockFuelLogs.AssertExpectations(suite.T())
}

func (suite *ExtractionServiceTestSuite) TestScanReceipt_TruckIDFallback() {
	ctx := context.Background()
	image := []byte{0x89, 0x50}
	extracted := testReceiptData()
	extracted.TruckID = "" // model found no unit number

	withFallback := extracted
	withFallback.TruckID = "TRK-99"

	suite.mockExtractor.On("ExtractReceipt", ctx, image, "image/png").Return(extracted, nil).Once()
	suite.mockStore.On("UploadReceiptImage", ctx, "TRK-99", "r.png", "image/png", image).
		Return("url", nil).Once()
	suite.mockFuelLogs.On("CreateProvisional", ctx, withFallback, "url").
		Return(&domain.FuelLog{ID: uuid.NewString()}, nil).Once()

	svc := services.NewExtractionService(suite.mockExtractor, suite.mockStore, suite.mockFuelLogs)
	_, _, err := svc.ScanReceipt(ctx, image, "image/png", "r.png", "TRK-99")

	suite.NoError(err)
	suite.mockStore.AssertExpectations(suite.T())
}

func (suite *ExtractionServiceTestSuite) TestScanReceipt_UploadFailureStopsPipeline() {
	ctx := context.Background()
	image := []byte{0xFF, 0xD8}

	suite.mockExtractor.On("ExtractReceipt", ctx, image, "image/jpeg").Return(testReceiptData(), nil).Once()
	suite.mockStore.On("UploadReceiptImage", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.ErrPersistence).Once()

	svc := services.NewExtractionService(suite.mockExtractor, suite.mockStore, suite.mockFuelLogs)
	_, _, err := svc.ScanReceipt(ctx, image, "image/jpeg", "receipt.jpg", "TRK-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.mockFuelLogs.AssertNotCalled(suite.T(), "CreateProvisional", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExtractionServiceTestSuite) TestScanReceipt_NotConfigured() {
	svc := services.NewExtractionService(nil, nil, suite.mockFuelLogs)

	_, _, err := svc.ScanReceipt(context.Background(), []byte{0x01}, "image/jpeg", "r.jpg", "TRK-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestExtractionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExtractionServiceTestSuite))
}
