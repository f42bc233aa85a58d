package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	"github.com/FleetScanHQ/fuel_tax_app/internal/core/services"
)

func dieselLog(state, gallons string) domain.FuelLog {
	return domain.FuelLog{
		FuelType:    domain.FuelTypeDiesel,
		SellerState: state,
		Gallons:     decimal.RequireFromString(gallons),
	}
}

func TestComputeQuarterlySummary_BreakEven(t *testing.T) {
	quarter, _ := domain.FindQuarter("2026-Q1")
	logs := []domain.FuelLog{dieselLog("GA", "100")}

	s := services.ComputeQuarterlySummary(quarter, logs,
		decimal.NewFromInt(1000), decimal.NewFromInt(1000), domain.GADieselTaxRate2026)

	assert.Equal(t, 1, s.ReceiptCount)
	assert.Equal(t, "10.00", s.FleetMPG.StringFixed(2))
	assert.Equal(t, "100.000", s.GAConsumedGallons.StringFixed(3))
	assert.Equal(t, "0.000", s.NetTaxableGallonsGA.StringFixed(3))
	assert.Equal(t, "0.00", s.TaxDueGA.StringFixed(2))
	assert.False(t, s.IsCredit())
}

func TestComputeQuarterlySummary_Credit(t *testing.T) {
	// Heavy in-state purchasing with light in-state mileage produces a
	// negative balance owed back to the filer.
	quarter, _ := domain.FindQuarter("2026-Q1")
	logs := []domain.FuelLog{dieselLog("GA", "150")}

	s := services.ComputeQuarterlySummary(quarter, logs,
		decimal.NewFromInt(500), decimal.NewFromInt(100), domain.GADieselTaxRate2026)

	assert.Equal(t, "-120.00", s.NetTaxableGallonsGA.StringFixed(2))
	assert.Equal(t, "-44.76", s.TaxDueGA.StringFixed(2))
	assert.True(t, s.IsCredit())
}

func TestComputeQuarterlySummary_ZeroDieselGuard(t *testing.T) {
	quarter, _ := domain.FindQuarter("2026-Q1")
	logs := []domain.FuelLog{
		{FuelType: domain.FuelTypeDEF, SellerState: "GA", Gallons: decimal.NewFromInt(10)},
	}

	s := services.ComputeQuarterlySummary(quarter, logs,
		decimal.NewFromInt(5000), decimal.NewFromInt(2000), domain.GADieselTaxRate2026)

	assert.True(t, s.FleetMPG.IsZero())
	assert.True(t, s.GAConsumedGallons.IsZero())
	assert.Equal(t, "10.000", s.TotalGallons.StringFixed(3))
	assert.True(t, s.DieselGallons.IsZero())
}

func TestComputeQuarterlySummary_EmptyQuarter(t *testing.T) {
	quarter, _ := domain.FindQuarter("2025-Q4")

	s := services.ComputeQuarterlySummary(quarter, nil,
		decimal.Zero, decimal.Zero, domain.GADieselTaxRate2026)

	assert.Equal(t, 0, s.ReceiptCount)
	assert.True(t, s.TaxDueGA.IsZero())
}

func TestComputeQuarterlySummary_StateFiltering(t *testing.T) {
	quarter, _ := domain.FindQuarter("2026-Q1")
	logs := []domain.FuelLog{
		dieselLog("GA", "100"),
		dieselLog("ga", "50"), // case-insensitive state match
		dieselLog("TN", "80"),
		{FuelType: domain.FuelTypeGas, SellerState: "GA", Gallons: decimal.NewFromInt(20)},
	}

	s := services.ComputeQuarterlySummary(quarter, logs,
		decimal.NewFromInt(2300), decimal.NewFromInt(1000), domain.GADieselTaxRate2026)

	assert.Equal(t, "250.000", s.TotalGallons.StringFixed(3))
	assert.Equal(t, "230.000", s.DieselGallons.StringFixed(3))
	assert.Equal(t, "150.000", s.GADieselGallons.StringFixed(3))
	// 2300 miles / 230 diesel gallons = 10 MPG; 1000 GA miles consume 100
	assert.Equal(t, "100.000", s.GAConsumedGallons.StringFixed(3))
	assert.Equal(t, "-50.000", s.NetTaxableGallonsGA.StringFixed(3))
}

// --- Service wiring over the repository ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockFuelLogRepository
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFuelLogRepository)
}

func (suite *ReportingServiceTestSuite) TestQuarterlySummary_QueriesQuarterBounds() {
	ctx := context.Background()
	quarter, _ := domain.FindQuarter("2026-Q1")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindFuelLogsByDateRange", ctx, start, end).
		Return([]domain.FuelLog{dieselLog("GA", "100")}, nil).Once()

	svc := services.NewReportingService(suite.mockRepo)
	summary, err := svc.QuarterlySummary(ctx, quarter, decimal.NewFromInt(1000), decimal.NewFromInt(1000))

	suite.Require().NoError(err)
	suite.Equal(1, summary.ReceiptCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestQuarterlySummary_RepoErrorWrapped() {
	ctx := context.Background()
	quarter, _ := domain.FindQuarter("2025-Q3")

	suite.mockRepo.On("FindFuelLogsByDateRange", ctx, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrPersistence).Once()

	svc := services.NewReportingService(suite.mockRepo)
	_, err := svc.QuarterlySummary(ctx, quarter, decimal.Zero, decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPersistence)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
