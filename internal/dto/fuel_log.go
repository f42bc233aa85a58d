package dto

import (
	"github.com/shopspring/decimal"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

// ConfirmFuelLogRequest carries the human-reviewed extraction fields
// for the confirm step. Binding tags catch shape errors early; the
// authoritative validation gate lives in the domain and runs after
// re-normalization.
type ConfirmFuelLogRequest struct {
	SellerName     string          `json:"seller_name" binding:"required"`
	SellerAddress  string          `json:"seller_address"`
	SellerCity     string          `json:"seller_city" binding:"required"`
	SellerState    string          `json:"seller_state" binding:"required,usstate"`
	FuelType       string          `json:"fuel_type" binding:"required,fueltype"`
	Gallons        decimal.Decimal `json:"gallons"`
	PricePerGallon decimal.Decimal `json:"price_per_gallon"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	TruckID        string          `json:"truck_id"`
	ReceiptDate    string          `json:"receipt_date" binding:"required"`
}

// ToExtractedReceiptData converts the request to the domain contract.
func (r ConfirmFuelLogRequest) ToExtractedReceiptData() domain.ExtractedReceiptData {
	return domain.ExtractedReceiptData{
		SellerName:     r.SellerName,
		SellerAddress:  r.SellerAddress,
		SellerCity:     r.SellerCity,
		SellerState:    r.SellerState,
		FuelType:       domain.FuelType(r.FuelType),
		Gallons:        r.Gallons,
		PricePerGallon: r.PricePerGallon,
		TotalPrice:     r.TotalPrice,
		TruckID:        r.TruckID,
		ReceiptDate:    r.ReceiptDate,
	}
}

// ListFuelLogsParams defines query parameters for the date-range listing.
type ListFuelLogsParams struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02"`
	End   string `form:"end" binding:"required,datetime=2006-01-02"`
}

// FuelLogResponse is the API representation of a persisted fuel log.
// Numeric fields render with canonical fixed precision.
type FuelLogResponse struct {
	ID             string                      `json:"id"`
	TruckID        string                      `json:"truck_id"`
	SellerName     string                      `json:"seller_name"`
	SellerAddress  string                      `json:"seller_address"`
	SellerCity     string                      `json:"seller_city"`
	SellerState    string                      `json:"seller_state"`
	FuelType       string                      `json:"fuel_type"`
	Gallons        string                      `json:"gallons"`
	PricePerGallon string                      `json:"price_per_gallon"`
	TotalPrice     string                      `json:"total_price"`
	ReceiptDate    string                      `json:"receipt_date"`
	ImageURL       string                      `json:"image_url"`
	ExtractedJSON  domain.ExtractedReceiptData `json:"extracted_json"`
	CreatedAt      string                      `json:"created_at"`
	IsGAPurchase   bool                        `json:"is_ga_purchase"`
}

// ToFuelLogResponse converts a domain fuel log to its API representation.
func ToFuelLogResponse(log *domain.FuelLog) FuelLogResponse {
	return FuelLogResponse{
		ID:             log.ID,
		TruckID:        log.TruckID,
		SellerName:     log.SellerName,
		SellerAddress:  log.SellerAddress,
		SellerCity:     log.SellerCity,
		SellerState:    log.SellerState,
		FuelType:       string(log.FuelType),
		Gallons:        log.Gallons.StringFixed(domain.GallonsPrecision),
		PricePerGallon: log.PricePerGallon.StringFixed(domain.PricePerGallonPrecision),
		TotalPrice:     log.TotalPrice.StringFixed(domain.TotalPricePrecision),
		ReceiptDate:    log.ReceiptDate,
		ImageURL:       log.ImageURL,
		ExtractedJSON:  log.ExtractedJSON,
		CreatedAt:      log.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		IsGAPurchase:   log.IsGeorgiaPurchase(),
	}
}

// ListFuelLogsResponse wraps the date-range listing.
type ListFuelLogsResponse struct {
	FuelLogs []FuelLogResponse `json:"fuel_logs"`
	Count    int               `json:"count"`
}

// ToListFuelLogsResponse converts a slice of domain logs.
func ToListFuelLogsResponse(logs []domain.FuelLog) ListFuelLogsResponse {
	responses := make([]FuelLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToFuelLogResponse(&logs[i])
	}
	return ListFuelLogsResponse{FuelLogs: responses, Count: len(responses)}
}

// ScanReceiptResponse is returned by the extraction pipeline endpoint:
// the provisional record (whose ID the client must keep for the confirm
// step) plus the raw extraction for the review form.
type ScanReceiptResponse struct {
	FuelLog   FuelLogResponse             `json:"fuel_log"`
	Extracted domain.ExtractedReceiptData `json:"extracted"`
}
