package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FleetScanHQ/fuel_tax_app/internal/apperrors"
)

// FuelType is the closed set of fuel categories a receipt can carry.
type FuelType string

const (
	FuelTypeDiesel FuelType = "Diesel"
	FuelTypeGas    FuelType = "Gas"
	FuelTypeDEF    FuelType = "DEF"
	FuelTypeOther  FuelType = "Other"
)

// IsValid reports whether the fuel type is one of the allowed values.
func (f FuelType) IsValid() bool {
	switch f {
	case FuelTypeDiesel, FuelTypeGas, FuelTypeDEF, FuelTypeOther:
		return true
	}
	return false
}

// Canonical fractional precision for extracted numeric fields. Gallons
// and price-per-gallon are tracked to mills; totals to cents.
const (
	GallonsPrecision        = 3
	PricePerGallonPrecision = 3
	TotalPricePrecision     = 2
)

// ExtractedReceiptData is the normalized shape of data derived from a
// receipt image, before it is persisted with an identity. Field names
// match the JSON contract the vision model is instructed to emit, which
// is also the shape stored verbatim as the audit snapshot.
type ExtractedReceiptData struct {
	SellerName     string          `json:"seller_name"`
	SellerAddress  string          `json:"seller_address"`
	SellerCity     string          `json:"seller_city"`
	SellerState    string          `json:"seller_state"`
	FuelType       FuelType        `json:"fuel_type"`
	Gallons        decimal.Decimal `json:"gallons"`
	PricePerGallon decimal.Decimal `json:"price_per_gallon"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	TruckID        string          `json:"truck_id"`
	ReceiptDate    string          `json:"receipt_date"` // YYYY-MM-DD
}

// Normalize returns a copy with canonical numeric precision and casing
// applied: gallons and price-per-gallon rounded to 3 decimals, total to
// 2, seller state uppercased, free-text fields trimmed. Rounding is
// half-away-from-zero (decimal.Round), matching fixed-decimal display
// formatting. Normalize is idempotent and must be re-applied after any
// human edit before the data is used downstream.
func (e ExtractedReceiptData) Normalize() ExtractedReceiptData {
	e.SellerName = strings.TrimSpace(e.SellerName)
	e.SellerAddress = strings.TrimSpace(e.SellerAddress)
	e.SellerCity = strings.TrimSpace(e.SellerCity)
	e.SellerState = strings.ToUpper(strings.TrimSpace(e.SellerState))
	e.TruckID = strings.TrimSpace(e.TruckID)
	e.ReceiptDate = strings.TrimSpace(e.ReceiptDate)
	e.Gallons = e.Gallons.Round(GallonsPrecision)
	e.PricePerGallon = e.PricePerGallon.Round(PricePerGallonPrecision)
	e.TotalPrice = e.TotalPrice.Round(TotalPricePrecision)
	return e
}

// IsGeorgiaPurchase reports whether the purchase counts as Georgia
// in-state for IFTA net taxable gallon purposes.
func (e ExtractedReceiptData) IsGeorgiaPurchase() bool {
	return strings.EqualFold(e.SellerState, "GA")
}

// Validate enforces the human-confirmation gate: seller name, city and
// state present, gallons strictly positive, receipt date a real
// calendar date. Price-per-gallon and total may be zero (unknown is
// tolerated). Raw extraction may legitimately fail this gate; only the
// confirm action is blocked.
func (e ExtractedReceiptData) Validate() error {
	if e.SellerName == "" {
		return fmt.Errorf("%w: seller_name is required", apperrors.ErrValidation)
	}
	if e.SellerCity == "" {
		return fmt.Errorf("%w: seller_city is required", apperrors.ErrValidation)
	}
	if e.SellerState == "" {
		return fmt.Errorf("%w: seller_state is required", apperrors.ErrValidation)
	}
	if !e.FuelType.IsValid() {
		return fmt.Errorf("%w: fuel_type must be one of Diesel, Gas, DEF, Other", apperrors.ErrValidation)
	}
	if !e.Gallons.IsPositive() {
		return fmt.Errorf("%w: gallons must be greater than zero", apperrors.ErrValidation)
	}
	if e.PricePerGallon.IsNegative() || e.TotalPrice.IsNegative() {
		return fmt.Errorf("%w: numeric fields must not be negative", apperrors.ErrValidation)
	}
	if e.ReceiptDate == "" {
		return fmt.Errorf("%w: receipt_date is required", apperrors.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", e.ReceiptDate); err != nil {
		return fmt.Errorf("%w: receipt_date must be a valid YYYY-MM-DD date", apperrors.ErrValidation)
	}
	return nil
}

// FuelLog is a persisted fuel purchase record. It is created
// provisionally the moment extraction succeeds and mutated exactly once
// by the confirmation step, matched by ID.
type FuelLog struct {
	ID             string               `json:"id"`
	TruckID        string               `json:"truck_id"`
	SellerName     string               `json:"seller_name"`
	SellerAddress  string               `json:"seller_address"`
	SellerCity     string               `json:"seller_city"`
	SellerState    string               `json:"seller_state"`
	FuelType       FuelType             `json:"fuel_type"`
	Gallons        decimal.Decimal      `json:"gallons"`
	PricePerGallon decimal.Decimal      `json:"price_per_gallon"`
	TotalPrice     decimal.Decimal      `json:"total_price"`
	ReceiptDate    string               `json:"receipt_date"`
	ImageURL       string               `json:"image_url"`
	ExtractedJSON  ExtractedReceiptData `json:"extracted_json"`
	CreatedAt      time.Time            `json:"created_at"`
}

// IsGeorgiaPurchase reports whether the purchase counts as Georgia
// in-state for IFTA purposes.
func (f FuelLog) IsGeorgiaPurchase() bool {
	return strings.EqualFold(f.SellerState, "GA")
}
