package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelLog is the database representation of a fuel purchase record,
// matching the fuel_logs table. ExtractedJSON is the raw audit snapshot
// stored in the jsonb column.
type FuelLog struct {
	ID             string          `db:"id"`
	TruckID        string          `db:"truck_id"`
	SellerName     string          `db:"seller_name"`
	SellerAddress  string          `db:"seller_address"`
	SellerCity     string          `db:"seller_city"`
	SellerState    string          `db:"seller_state"`
	FuelType       string          `db:"fuel_type"`
	Gallons        decimal.Decimal `db:"gallons"`
	PricePerGallon decimal.Decimal `db:"price_per_gallon"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	ReceiptDate    time.Time       `db:"receipt_date"`
	ImageURL       string          `db:"image_url"`
	ExtractedJSON  []byte          `db:"extracted_json"`
	CreatedAt      time.Time       `db:"created_at"`
}
