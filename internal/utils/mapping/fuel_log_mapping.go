package mapping

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	"github.com/FleetScanHQ/fuel_tax_app/internal/models"
)

const dateLayout = "2006-01-02"

// ToModelFuelLog converts a domain fuel log to its database model,
// serializing the audit snapshot to JSON.
func ToModelFuelLog(d domain.FuelLog) (models.FuelLog, error) {
	receiptDate, err := time.Parse(dateLayout, d.ReceiptDate)
	if err != nil {
		return models.FuelLog{}, fmt.Errorf("invalid receipt_date %q: %w", d.ReceiptDate, err)
	}
	snapshot, err := json.Marshal(d.ExtractedJSON)
	if err != nil {
		return models.FuelLog{}, fmt.Errorf("failed to encode extracted snapshot: %w", err)
	}
	return models.FuelLog{
		ID:             d.ID,
		TruckID:        d.TruckID,
		SellerName:     d.SellerName,
		SellerAddress:  d.SellerAddress,
		SellerCity:     d.SellerCity,
		SellerState:    d.SellerState,
		FuelType:       string(d.FuelType),
		Gallons:        d.Gallons,
		PricePerGallon: d.PricePerGallon,
		TotalPrice:     d.TotalPrice,
		ReceiptDate:    receiptDate,
		ImageURL:       d.ImageURL,
		ExtractedJSON:  snapshot,
		CreatedAt:      d.CreatedAt,
	}, nil
}

// ToDomainFuelLog converts a database model to the domain fuel log. A
// snapshot that fails to decode is tolerated: the live columns remain
// authoritative and the snapshot is only an audit trail.
func ToDomainFuelLog(m models.FuelLog) domain.FuelLog {
	var snapshot domain.ExtractedReceiptData
	if len(m.ExtractedJSON) > 0 {
		_ = json.Unmarshal(m.ExtractedJSON, &snapshot)
	}
	return domain.FuelLog{
		ID:             m.ID,
		TruckID:        m.TruckID,
		SellerName:     m.SellerName,
		SellerAddress:  m.SellerAddress,
		SellerCity:     m.SellerCity,
		SellerState:    m.SellerState,
		FuelType:       domain.FuelType(m.FuelType),
		Gallons:        m.Gallons,
		PricePerGallon: m.PricePerGallon,
		TotalPrice:     m.TotalPrice,
		ReceiptDate:    m.ReceiptDate.Format(dateLayout),
		ImageURL:       m.ImageURL,
		ExtractedJSON:  snapshot,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainFuelLogSlice converts a slice of models to domain fuel logs.
func ToDomainFuelLogSlice(ms []models.FuelLog) []domain.FuelLog {
	ds := make([]domain.FuelLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFuelLog(m)
	}
	return ds
}
