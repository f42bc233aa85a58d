package mapping_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
	"github.com/FleetScanHQ/fuel_tax_app/internal/models"
	"github.com/FleetScanHQ/fuel_tax_app/internal/utils/mapping"
)

func TestToModelFuelLog_RejectsBadDate(t *testing.T) {
	_, err := mapping.ToModelFuelLog(domain.FuelLog{ReceiptDate: "01/15/2026"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "receipt_date")
}

func TestToDomainFuelLog_ToleratesBadSnapshot(t *testing.T) {
	m := models.FuelLog{
		ID:            "abc",
		SellerName:    "Pilot Travel Center",
		ReceiptDate:   time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		ExtractedJSON: []byte("{not json"),
	}

	d := mapping.ToDomainFuelLog(m)

	// live columns stay authoritative even when the audit blob is garbage
	assert.Equal(t, "Pilot Travel Center", d.SellerName)
	assert.Equal(t, "2026-01-15", d.ReceiptDate)
	assert.Empty(t, d.ExtractedJSON.SellerName)
}
