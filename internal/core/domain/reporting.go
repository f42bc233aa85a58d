package domain

import "github.com/shopspring/decimal"

// QuarterlySummary holds the regulatory figures for one reporting
// quarter. It is derived on demand from the fuel log set plus two
// user-supplied mileage totals and is never persisted. Values retain
// full precision; display rounding happens at the DTO layer.
type QuarterlySummary struct {
	Quarter             Quarter
	ReceiptCount        int
	TotalGallons        decimal.Decimal // all fuel types, all states
	DieselGallons       decimal.Decimal // diesel, any state
	GADieselGallons     decimal.Decimal // diesel purchased in Georgia
	TotalMiles          decimal.Decimal
	GAMiles             decimal.Decimal
	FleetMPG            decimal.Decimal
	GAConsumedGallons   decimal.Decimal
	NetTaxableGallonsGA decimal.Decimal
	TaxDueGA            decimal.Decimal // negative means a credit owed to the filer
}

// IsCredit reports whether Georgia owes the filer rather than the
// reverse. The sign is a legitimate output and is never clamped.
func (s QuarterlySummary) IsCredit() bool {
	return s.TaxDueGA.IsNegative()
}
