package dto

import (
	"time"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

// QuarterlySummaryParams defines query parameters for the audit summary.
// Mileage totals are entered per session; they default to zero so a
// quarter can be inspected before mileage is known.
type QuarterlySummaryParams struct {
	Quarter    string `form:"quarter" binding:"required"`
	TotalMiles string `form:"total_miles"`
	GAMiles    string `form:"ga_miles"`
}

// QuarterResponse is one selectable reporting period with its deadline state.
type QuarterResponse struct {
	Label          string `json:"label"`
	Value          string `json:"value"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	FilingDeadline string `json:"filing_deadline"`
	DueSoon        bool   `json:"due_soon"`
	PastDeadline   bool   `json:"past_deadline"`
}

// ToQuarterResponse converts a quarter, evaluating deadline flags at now.
func ToQuarterResponse(q domain.Quarter, now time.Time) QuarterResponse {
	resp := QuarterResponse{
		Label:          q.Label,
		Value:          q.Value,
		StartDate:      q.StartDate,
		EndDate:        q.EndDate,
		FilingDeadline: q.FilingDeadline,
	}
	if deadline, err := q.Deadline(); err == nil {
		resp.DueSoon = domain.IsDueSoon(deadline, now)
		resp.PastDeadline = domain.IsPastDeadline(deadline, now)
	}
	return resp
}

// ListQuartersResponse wraps the static quarter set.
type ListQuartersResponse struct {
	Quarters []QuarterResponse `json:"quarters"`
}

// QuarterlySummaryResponse renders the regulatory figures with fixed
// decimal display formatting: gallons and MPG-style ratios to 3 places,
// currency to 2. The sign of tax_due is preserved; is_credit makes the
// credit case explicit for the client.
type QuarterlySummaryResponse struct {
	Quarter             QuarterResponse `json:"quarter"`
	ReceiptCount        int             `json:"receipt_count"`
	TotalGallons        string          `json:"total_gallons_purchased"`
	DieselGallons       string          `json:"diesel_gallons_purchased"`
	GADieselGallons     string          `json:"ga_diesel_gallons_purchased"`
	TotalMiles          string          `json:"miles_traveled_total"`
	GAMiles             string          `json:"miles_traveled_ga"`
	FleetMPG            string          `json:"fleet_mpg"`
	GAConsumedGallons   string          `json:"gallons_consumed_ga"`
	NetTaxableGallonsGA string          `json:"net_taxable_gallons_ga"`
	TaxDueGA            string          `json:"tax_due_ga"`
	IsCredit            bool            `json:"is_credit"`
	TaxRate             string          `json:"tax_rate"`

	// LateInterestEstimate is present only when the filing deadline has
	// passed and tax is owed: statutory monthly interest accrued since
	// the deadline, partial months counted as whole.
	LateInterestEstimate string `json:"late_interest_estimate,omitempty"`
}

// ToQuarterlySummaryResponse converts a domain summary for display.
func ToQuarterlySummaryResponse(s *domain.QuarterlySummary, now time.Time) QuarterlySummaryResponse {
	resp := QuarterlySummaryResponse{
		Quarter:             ToQuarterResponse(s.Quarter, now),
		ReceiptCount:        s.ReceiptCount,
		TotalGallons:        s.TotalGallons.StringFixed(3),
		DieselGallons:       s.DieselGallons.StringFixed(3),
		GADieselGallons:     s.GADieselGallons.StringFixed(3),
		TotalMiles:          s.TotalMiles.StringFixed(0),
		GAMiles:             s.GAMiles.StringFixed(0),
		FleetMPG:            s.FleetMPG.StringFixed(2),
		GAConsumedGallons:   s.GAConsumedGallons.StringFixed(3),
		NetTaxableGallonsGA: s.NetTaxableGallonsGA.StringFixed(3),
		TaxDueGA:            s.TaxDueGA.StringFixed(2),
		IsCredit:            s.IsCredit(),
		TaxRate:             domain.GADieselTaxRate2026.StringFixed(3),
	}

	if deadline, err := s.Quarter.Deadline(); err == nil && domain.IsPastDeadline(deadline, now) {
		if interest := domain.LateFilingInterest(s.TaxDueGA, monthsBetween(deadline, now)); interest.IsPositive() {
			resp.LateInterestEstimate = interest.StringFixed(2)
		}
	}
	return resp
}

// monthsBetween counts months from a past deadline to now, any started
// month counting as a whole one.
func monthsBetween(deadline, now time.Time) int {
	if !now.After(deadline) {
		return 0
	}
	months := (now.Year()-deadline.Year())*12 + int(now.Month()) - int(deadline.Month())
	if now.Day() > deadline.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}
