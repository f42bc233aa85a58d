package domain

import "github.com/shopspring/decimal"

// Georgia diesel excise rate for the 2026 schedule, dollars per gallon.
var GADieselTaxRate2026 = decimal.NewFromFloat(0.373)

// Statutory interest on late IFTA filings in Georgia.
var (
	GALateInterestRateAnnual  = decimal.NewFromFloat(0.09)   // 9% per year
	GALateInterestRateMonthly = decimal.NewFromFloat(0.0075) // 0.75% per month
)

// LateFilingInterest estimates accrued interest on a past-due tax
// amount at the monthly statutory rate. Partial months count as whole
// months. Credits (negative tax) and non-positive month counts accrue
// nothing.
func LateFilingInterest(taxDue decimal.Decimal, monthsLate int) decimal.Decimal {
	if monthsLate <= 0 || !taxDue.IsPositive() {
		return decimal.Zero
	}
	return taxDue.Mul(GALateInterestRateMonthly).Mul(decimal.NewFromInt(int64(monthsLate)))
}
