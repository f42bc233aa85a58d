package domain

import "time"

// Quarter describes a single IFTA reporting period. Filing deadlines
// are fixed regulatory dates, not computable by a simple offset from
// the quarter end, so the set is enumerated statically.
type Quarter struct {
	Label          string `json:"label"`
	Value          string `json:"value"`
	StartDate      string `json:"start_date"` // YYYY-MM-DD, inclusive
	EndDate        string `json:"end_date"`   // YYYY-MM-DD, inclusive
	FilingDeadline string `json:"filing_deadline"`
}

// Quarters is the static set of supported reporting periods, newest
// first to match the client's selector ordering.
var Quarters = []Quarter{
	{Label: "Q1 2026 (Jan–Mar)", Value: "2026-Q1", StartDate: "2026-01-01", EndDate: "2026-03-31", FilingDeadline: "2026-04-30"},
	{Label: "Q4 2025 (Oct–Dec)", Value: "2025-Q4", StartDate: "2025-10-01", EndDate: "2025-12-31", FilingDeadline: "2026-01-31"},
	{Label: "Q3 2025 (Jul–Sep)", Value: "2025-Q3", StartDate: "2025-07-01", EndDate: "2025-09-30", FilingDeadline: "2025-10-31"},
	{Label: "Q2 2025 (Apr–Jun)", Value: "2025-Q2", StartDate: "2025-04-01", EndDate: "2025-06-30", FilingDeadline: "2025-07-31"},
}

// FindQuarter returns the quarter with the given value (e.g. "2026-Q1").
func FindQuarter(value string) (Quarter, bool) {
	for _, q := range Quarters {
		if q.Value == value {
			return q, true
		}
	}
	return Quarter{}, false
}

// Deadline parses the filing deadline as a UTC date.
func (q Quarter) Deadline() (time.Time, error) {
	return time.Parse("2006-01-02", q.FilingDeadline)
}

// IsDueSoon reports whether the deadline falls within the next 14 days
// of now, inclusive on both ends. Past deadlines are not "soon".
func IsDueSoon(deadline, now time.Time) bool {
	days := deadline.Sub(now).Hours() / 24
	return days >= 0 && days <= 14
}

// IsPastDeadline reports whether now is strictly after the filing deadline.
func IsPastDeadline(deadline, now time.Time) bool {
	return now.After(deadline)
}
