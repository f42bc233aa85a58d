package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FleetScanHQ/fuel_tax_app/internal/core/domain"
)

func TestFindQuarter(t *testing.T) {
	q, ok := domain.FindQuarter("2026-Q1")
	require.True(t, ok)
	assert.Equal(t, "2026-01-01", q.StartDate)
	assert.Equal(t, "2026-03-31", q.EndDate)
	assert.Equal(t, "2026-04-30", q.FilingDeadline)

	_, ok = domain.FindQuarter("2030-Q1")
	assert.False(t, ok)
}

func TestQuarterDeadlines(t *testing.T) {
	for _, q := range domain.Quarters {
		deadline, err := q.Deadline()
		require.NoError(t, err, "quarter %s", q.Value)

		end, err := time.Parse("2006-01-02", q.EndDate)
		require.NoError(t, err)
		assert.True(t, deadline.After(end), "deadline for %s must follow the quarter end", q.Value)
	}
}

func TestIsDueSoon(t *testing.T) {
	deadline := time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"deadline day", deadline, true},
		{"14 days out", deadline.AddDate(0, 0, -14), true},
		{"15 days out", deadline.AddDate(0, 0, -15), false},
		{"day after deadline", deadline.AddDate(0, 0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsDueSoon(deadline, tt.now))
		})
	}
}

func TestIsPastDeadline(t *testing.T) {
	deadline := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.False(t, domain.IsPastDeadline(deadline, deadline))
	assert.False(t, domain.IsPastDeadline(deadline, deadline.AddDate(0, 0, -1)))
	assert.True(t, domain.IsPastDeadline(deadline, deadline.Add(time.Hour)))
}

func TestLateFilingInterest(t *testing.T) {
	taxDue := decimal.RequireFromString("1000.00")

	// 0.75% per month, whole months
	assert.Equal(t, "7.50", domain.LateFilingInterest(taxDue, 1).StringFixed(2))
	assert.Equal(t, "22.50", domain.LateFilingInterest(taxDue, 3).StringFixed(2))

	// no interest on credits or non-positive month counts
	assert.True(t, domain.LateFilingInterest(taxDue, 0).IsZero())
	assert.True(t, domain.LateFilingInterest(decimal.RequireFromString("-50"), 2).IsZero())
}
