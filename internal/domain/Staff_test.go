package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffShiftRecomputeTotals(t *testing.T) {
	staff := StaffShift{
		Name:       "Hoàng Vũ Thanh Thủy",
		HourlyRate: 28000,
		// Acumulados errados de propósito, a recomputação é autoritativa.
		TotalHours: 999,
		Salary:     999999,
		Details: []StaffDailyDetail{
			{Date: "2026-01-14", WorkHours: 8, TotalDailyIncome: 249000},
			{Date: "2026-01-15", WorkHours: 9.5, TotalDailyIncome: 300000},
		},
	}

	staff.RecomputeTotals()

	assert.Equal(t, 17.5, staff.TotalHours)
	assert.Equal(t, 549000.0, staff.Salary)
}

func TestDetailForDate(t *testing.T) {
	staff := StaffShift{
		Details: []StaffDailyDetail{
			{Date: "2026-01-14"},
			{Date: "2026-01-15"},
		},
	}

	assert.Equal(t, 1, staff.DetailForDate("2026-01-15"))
	assert.Equal(t, -1, staff.DetailForDate("2026-01-16"))
}
