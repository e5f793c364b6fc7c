package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecomputeDerived(t *testing.T) {
	result := DailyBusinessResult{
		Date:           "2026-01-15",
		MorningRevenue: 1200000,
		EveningRevenue: 1800000,
		Discounts:      100000,

		CostOfGoodsSold: 700000,
		WasteCost:       50000,

		StaffSalary:    400000,
		StaffBonus:     50000,
		StaffAllowance: 50000,

		Marketing:   60000,
		Tools:       40000,
		Consumables: 30000,
		OtherCash:   30000,

		// Campo de referência: compras de insumo não entram no lucro do dia.
		CostOfGoodsImport: 999999,
	}

	result.RecomputeDerived()

	assert.Equal(t, 3000000.0, result.TotalRevenue)
	assert.Equal(t, 2900000.0, result.NetRevenue)
	assert.Equal(t, 500000.0, result.StaffTotalCost)
	assert.Equal(t, 160000.0, result.OperatingTotalCost)
	assert.Equal(t, 1490000.0, result.NetProfit)
}

func TestProfitIdentityHolds(t *testing.T) {
	result := DailyBusinessResult{
		Date:               "2026-01-15",
		NetRevenue:         2000000,
		CostOfGoodsSold:    500000,
		StaffTotalCost:     400000,
		OperatingTotalCost: 100000,
	}
	result.RecomputeNetProfit()

	assert.True(t, result.ProfitIdentityHolds(0.01))

	result.NetProfit += 0.005
	assert.True(t, result.ProfitIdentityHolds(0.01))

	result.NetProfit = 0
	assert.False(t, result.ProfitIdentityHolds(0.01))
}
