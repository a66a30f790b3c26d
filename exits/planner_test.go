package exits

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraftlab/bidback/calendar"
	"github.com/tradecraftlab/bidback/regime"
)

func TestCalculateExitPrices_NormalTierExact(t *testing.T) {
	stop, t1, t2 := CalculateExitPrices(decimal.NewFromInt(100), regime.ClassifyVIX(17))

	assert.Equal(t, "92", stop.String())
	assert.Equal(t, "107", t1.String())
	assert.Equal(t, "115", t2.String())
}

func TestCalculateExitPrices_KnownCases(t *testing.T) {
	cases := []struct {
		name  string
		entry float64
		vix   float64
		stop  float64
		t1    float64
		t2    float64
	}{
		{"elevated", 45.20, 22, 40.68, 49.27, 54.24},
		{"ultra_low", 62.85, 10, 60.33, 65.36, 69.14},
		{"extreme", 35.00, 45, 28.70, 40.25, 47.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stop, t1, t2 := CalculateExitPrices(decimal.NewFromFloat(tc.entry), regime.ClassifyVIX(tc.vix))
			assert.InDelta(t, tc.stop, stop.InexactFloat64(), 0.01)
			assert.InDelta(t, tc.t1, t1.InexactFloat64(), 0.01)
			assert.InDelta(t, tc.t2, t2.InexactFloat64(), 0.01)
		})
	}
}

func TestCalculateExitPrices_Ordering(t *testing.T) {
	// For every tier and a spread of entry prices: 0 < stop < entry < t1 < t2.
	entries := []float64{0.50, 5, 50, 500, 12345.67}
	for _, r := range regime.Table() {
		for _, e := range entries {
			entry := decimal.NewFromFloat(e)
			stop, t1, t2 := CalculateExitPrices(entry, r)

			assert.True(t, stop.IsPositive(), "tier=%s entry=%v", r.Tier, e)
			assert.True(t, stop.LessThan(entry), "tier=%s entry=%v", r.Tier, e)
			assert.True(t, entry.LessThan(t1), "tier=%s entry=%v", r.Tier, e)
			assert.True(t, t1.LessThan(t2), "tier=%s entry=%v", r.Tier, e)
		}
	}
}

func TestPlanExit(t *testing.T) {
	cal := calendar.New()
	entryDate := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)

	plan := PlanExit(cal, entryDate, decimal.NewFromInt(100), 17)

	assert.Equal(t, "92", plan.StopLossPrice.String())
	assert.Equal(t, "107", plan.ProfitTarget1Price.String())
	assert.Equal(t, "115", plan.ProfitTarget2Price.String())
	assert.Equal(t, 5, plan.MaxHoldTradingDays)
	// 5 trading days after Fri Jan 17, across MLK weekend.
	assert.Equal(t, time.Date(2025, time.January, 27, 0, 0, 0, 0, time.UTC), plan.ExitDate)

	require.True(t, plan.ExitDate.After(entryDate))
	require.True(t, cal.IsTradingDay(plan.ExitDate))
}

func TestPlanExit_Idempotent(t *testing.T) {
	cal := calendar.New()
	entryDate := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	a := PlanExit(cal, entryDate, decimal.NewFromFloat(45.20), 22)
	b := PlanExit(cal, entryDate, decimal.NewFromFloat(45.20), 22)
	assert.Equal(t, a, b)
}
