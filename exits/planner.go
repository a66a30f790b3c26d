package exits

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradecraftlab/bidback/calendar"
	"github.com/tradecraftlab/bidback/regime"
	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// EXIT PLANNER - Regime percents + entry price + calendar → stop/targets/date
// ═══════════════════════════════════════════════════════════════════════════════

var one = decimal.NewFromInt(1)

// CalculateExitPrices applies the regime's stop and target percents to an
// entry price. For every valid entry: 0 < stop < entry < target1 < target2.
// Prices are rounded to cents.
func CalculateExitPrices(entryPrice decimal.Decimal, r regime.VolatilityRegime) (stopLoss, target1, target2 decimal.Decimal) {
	stopLoss = applyPercent(entryPrice, r.StopLossPercent)
	target1 = applyPercent(entryPrice, r.ProfitTarget1Percent)
	target2 = applyPercent(entryPrice, r.ProfitTarget2Percent)
	return stopLoss, target1, target2
}

func applyPercent(price decimal.Decimal, pct float64) decimal.Decimal {
	factor := one.Add(decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100)))
	return price.Mul(factor).Round(2)
}

// PlanExit builds the full exit plan for an entry: regime lookup, price
// levels, and the latest exit date counted in trading days.
func PlanExit(cal *calendar.Calendar, entryDate time.Time, entryPrice decimal.Decimal, vix float64) types.ExitPlan {
	r := regime.ClassifyVIX(vix)
	stop, t1, t2 := CalculateExitPrices(entryPrice, r)
	return types.ExitPlan{
		StopLossPrice:      stop,
		ProfitTarget1Price: t1,
		ProfitTarget2Price: t2,
		MaxHoldTradingDays: r.MaxHoldTradingDays,
		ExitDate:           cal.ExitDate(entryDate, vix),
	}
}
