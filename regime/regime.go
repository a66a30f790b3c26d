package regime

import "math"

// ═══════════════════════════════════════════════════════════════════════════════
// VOLATILITY REGIME TABLE - VIX reading → risk/reward parameters
// ═══════════════════════════════════════════════════════════════════════════════
//
// Seven tiers partition [0, +inf) into contiguous half-open intervals.
// Every downstream number (stops, targets, hold days, sizing multiplier)
// comes from this one table, so the magic numbers live here and nowhere else.
//
// ═══════════════════════════════════════════════════════════════════════════════

// Tier identifies one of the seven VIX regimes, in ascending order.
type Tier int

const (
	UltraLow Tier = iota
	Low
	Normal
	Elevated
	High
	VeryHigh
	Extreme
)

func (t Tier) String() string {
	switch t {
	case UltraLow:
		return "ultra_low"
	case Low:
		return "low"
	case Normal:
		return "normal"
	case Elevated:
		return "elevated"
	case High:
		return "high"
	case VeryHigh:
		return "very_high"
	case Extreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// VolatilityRegime is one immutable row of the table.
type VolatilityRegime struct {
	Tier                 Tier
	LowerBound           float64 // inclusive
	UpperBound           float64 // exclusive, +Inf for the top tier
	StopLossPercent      float64 // negative
	ProfitTarget1Percent float64
	ProfitTarget2Percent float64
	MaxHoldTradingDays   int
	PositionMultiplier   float64
}

var table = []VolatilityRegime{
	{UltraLow, 0, 12, -4, 4, 10, 3, 0.8},
	{Low, 12, 15, -6, 6, 12, 4, 0.9},
	{Normal, 15, 20, -8, 7, 15, 5, 1.0},
	{Elevated, 20, 25, -10, 9, 20, 5, 1.1},
	{High, 25, 30, -12, 10, 25, 6, 1.2},
	{VeryHigh, 30, 40, -15, 12, 30, 7, 1.3},
	{Extreme, 40, math.Inf(1), -18, 15, 35, 10, 1.4},
}

// ClassifyVIX maps a VIX reading to its regime. Boundaries are half-open on
// the lower edge: 11.999999 is UltraLow, 12.0 is Low. Negative readings are
// clamped to UltraLow; there is no upper clamp.
func ClassifyVIX(vix float64) VolatilityRegime {
	if vix < 0 {
		vix = 0
	}
	for _, r := range table {
		if vix < r.UpperBound {
			return r
		}
	}
	return table[len(table)-1]
}

// Table returns a copy of the seven regimes in ascending tier order.
func Table() []VolatilityRegime {
	out := make([]VolatilityRegime, len(table))
	copy(out, table)
	return out
}
