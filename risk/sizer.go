package risk

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// POSITION SIZING - VIX-scaled base position with portfolio-heat accounting
// ═══════════════════════════════════════════════════════════════════════════════
//
// Precedence (exclusive branches, never blended):
// 1. Avoid Entry  → size 0, heat 0. Overrides everything.
// 2. Big Opportunity → base × 2.0. Replaces the VIX multiplier outright.
// 3. Otherwise   → base × regime multiplier.
//
// ═══════════════════════════════════════════════════════════════════════════════

var (
	bigOpportunityMultiplier = decimal.NewFromFloat(2.0)
	hundred                  = decimal.NewFromInt(100)
)

// SizePosition turns a base position into the final plan. portfolioSize
// falls back to types.DefaultPortfolioSize when zero.
func SizePosition(basePosition decimal.Decimal, sig types.Signals, portfolioSize decimal.Decimal) types.PositionPlan {
	if portfolioSize.IsZero() {
		portfolioSize = types.DefaultPortfolioSize
	}

	plan := types.PositionPlan{
		BasePosition:             basePosition,
		VIXMultiplier:            sig.VIXRegime.PositionMultiplier,
		BigOpportunityMultiplier: 1.0,
		IsBigOpportunity:         sig.BigOpportunity,
		IsAvoidEntry:             sig.AvoidEntry,
	}

	switch {
	case sig.AvoidEntry:
		plan.FinalPosition = decimal.Zero
		plan.PortfolioHeatPercent = decimal.Zero.Round(1)
		log.Debug().
			Str("base", basePosition.StringFixed(0)).
			Msg("Avoid entry - position zeroed")
		return plan
	case sig.BigOpportunity:
		plan.BigOpportunityMultiplier = 2.0
		plan.FinalPosition = basePosition.Mul(bigOpportunityMultiplier).Round(0)
	default:
		plan.FinalPosition = basePosition.
			Mul(decimal.NewFromFloat(sig.VIXRegime.PositionMultiplier)).
			Round(0)
	}

	plan.PortfolioHeatPercent = plan.FinalPosition.
		Div(portfolioSize).
		Mul(hundred).
		Round(1)

	log.Debug().
		Str("base", basePosition.StringFixed(0)).
		Str("final", plan.FinalPosition.StringFixed(0)).
		Str("heat", plan.PortfolioHeatPercent.StringFixed(1)+"%").
		Bool("big_opportunity", sig.BigOpportunity).
		Str("regime", sig.VIXRegime.Tier.String()).
		Msg("Position sized")

	return plan
}
