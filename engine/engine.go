package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tradecraftlab/bidback/calendar"
	"github.com/tradecraftlab/bidback/exits"
	"github.com/tradecraftlab/bidback/risk"
	"github.com/tradecraftlab/bidback/signals"
	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ENGINE - Snapshot + entry price → Signals, PositionPlan, ExitPlan
// ═══════════════════════════════════════════════════════════════════════════════
//
// Every call recomputes from scratch; the engine holds no state beyond the
// injected trading calendar, so it is safe from any number of goroutines.
//
// ═══════════════════════════════════════════════════════════════════════════════

// Engine orchestrates the detectors, sizer and exit planner.
type Engine struct {
	cal *calendar.Calendar
}

// New creates an engine using the given trading calendar.
func New(cal *calendar.Calendar) *Engine {
	return &Engine{cal: cal}
}

// Calendar exposes the engine's trading calendar.
func (e *Engine) Calendar() *calendar.Calendar {
	return e.cal
}

// Plan validates a snapshot and derives the complete trade plan for an entry
// at entryPrice on the snapshot date.
func (e *Engine) Plan(snap types.BreadthSnapshot, entryPrice decimal.Decimal) (*types.TradePlan, error) {
	snap = snap.WithDefaults()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	if !entryPrice.IsPositive() {
		return nil, fmt.Errorf("entry price must be positive, got %s", entryPrice)
	}

	sig := signals.Evaluate(snap)
	position := risk.SizePosition(snap.BasePosition, sig, snap.PortfolioSize)
	exit := exits.PlanExit(e.cal, snap.Date, entryPrice, snap.VIX)

	if !e.cal.CoversYear(snap.Date.Year()) {
		log.Warn().
			Int("year", snap.Date.Year()).
			Msg("No holiday set loaded for entry year - holidays will not be skipped")
	}

	log.Debug().
		Str("date", calendar.Normalize(snap.Date).Format("2006-01-02")).
		Str("regime", sig.VIXRegime.Tier.String()).
		Bool("big_opportunity", sig.BigOpportunity).
		Bool("avoid_entry", sig.AvoidEntry).
		Str("strength", string(sig.BreadthStrength)).
		Int("deterioration", sig.DeteriorationScore).
		Str("final_position", position.FinalPosition.StringFixed(0)).
		Str("exit_date", exit.ExitDate.Format("2006-01-02")).
		Msg("Trade plan computed")

	return &types.TradePlan{
		Snapshot:   snap,
		EntryPrice: entryPrice,
		Signals:    sig,
		Position:   position,
		Exit:       exit,
	}, nil
}

// Evaluate derives signals and position sizing only, for callers without an
// entry price yet (e.g. bulk breadth imports).
func (e *Engine) Evaluate(snap types.BreadthSnapshot) (types.Signals, types.PositionPlan, error) {
	snap = snap.WithDefaults()
	if err := snap.Validate(); err != nil {
		return types.Signals{}, types.PositionPlan{}, err
	}
	sig := signals.Evaluate(snap)
	return sig, risk.SizePosition(snap.BasePosition, sig, snap.PortfolioSize), nil
}
