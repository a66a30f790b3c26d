package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradecraftlab/bidback/regime"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SHARED TYPES - Inputs and derived plans passed between engine components
// ═══════════════════════════════════════════════════════════════════════════════

// DefaultPortfolioSize is assumed when a snapshot leaves PortfolioSize unset.
var DefaultPortfolioSize = decimal.NewFromInt(100000)

// BreadthStrength grades the quality of market breadth.
type BreadthStrength string

const (
	BreadthWeak     BreadthStrength = "weak"
	BreadthModerate BreadthStrength = "moderate"
	BreadthStrong   BreadthStrength = "strong"
)

// HolidayKind distinguishes full closures from shortened sessions.
type HolidayKind string

const (
	MarketClosed HolidayKind = "market_closed"
	EarlyClose   HolidayKind = "early_close"
)

// Holiday is one static calendar entry.
type Holiday struct {
	Date time.Time
	Name string
	Kind HolidayKind
	// EarlyCloseLocalTime holds the shortened-session close ("13:00"),
	// only set for EarlyClose entries.
	EarlyCloseLocalTime string
}

// BreadthSnapshot is the caller-supplied market state for one day.
// T2108 is the percentage of stocks above their 40-day MA; Up4Pct/Down4Pct
// count stocks moving ±4% on the day.
type BreadthSnapshot struct {
	Date          time.Time
	T2108         float64         `validate:"gte=0,lte=100"`
	VIX           float64         `validate:"gte=0,lte=200"`
	Up4Pct        float64         `validate:"gte=0"`
	Down4Pct      float64         `validate:"gte=0"`
	BasePosition  decimal.Decimal `validate:"gt=0"`
	PortfolioSize decimal.Decimal `validate:"gt=0"`
}

// WithDefaults returns a copy with DefaultPortfolioSize filled in when the
// caller left PortfolioSize at zero. Run before Validate.
func (s BreadthSnapshot) WithDefaults() BreadthSnapshot {
	if s.PortfolioSize.IsZero() {
		s.PortfolioSize = DefaultPortfolioSize
	}
	return s
}

// Signals is the detector output for one snapshot.
type Signals struct {
	BigOpportunity     bool
	AvoidEntry         bool
	VIXRegime          regime.VolatilityRegime
	BreadthStrength    BreadthStrength
	DeteriorationScore int // 0..100
}

// PositionPlan is the sized position derived from a snapshot.
type PositionPlan struct {
	BasePosition             decimal.Decimal
	VIXMultiplier            float64
	BigOpportunityMultiplier float64         // 1.0 or 2.0
	FinalPosition            decimal.Decimal // whole currency units
	PortfolioHeatPercent     decimal.Decimal // one decimal place
	IsBigOpportunity         bool
	IsAvoidEntry             bool
}

// ExitPlan projects stops, targets and the latest exit date for an entry.
type ExitPlan struct {
	StopLossPrice      decimal.Decimal
	ProfitTarget1Price decimal.Decimal
	ProfitTarget2Price decimal.Decimal
	MaxHoldTradingDays int
	ExitDate           time.Time
}

// TradePlan bundles everything the engine derives for one entry.
type TradePlan struct {
	Snapshot   BreadthSnapshot
	EntryPrice decimal.Decimal
	Signals    Signals
	Position   PositionPlan
	Exit       ExitPlan
}
