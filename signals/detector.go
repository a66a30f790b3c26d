package signals

import (
	"github.com/tradecraftlab/bidback/regime"
	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SIGNAL DETECTOR - Breadth statistics → entry signals
// ═══════════════════════════════════════════════════════════════════════════════
//
// Thresholds follow the BIDBACK method:
// - Big Opportunity: deeply oversold breadth (T2108 < 30) with a strong
//   up-move thrust (> 1000 stocks up 4%+)
// - Avoid Entry: thin participation, overbought breadth, or down-moves
//   dominating a weak tape
//
// All detectors are pure functions of the day's numbers.
//
// ═══════════════════════════════════════════════════════════════════════════════

// DetectBigOpportunity reports the high-conviction entry condition.
func DetectBigOpportunity(t2108, up4pct float64) bool {
	return t2108 < 30 && up4pct > 1000
}

// DetectAvoidEntry reports conditions under which no position should be opened.
func DetectAvoidEntry(up4pct, down4pct, t2108 float64) bool {
	if up4pct < 150 {
		return true
	}
	if t2108 > 80 {
		return true
	}
	if down4pct > up4pct && up4pct < 300 {
		return true
	}
	return false
}

// Strength grades breadth as strong, moderate or weak.
func Strength(up4pct, down4pct, t2108 float64) types.BreadthStrength {
	ratio := up4pct
	if down4pct > 0 {
		ratio = up4pct / down4pct
	}
	switch {
	case up4pct > 1000 && ratio > 5 && t2108 < 40:
		return types.BreadthStrong
	case up4pct > 500 && ratio > 2.5 && t2108 < 70:
		return types.BreadthModerate
	default:
		return types.BreadthWeak
	}
}

// DeteriorationScore scores how hostile the tape is to an open position,
// 0 (healthy) to 100 (get out). Additive buckets, capped at 100.
func DeteriorationScore(up4pct, down4pct, t2108 float64) int {
	score := 0

	// Participation drying up
	if up4pct < 150 {
		score += 30
	} else if up4pct < 300 {
		score += 15
	}

	// Overbought breadth
	if t2108 > 80 {
		score += 25
	} else if t2108 > 70 {
		score += 15
	}

	// Down-moves taking over
	if down4pct > up4pct {
		score += 20
	} else if down4pct > 0.7*up4pct {
		score += 10
	}

	// Worst combination: overbought and no thrust left
	if t2108 > 85 && up4pct < 200 {
		score += 25
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Evaluate runs every detector over a snapshot and classifies its VIX.
func Evaluate(snap types.BreadthSnapshot) types.Signals {
	return types.Signals{
		BigOpportunity:     DetectBigOpportunity(snap.T2108, snap.Up4Pct),
		AvoidEntry:         DetectAvoidEntry(snap.Up4Pct, snap.Down4Pct, snap.T2108),
		VIXRegime:          regime.ClassifyVIX(snap.VIX),
		BreadthStrength:    Strength(snap.Up4Pct, snap.Down4Pct, snap.T2108),
		DeteriorationScore: DeteriorationScore(snap.Up4Pct, snap.Down4Pct, snap.T2108),
	}
}
