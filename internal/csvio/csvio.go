package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradecraftlab/bidback/internal/database"
	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// CSV IMPORT/EXPORT - Breadth snapshots in, journal entries out
// ═══════════════════════════════════════════════════════════════════════════════

const dateLayout = "2006-01-02"

// snapshot import columns; portfolio_size is optional and defaults later.
var snapshotHeader = []string{"date", "t2108", "vix", "up4pct", "down4pct", "base_position", "portfolio_size"}

// ReadSnapshots parses breadth snapshots from CSV. The first row must be the
// header; portfolio_size may be omitted per row.
func ReadSnapshots(r io.Reader) ([]types.BreadthSnapshot, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) < 6 || header[0] != snapshotHeader[0] {
		return nil, fmt.Errorf("unexpected csv header %v, want %v", header, snapshotHeader)
	}

	var snaps []types.BreadthSnapshot
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		snap, err := parseSnapshot(rec)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

func parseSnapshot(rec []string) (types.BreadthSnapshot, error) {
	var snap types.BreadthSnapshot
	if len(rec) < 6 {
		return snap, fmt.Errorf("expected at least 6 fields, got %d", len(rec))
	}

	date, err := time.Parse(dateLayout, rec[0])
	if err != nil {
		return snap, fmt.Errorf("bad date %q: %w", rec[0], err)
	}
	snap.Date = date

	floats := []struct {
		name string
		dst  *float64
	}{
		{"t2108", &snap.T2108},
		{"vix", &snap.VIX},
		{"up4pct", &snap.Up4Pct},
		{"down4pct", &snap.Down4Pct},
	}
	for i, f := range floats {
		v, err := strconv.ParseFloat(rec[i+1], 64)
		if err != nil {
			return snap, fmt.Errorf("bad %s %q: %w", f.name, rec[i+1], err)
		}
		*f.dst = v
	}

	snap.BasePosition, err = decimal.NewFromString(rec[5])
	if err != nil {
		return snap, fmt.Errorf("bad base_position %q: %w", rec[5], err)
	}
	if len(rec) > 6 && rec[6] != "" {
		snap.PortfolioSize, err = decimal.NewFromString(rec[6])
		if err != nil {
			return snap, fmt.Errorf("bad portfolio_size %q: %w", rec[6], err)
		}
	}
	return snap, nil
}

// WriteEntries exports journal entries as CSV.
func WriteEntries(w io.Writer, entries []database.JournalEntry) error {
	cw := csv.NewWriter(w)
	header := []string{
		"date", "t2108", "vix", "up4pct", "down4pct",
		"base_position", "portfolio_size", "entry_price",
		"regime", "breadth_strength", "deterioration_score",
		"big_opportunity", "avoid_entry",
		"final_position", "portfolio_heat_pct",
		"stop_loss", "profit_target_1", "profit_target_2",
		"max_hold_trading_days", "exit_date",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		exitDate := ""
		if !e.ExitDate.IsZero() {
			exitDate = e.ExitDate.Format(dateLayout)
		}
		rec := []string{
			e.Date.Format(dateLayout),
			strconv.FormatFloat(e.T2108, 'f', -1, 64),
			strconv.FormatFloat(e.VIX, 'f', -1, 64),
			strconv.FormatFloat(e.Up4Pct, 'f', -1, 64),
			strconv.FormatFloat(e.Down4Pct, 'f', -1, 64),
			e.BasePosition.StringFixed(2),
			e.PortfolioSize.StringFixed(2),
			e.EntryPrice.StringFixed(4),
			e.Regime,
			e.BreadthStrength,
			strconv.Itoa(e.DeteriorationScore),
			strconv.FormatBool(e.BigOpportunity),
			strconv.FormatBool(e.AvoidEntry),
			e.FinalPosition.StringFixed(0),
			e.PortfolioHeatPct.StringFixed(1),
			e.StopLossPrice.StringFixed(2),
			e.ProfitTarget1Price.StringFixed(2),
			e.ProfitTarget2Price.StringFixed(2),
			strconv.Itoa(e.MaxHoldTradingDays),
			exitDate,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
