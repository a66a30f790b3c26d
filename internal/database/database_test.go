package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecraftlab/bidback/calendar"
	"github.com/tradecraftlab/bidback/engine"
	"github.com/tradecraftlab/bidback/types"
)

func testDB(t *testing.T) *Database {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testPlan(t *testing.T, date time.Time, vix float64) *types.TradePlan {
	t.Helper()
	eng := engine.New(calendar.New())
	plan, err := eng.Plan(types.BreadthSnapshot{
		Date:         date,
		T2108:        45,
		VIX:          vix,
		Up4Pct:       620,
		Down4Pct:     140,
		BasePosition: decimal.NewFromInt(10000),
	}, decimal.NewFromInt(100))
	require.NoError(t, err)
	return plan
}

func TestSaveAndListEntries(t *testing.T) {
	db := testDB(t)

	jan := time.Date(2025, time.January, 17, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.SaveEntry(FromPlan(testPlan(t, jan, 17))))
	require.NoError(t, db.SaveEntry(FromPlan(testPlan(t, feb, 28))))

	entries, err := db.ListEntries(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, feb.Format("2006-01-02"), entries[0].Date.UTC().Format("2006-01-02"))
	assert.Equal(t, "high", entries[0].Regime)
	assert.Equal(t, "normal", entries[1].Regime)
	assert.True(t, entries[1].FinalPosition.Equal(decimal.NewFromInt(10000)))
}

func TestGetAndDeleteEntry(t *testing.T) {
	db := testDB(t)

	entry := FromPlan(testPlan(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 17))
	require.NoError(t, db.SaveEntry(entry))
	require.NotZero(t, entry.ID)

	got, err := db.GetEntry(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Regime, got.Regime)
	assert.True(t, got.StopLossPrice.Equal(decimal.NewFromInt(92)))

	require.NoError(t, db.DeleteEntry(entry.ID))
	_, err = db.GetEntry(entry.ID)
	assert.Error(t, err)
}

func TestEntriesBetween(t *testing.T) {
	db := testDB(t)

	dates := []time.Time{
		time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		require.NoError(t, db.SaveEntry(FromPlan(testPlan(t, d, 17))))
	}

	entries, err := db.EntriesBetween(dates[0], dates[1])
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, dates[0].Format("2006-01-02"), entries[0].Date.UTC().Format("2006-01-02"))
}

func TestStats(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.SaveEntry(FromPlan(testPlan(t, time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC), 17))))
	require.NoError(t, db.SaveEntry(FromPlan(testPlan(t, time.Date(2025, time.April, 8, 0, 0, 0, 0, time.UTC), 32))))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats["total_entries"])

	byRegime, ok := stats["by_regime"].(map[string]int64)
	require.True(t, ok)
	assert.EqualValues(t, 1, byRegime["normal"])
	assert.EqualValues(t, 1, byRegime["very_high"])
}
