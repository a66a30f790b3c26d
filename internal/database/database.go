package database

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tradecraftlab/bidback/calendar"
	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// JOURNAL DATABASE - SQLite persistence for computed trade plans
// ═══════════════════════════════════════════════════════════════════════════════

type Database struct {
	db *gorm.DB
}

// JournalEntry is one journaled plan: the snapshot inputs and everything the
// engine derived from them.
type JournalEntry struct {
	ID   uint      `gorm:"primaryKey;autoIncrement"`
	Date time.Time `gorm:"index"`

	// Inputs
	T2108         float64
	VIX           float64
	Up4Pct        float64
	Down4Pct      float64
	BasePosition  decimal.Decimal `gorm:"type:decimal(20,2)"`
	PortfolioSize decimal.Decimal `gorm:"type:decimal(20,2)"`
	EntryPrice    decimal.Decimal `gorm:"type:decimal(18,4)"`

	// Signals
	Regime             string `gorm:"index"`
	BreadthStrength    string
	DeteriorationScore int
	BigOpportunity     bool
	AvoidEntry         bool

	// Position plan
	FinalPosition    decimal.Decimal `gorm:"type:decimal(20,2)"`
	PortfolioHeatPct decimal.Decimal `gorm:"type:decimal(10,1)"`

	// Exit plan (zero when the entry was journaled without a price)
	StopLossPrice      decimal.Decimal `gorm:"type:decimal(18,4)"`
	ProfitTarget1Price decimal.Decimal `gorm:"type:decimal(18,4)"`
	ProfitTarget2Price decimal.Decimal `gorm:"type:decimal(18,4)"`
	MaxHoldTradingDays int
	ExitDate           time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New opens (or creates) the SQLite journal at dbPath.
func New(dbPath string) (*Database, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&JournalEntry{}); err != nil {
		return nil, err
	}

	log.Info().Str("path", dbPath).Msg("Journal database initialized (SQLite)")
	return &Database{db: db}, nil
}

// FromPlan flattens a trade plan into a journal entry.
func FromPlan(plan *types.TradePlan) *JournalEntry {
	return &JournalEntry{
		Date:               calendar.Normalize(plan.Snapshot.Date),
		T2108:              plan.Snapshot.T2108,
		VIX:                plan.Snapshot.VIX,
		Up4Pct:             plan.Snapshot.Up4Pct,
		Down4Pct:           plan.Snapshot.Down4Pct,
		BasePosition:       plan.Snapshot.BasePosition,
		PortfolioSize:      plan.Snapshot.PortfolioSize,
		EntryPrice:         plan.EntryPrice,
		Regime:             plan.Signals.VIXRegime.Tier.String(),
		BreadthStrength:    string(plan.Signals.BreadthStrength),
		DeteriorationScore: plan.Signals.DeteriorationScore,
		BigOpportunity:     plan.Signals.BigOpportunity,
		AvoidEntry:         plan.Signals.AvoidEntry,
		FinalPosition:      plan.Position.FinalPosition,
		PortfolioHeatPct:   plan.Position.PortfolioHeatPercent,
		StopLossPrice:      plan.Exit.StopLossPrice,
		ProfitTarget1Price: plan.Exit.ProfitTarget1Price,
		ProfitTarget2Price: plan.Exit.ProfitTarget2Price,
		MaxHoldTradingDays: plan.Exit.MaxHoldTradingDays,
		ExitDate:           plan.Exit.ExitDate,
	}
}

// SaveEntry inserts or updates a journal entry.
func (d *Database) SaveEntry(entry *JournalEntry) error {
	return d.db.Save(entry).Error
}

// GetEntry retrieves one entry by id.
func (d *Database) GetEntry(id uint) (*JournalEntry, error) {
	var entry JournalEntry
	err := d.db.First(&entry, id).Error
	return &entry, err
}

// ListEntries returns the most recent entries, newest first.
func (d *Database) ListEntries(limit int) ([]JournalEntry, error) {
	var entries []JournalEntry
	err := d.db.Order("date DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// EntriesBetween returns entries with dates in [start, end], oldest first.
func (d *Database) EntriesBetween(start, end time.Time) ([]JournalEntry, error) {
	var entries []JournalEntry
	err := d.db.
		Where("date >= ? AND date <= ?", calendar.Normalize(start), calendar.Normalize(end)).
		Order("date ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// DeleteEntry removes one entry by id.
func (d *Database) DeleteEntry(id uint) error {
	return d.db.Delete(&JournalEntry{}, id).Error
}

// Stats returns aggregate journal statistics.
func (d *Database) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int64
	d.db.Model(&JournalEntry{}).Count(&total)
	stats["total_entries"] = total

	var bigOpp int64
	d.db.Model(&JournalEntry{}).Where("big_opportunity = ?", true).Count(&bigOpp)
	stats["big_opportunities"] = bigOpp

	var avoided int64
	d.db.Model(&JournalEntry{}).Where("avoid_entry = ?", true).Count(&avoided)
	stats["avoided_entries"] = avoided

	type RegimeCount struct {
		Regime string
		Count  int64
	}
	var regimeCounts []RegimeCount
	d.db.Model(&JournalEntry{}).Select("regime, count(*) as count").Group("regime").Scan(&regimeCounts)
	byRegime := make(map[string]int64)
	for _, rc := range regimeCounts {
		byRegime[rc.Regime] = rc.Count
	}
	stats["by_regime"] = byRegime

	return stats, nil
}

// Close closes the underlying connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
