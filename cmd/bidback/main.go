// Bidback - signal and exit planner for the BIDBACK trading method
//
// Feed it a day's market breadth (T2108, VIX, 4% movers) and an entry price;
// it classifies the volatility regime, detects Big Opportunity / Avoid Entry
// conditions, sizes the position against portfolio heat, and projects stop,
// targets and a holiday-aware exit date. Plans can be journaled to SQLite
// and moved in and out as CSV.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tradecraftlab/bidback/calendar"
	"github.com/tradecraftlab/bidback/engine"
	"github.com/tradecraftlab/bidback/internal/config"
	"github.com/tradecraftlab/bidback/internal/csvio"
	"github.com/tradecraftlab/bidback/internal/database"
	"github.com/tradecraftlab/bidback/types"
)

const version = "1.2.0"

const dateLayout = "2006-01-02"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:     "bidback",
		Short:   "BIDBACK breadth signals, position sizing and exit planning",
		Version: version,
	}
	root.AddCommand(
		newPlanCmd(cfg),
		newJournalCmd(cfg),
		newImportCmd(cfg),
		newExportCmd(cfg),
		newHolidaysCmd(cfg),
	)
	return root
}

// buildCalendar seeds the default year and layers any configured extra year.
func buildCalendar(cfg *config.Config) (*calendar.Calendar, error) {
	cal := calendar.New()
	if cfg.HolidayFile != "" {
		if err := cal.LoadYearFile(cfg.HolidayFile); err != nil {
			return nil, err
		}
		log.Info().Str("file", cfg.HolidayFile).Msg("Extra holiday year loaded")
	}
	return cal, nil
}

func newPlanCmd(cfg *config.Config) *cobra.Command {
	var (
		dateStr   string
		t2108     float64
		vix       float64
		up4       float64
		down4     float64
		base      float64
		portfolio float64
		entry     float64
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute signals, position size and exit plan for one entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse(dateLayout, dateStr)
			if err != nil {
				return fmt.Errorf("bad --date: %w", err)
			}

			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}

			snap := types.BreadthSnapshot{
				Date:         date,
				T2108:        t2108,
				VIX:          vix,
				Up4Pct:       up4,
				Down4Pct:     down4,
				BasePosition: decimal.NewFromFloat(base),
			}
			if portfolio > 0 {
				snap.PortfolioSize = decimal.NewFromFloat(portfolio)
			} else {
				snap.PortfolioSize = cfg.PortfolioSize
			}

			plan, err := engine.New(cal).Plan(snap, decimal.NewFromFloat(entry))
			if err != nil {
				return err
			}

			printPlan(plan)

			if save {
				db, err := database.New(cfg.DatabasePath)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := db.SaveEntry(database.FromPlan(plan)); err != nil {
					return err
				}
				log.Info().Msg("💾 Plan journaled")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "entry date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&t2108, "t2108", 0, "percent of stocks above 40-day MA")
	cmd.Flags().Float64Var(&vix, "vix", 0, "VIX reading")
	cmd.Flags().Float64Var(&up4, "up4", 0, "stocks up 4%+ today")
	cmd.Flags().Float64Var(&down4, "down4", 0, "stocks down 4%+ today")
	cmd.Flags().Float64Var(&base, "base", 10000, "base position (currency units)")
	cmd.Flags().Float64Var(&portfolio, "portfolio", 0, "portfolio size (defaults from config)")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price")
	cmd.Flags().BoolVar(&save, "save", false, "journal the plan to the database")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("vix")
	cmd.MarkFlagRequired("entry")

	return cmd
}

func printPlan(plan *types.TradePlan) {
	sig := plan.Signals
	fmt.Printf("Regime:        %s (VIX %.2f, multiplier %.1fx)\n",
		sig.VIXRegime.Tier, plan.Snapshot.VIX, sig.VIXRegime.PositionMultiplier)
	fmt.Printf("Breadth:       %s (deterioration %d/100)\n",
		sig.BreadthStrength, sig.DeteriorationScore)
	fmt.Printf("Big opportunity: %v   Avoid entry: %v\n", sig.BigOpportunity, sig.AvoidEntry)
	fmt.Printf("Position:      %s (heat %s%%)\n",
		plan.Position.FinalPosition.StringFixed(0),
		plan.Position.PortfolioHeatPercent.StringFixed(1))
	fmt.Printf("Stop loss:     %s\n", plan.Exit.StopLossPrice.StringFixed(2))
	fmt.Printf("Target 1:      %s\n", plan.Exit.ProfitTarget1Price.StringFixed(2))
	fmt.Printf("Target 2:      %s\n", plan.Exit.ProfitTarget2Price.StringFixed(2))
	fmt.Printf("Exit by:       %s (max hold %d trading days)\n",
		plan.Exit.ExitDate.Format(dateLayout), plan.Exit.MaxHoldTradingDays)
}

func newJournalCmd(cfg *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recent journaled plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.New(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.ListEntries(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("Journal is empty")
				return nil
			}
			for _, e := range entries {
				flag := " "
				switch {
				case e.AvoidEntry:
					flag = "✗"
				case e.BigOpportunity:
					flag = "★"
				}
				fmt.Printf("%4d  %s %s  %-9s  pos %12s  heat %5s%%  exit %s\n",
					e.ID, flag, e.Date.Format(dateLayout), e.Regime,
					e.FinalPosition.StringFixed(0), e.PortfolioHeatPct.StringFixed(1),
					e.ExitDate.Format(dateLayout))
			}

			stats, err := db.Stats()
			if err == nil {
				fmt.Printf("\n%d entries, %d big opportunities, %d avoided\n",
					stats["total_entries"], stats["big_opportunities"], stats["avoided_entries"])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	return cmd
}

func newImportCmd(cfg *config.Config) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import breadth snapshots from CSV and journal their signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			snaps, err := csvio.ReadSnapshots(f)
			if err != nil {
				return err
			}

			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}
			eng := engine.New(cal)

			db, err := database.New(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			imported := 0
			for _, snap := range snaps {
				if snap.PortfolioSize.IsZero() {
					snap.PortfolioSize = cfg.PortfolioSize
				}
				sig, position, err := eng.Evaluate(snap)
				if err != nil {
					log.Warn().Err(err).
						Str("date", snap.Date.Format(dateLayout)).
						Msg("Skipping invalid snapshot")
					continue
				}
				// Imported rows carry no entry price, so exit fields stay zero.
				entry := database.FromPlan(&types.TradePlan{
					Snapshot: snap.WithDefaults(),
					Signals:  sig,
					Position: position,
				})
				if err := db.SaveEntry(entry); err != nil {
					return err
				}
				imported++
			}

			log.Info().Int("imported", imported).Int("total", len(snaps)).Msg("📈 Import complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file of breadth snapshots")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		file  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export journaled plans to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.New(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.ListEntries(limit)
			if err != nil {
				return err
			}

			f, err := os.Create(file)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := csvio.WriteEntries(f, entries); err != nil {
				return err
			}
			log.Info().Int("entries", len(entries)).Str("file", file).Msg("📤 Export complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "bidback_journal.csv", "destination CSV file")
	cmd.Flags().IntVar(&limit, "limit", 1000, "maximum entries to export")
	return cmd
}

func newHolidaysCmd(cfg *config.Config) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Show the loaded holiday calendar for a year",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := buildCalendar(cfg)
			if err != nil {
				return err
			}
			if !cal.CoversYear(year) {
				return fmt.Errorf("no holiday set loaded for %d", year)
			}
			for _, h := range cal.Holidays(year) {
				kind := "closed"
				if h.Kind == types.EarlyClose {
					kind = "early close " + h.EarlyCloseLocalTime
				}
				fmt.Printf("%s  %-14s %s\n", h.Date.Format(dateLayout), kind, h.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 2025, "calendar year")
	return cmd
}
