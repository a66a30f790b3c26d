package calendar

import (
	"fmt"
	"time"

	"github.com/tradecraftlab/bidback/regime"
	"github.com/tradecraftlab/bidback/types"
)

// ═══════════════════════════════════════════════════════════════════════════════
// TRADING CALENDAR - Holiday-aware trading-day arithmetic
// ═══════════════════════════════════════════════════════════════════════════════
//
// Holiday data is injected per year; New() seeds the US 2025 set. A date in
// a year no set covers is simply never a holiday (the weekend rule still
// applies) - callers can probe CoversYear to detect the gap.
//
// ═══════════════════════════════════════════════════════════════════════════════

const dateKeyLayout = "2006-01-02"

// Calendar answers trading-day questions against its loaded holiday sets.
type Calendar struct {
	years  map[int][]types.Holiday
	closed map[string]types.Holiday // full closures, keyed by date
	early  map[string]types.Holiday // shortened sessions, keyed by date
}

// New builds a calendar seeded with the default US holiday year.
func New() *Calendar {
	c := &Calendar{
		years:  make(map[int][]types.Holiday),
		closed: make(map[string]types.Holiday),
		early:  make(map[string]types.Holiday),
	}
	c.AddYear(2025, usHolidays2025())
	return c
}

// AddYear registers (or replaces) the holiday set for one year.
func (c *Calendar) AddYear(year int, holidays []types.Holiday) {
	c.years[year] = holidays
	for _, h := range holidays {
		key := Normalize(h.Date).Format(dateKeyLayout)
		switch h.Kind {
		case types.EarlyClose:
			c.early[key] = h
		default:
			c.closed[key] = h
		}
	}
}

// CoversYear reports whether a holiday set is loaded for the given year.
func (c *Calendar) CoversYear(year int) bool {
	_, ok := c.years[year]
	return ok
}

// Holidays returns the loaded set for a year, nil if uncovered.
func (c *Calendar) Holidays(year int) []types.Holiday {
	return c.years[year]
}

// Normalize strips any time-of-day component so date-only and timestamped
// inputs resolve to the same calendar day.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports Saturday or Sunday.
func (c *Calendar) IsWeekend(t time.Time) bool {
	wd := Normalize(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsMarketHoliday reports a full-closure holiday.
func (c *Calendar) IsMarketHoliday(t time.Time) bool {
	_, ok := c.closed[Normalize(t).Format(dateKeyLayout)]
	return ok
}

// IsEarlyCloseDay reports a shortened session. Early closes are still
// trading days.
func (c *Calendar) IsEarlyCloseDay(t time.Time) bool {
	_, ok := c.early[Normalize(t).Format(dateKeyLayout)]
	return ok
}

// IsTradingDay reports whether the market is open at all on the given day.
func (c *Calendar) IsTradingDay(t time.Time) bool {
	return !c.IsWeekend(t) && !c.IsMarketHoliday(t)
}

// NextTradingDay returns the first trading day strictly after t.
func (c *Calendar) NextTradingDay(t time.Time) time.Time {
	d := Normalize(t).AddDate(0, 0, 1)
	for !c.IsTradingDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// PreviousTradingDay returns the first trading day strictly before t.
func (c *Calendar) PreviousTradingDay(t time.Time) time.Time {
	d := Normalize(t).AddDate(0, 0, -1)
	for !c.IsTradingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// CountTradingDays counts trading days in the inclusive range [start, end].
func (c *Calendar) CountTradingDays(start, end time.Time) (int, error) {
	s, e := Normalize(start), Normalize(end)
	if s.After(e) {
		return 0, fmt.Errorf("count trading days: start %s after end %s",
			s.Format(dateKeyLayout), e.Format(dateKeyLayout))
	}
	n := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if c.IsTradingDay(d) {
			n++
		}
	}
	return n, nil
}

// AddTradingDays returns the date n trading days after start. The start day
// itself is never counted, so the result is always strictly after start for
// n > 0 and always lands on a trading day.
func (c *Calendar) AddTradingDays(start time.Time, n int) time.Time {
	d := Normalize(start)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if c.IsTradingDay(d) {
			counted++
		}
	}
	return d
}

// ExitDate projects the latest exit for an entry: the regime's max hold
// period, counted in trading days from the entry date.
func (c *Calendar) ExitDate(entryDate time.Time, vix float64) time.Time {
	r := regime.ClassifyVIX(vix)
	return c.AddTradingDays(entryDate, r.MaxHoldTradingDays)
}
