package calendar

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tradecraftlab/bidback/types"
)

// Holiday year files keep calculation logic untouched when a new calendar
// year is published:
//
//	year: 2026
//	holidays:
//	  - date: 2026-01-01
//	    name: New Year's Day
//	    kind: market_closed
//	  - date: 2026-12-24
//	    name: Christmas Eve
//	    kind: early_close
//	    early_close: "13:00"

type yearFile struct {
	Year     int           `yaml:"year"`
	Holidays []holidayYAML `yaml:"holidays"`
}

type holidayYAML struct {
	Date       string `yaml:"date"`
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	EarlyClose string `yaml:"early_close"`
}

// LoadYearFile reads one holiday year file and registers it on the calendar.
func (c *Calendar) LoadYearFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load holiday file: %w", err)
	}
	return c.LoadYear(raw)
}

// LoadYear parses a YAML holiday set and registers it.
func (c *Calendar) LoadYear(raw []byte) error {
	var yf yearFile
	if err := yaml.Unmarshal(raw, &yf); err != nil {
		return fmt.Errorf("parse holiday file: %w", err)
	}
	if yf.Year == 0 {
		return fmt.Errorf("holiday file missing year")
	}

	holidays := make([]types.Holiday, 0, len(yf.Holidays))
	for _, h := range yf.Holidays {
		date, err := time.Parse(dateKeyLayout, h.Date)
		if err != nil {
			return fmt.Errorf("holiday %q: bad date %q: %w", h.Name, h.Date, err)
		}
		if date.Year() != yf.Year {
			return fmt.Errorf("holiday %q: date %s outside year %d", h.Name, h.Date, yf.Year)
		}
		kind := types.HolidayKind(h.Kind)
		switch kind {
		case types.MarketClosed, types.EarlyClose:
		default:
			return fmt.Errorf("holiday %q: unknown kind %q", h.Name, h.Kind)
		}
		holidays = append(holidays, types.Holiday{
			Date:                date,
			Name:                h.Name,
			Kind:                kind,
			EarlyCloseLocalTime: h.EarlyClose,
		})
	}

	c.AddYear(yf.Year, holidays)
	return nil
}
