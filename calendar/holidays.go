package calendar

import (
	"time"

	"github.com/tradecraftlab/bidback/types"
)

// usHolidays2025 is the compiled-in default holiday set: the 2025 US equity
// calendar, 10 full closures and 3 early closes. Further years are loaded
// from data files, see loader.go.
func usHolidays2025() []types.Holiday {
	d := func(m time.Month, day int) time.Time {
		return time.Date(2025, m, day, 0, 0, 0, 0, time.UTC)
	}
	return []types.Holiday{
		{Date: d(time.January, 1), Name: "New Year's Day", Kind: types.MarketClosed},
		{Date: d(time.January, 20), Name: "Martin Luther King, Jr. Day", Kind: types.MarketClosed},
		{Date: d(time.February, 17), Name: "Washington's Birthday", Kind: types.MarketClosed},
		{Date: d(time.April, 18), Name: "Good Friday", Kind: types.MarketClosed},
		{Date: d(time.May, 26), Name: "Memorial Day", Kind: types.MarketClosed},
		{Date: d(time.June, 19), Name: "Juneteenth National Independence Day", Kind: types.MarketClosed},
		{Date: d(time.July, 3), Name: "Day Before Independence Day", Kind: types.EarlyClose, EarlyCloseLocalTime: "13:00"},
		{Date: d(time.July, 4), Name: "Independence Day", Kind: types.MarketClosed},
		{Date: d(time.September, 1), Name: "Labor Day", Kind: types.MarketClosed},
		{Date: d(time.November, 27), Name: "Thanksgiving Day", Kind: types.MarketClosed},
		{Date: d(time.November, 28), Name: "Day After Thanksgiving", Kind: types.EarlyClose, EarlyCloseLocalTime: "13:00"},
		{Date: d(time.December, 24), Name: "Christmas Eve", Kind: types.EarlyClose, EarlyCloseLocalTime: "13:00"},
		{Date: d(time.December, 25), Name: "Christmas Day", Kind: types.MarketClosed},
	}
}
