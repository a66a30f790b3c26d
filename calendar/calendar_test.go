package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestIsTradingDay(t *testing.T) {
	cal := New()

	t.Run("weekdays", func(t *testing.T) {
		assert.True(t, cal.IsTradingDay(d(2025, time.January, 2)))  // Thu
		assert.True(t, cal.IsTradingDay(d(2025, time.January, 17))) // Fri
	})

	t.Run("weekends", func(t *testing.T) {
		assert.False(t, cal.IsTradingDay(d(2025, time.January, 18))) // Sat
		assert.False(t, cal.IsTradingDay(d(2025, time.January, 19))) // Sun
		assert.True(t, cal.IsWeekend(d(2025, time.January, 18)))
		assert.True(t, cal.IsWeekend(d(2025, time.January, 19)))
	})

	t.Run("full_closures", func(t *testing.T) {
		assert.False(t, cal.IsTradingDay(d(2025, time.January, 20)))  // MLK Day
		assert.False(t, cal.IsTradingDay(d(2025, time.July, 4)))
		assert.False(t, cal.IsTradingDay(d(2025, time.December, 25)))
		assert.True(t, cal.IsMarketHoliday(d(2025, time.January, 20)))
	})

	t.Run("early_closes_are_trading_days", func(t *testing.T) {
		assert.True(t, cal.IsEarlyCloseDay(d(2025, time.July, 3)))
		assert.True(t, cal.IsTradingDay(d(2025, time.July, 3)))
		assert.False(t, cal.IsMarketHoliday(d(2025, time.July, 3)))
		assert.True(t, cal.IsEarlyCloseDay(d(2025, time.November, 28)))
		assert.True(t, cal.IsEarlyCloseDay(d(2025, time.December, 24)))
	})
}

func TestHolidayCount(t *testing.T) {
	cal := New()
	holidays := cal.Holidays(2025)
	require.Len(t, holidays, 13)

	closed, early := 0, 0
	for _, h := range holidays {
		switch h.Kind {
		case "early_close":
			early++
			assert.NotEmpty(t, h.EarlyCloseLocalTime)
		default:
			closed++
		}
	}
	assert.Equal(t, 10, closed)
	assert.Equal(t, 3, early)
}

func TestTimeOfDayNormalization(t *testing.T) {
	cal := New()
	// Date-with-time and date-only inputs must agree on every predicate.
	midnight := d(2025, time.January, 20)
	midSession := time.Date(2025, time.January, 20, 14, 35, 12, 987, time.UTC)

	assert.Equal(t, cal.IsTradingDay(midnight), cal.IsTradingDay(midSession))
	assert.Equal(t, cal.IsMarketHoliday(midnight), cal.IsMarketHoliday(midSession))
	assert.Equal(t, cal.NextTradingDay(midnight), cal.NextTradingDay(midSession))
}

func TestNextPreviousTradingDay(t *testing.T) {
	cal := New()

	// Friday before MLK weekend: next trading day skips Sat, Sun, and the holiday.
	assert.Equal(t, d(2025, time.January, 21), cal.NextTradingDay(d(2025, time.January, 17)))
	// And back again.
	assert.Equal(t, d(2025, time.January, 17), cal.PreviousTradingDay(d(2025, time.January, 21)))

	// Never returns the input day, even when it is itself a trading day.
	assert.Equal(t, d(2025, time.March, 11), cal.NextTradingDay(d(2025, time.March, 10)))

	// Across Thanksgiving: Wed Nov 26 → Fri Nov 28 (Thu closed, Fri early close still trades).
	assert.Equal(t, d(2025, time.November, 28), cal.NextTradingDay(d(2025, time.November, 26)))
}

func TestCountTradingDays(t *testing.T) {
	cal := New()

	n, err := cal.CountTradingDays(d(2025, time.January, 2), d(2025, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	// Single trading day range
	n, err = cal.CountTradingDays(d(2025, time.January, 2), d(2025, time.January, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Weekend-only range
	n, err = cal.CountTradingDays(d(2025, time.January, 18), d(2025, time.January, 19))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Range spanning MLK Day: Jan 17 (Fri) .. Jan 21 (Tue) = 2 trading days
	n, err = cal.CountTradingDays(d(2025, time.January, 17), d(2025, time.January, 21))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = cal.CountTradingDays(d(2025, time.January, 10), d(2025, time.January, 2))
	assert.Error(t, err)
}

func TestAddTradingDays(t *testing.T) {
	cal := New()

	// Friday + 1 skips the weekend and the Jan 20 holiday.
	assert.Equal(t, d(2025, time.January, 21), cal.AddTradingDays(d(2025, time.January, 17), 1))

	// Zero days returns the (normalized) start, even on a non-trading day.
	assert.Equal(t, d(2025, time.January, 18), cal.AddTradingDays(d(2025, time.January, 18), 0))

	// Start day itself never counts: Thu Jan 2 + 3 = Tue Jan 7.
	assert.Equal(t, d(2025, time.January, 7), cal.AddTradingDays(d(2025, time.January, 2), 3))

	// From a weekend, counting starts at the next open day.
	assert.Equal(t, d(2025, time.January, 21), cal.AddTradingDays(d(2025, time.January, 18), 1))
}

func TestExitDate(t *testing.T) {
	cal := New()

	// VIX 17 → Normal regime, 5 trading days: Fri Jan 17 → Mon Jan 27
	// (skipping two weekends and MLK Day).
	assert.Equal(t, d(2025, time.January, 27), cal.ExitDate(d(2025, time.January, 17), 17))

	// VIX 45 → Extreme, 10 trading days from Jan 2.
	assert.Equal(t, d(2025, time.January, 16), cal.ExitDate(d(2025, time.January, 2), 45))

	t.Run("always_after_entry_on_trading_day", func(t *testing.T) {
		for _, vix := range []float64{5, 13, 17, 22, 27, 35, 80} {
			for _, entry := range []time.Time{
				d(2025, time.January, 17),
				d(2025, time.July, 2),
				d(2025, time.November, 26),
				d(2025, time.December, 23),
			} {
				exit := cal.ExitDate(entry, vix)
				assert.True(t, exit.After(entry), "vix=%v entry=%s", vix, entry)
				assert.True(t, cal.IsTradingDay(exit), "vix=%v exit=%s", vix, exit)
			}
		}
	})
}

func TestUncoveredYearIsNeverHoliday(t *testing.T) {
	cal := New()
	require.False(t, cal.CoversYear(2024))

	// July 4, 2024 fell on a Thursday; without a 2024 set it counts as open.
	assert.True(t, cal.IsTradingDay(d(2024, time.July, 4)))
	// The weekend rule still applies outside covered years.
	assert.False(t, cal.IsTradingDay(d(2024, time.July, 6)))
}
