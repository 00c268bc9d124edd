package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		today    time.Time
		expected int
	}{
		{
			name:     "full window in the past",
			start:    date(2022, 1, 15),
			end:      date(2022, 7, 15),
			today:    date(2024, 1, 1),
			expected: 7,
		},
		{
			name:     "end clamped to today",
			start:    date(2022, 1, 15),
			end:      date(2023, 1, 1),
			today:    date(2022, 3, 15),
			expected: 3,
		},
		{
			name:     "start in the future",
			start:    date(2022, 2, 1),
			end:      date(2022, 7, 15),
			today:    date(2022, 1, 1),
			expected: 0,
		},
		{
			name:     "end day before start day does not count the partial month",
			start:    date(2023, 1, 20),
			end:      date(2023, 4, 10),
			today:    date(2024, 1, 1),
			expected: 3,
		},
		{
			name:     "same day",
			start:    date(2023, 5, 10),
			end:      date(2023, 5, 10),
			today:    date(2023, 5, 10),
			expected: 1,
		},
		{
			name:     "end before start never goes negative",
			start:    date(2023, 5, 10),
			end:      date(2023, 1, 1),
			today:    date(2024, 1, 1),
			expected: 0,
		},
		{
			name:     "lease active through today",
			start:    date(2023, 1, 1),
			end:      date(2024, 1, 1),
			today:    date(2023, 5, 10),
			expected: 5,
		},
		{
			name:     "time of day is ignored",
			start:    time.Date(2023, 1, 1, 23, 0, 0, 0, time.UTC),
			end:      date(2024, 1, 1),
			today:    time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsBetween(tt.start, tt.end, tt.today))
		})
	}
}

func TestMonthsBetween_FutureStartAlwaysZero(t *testing.T) {
	today := date(2023, 6, 1)
	start := date(2023, 6, 2)
	for _, end := range []time.Time{date(2020, 1, 1), date(2023, 6, 30), date(2030, 12, 31)} {
		assert.Equal(t, 0, MonthsBetween(start, end, today))
	}
}

func TestNextMonth(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		expected time.Time
	}{
		{"regular month", date(2023, 1, 15), date(2023, 2, 15)},
		{"year rollover", date(2023, 12, 5), date(2024, 1, 5)},
		{"31st into february", date(2023, 1, 31), date(2023, 2, 28)},
		{"31st into leap february", date(2024, 1, 31), date(2024, 2, 28)},
		{"29th into leap february", date(2024, 1, 29), date(2024, 2, 29)},
		{"31st into april", date(2023, 3, 31), date(2023, 4, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextMonth(tt.from))
		})
	}
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(1))
	assert.Equal(t, "February", MonthName(2))
	assert.Equal(t, "December", MonthName(12))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2023, time.January))
	assert.Equal(t, 28, DaysIn(2023, time.February))
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 30, DaysIn(2023, time.April))
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(date(2023, 2, 1), date(2023, 2, 28)))
	assert.False(t, SameMonth(date(2023, 2, 1), date(2024, 2, 1)))
}

func TestRentDue(t *testing.T) {
	tests := []struct {
		name     string
		rent     decimal.Decimal
		months   int
		expected decimal.Decimal
	}{
		{"five months", decimal.NewFromInt(1200), 5, decimal.NewFromInt(6000)},
		{"no months", decimal.NewFromInt(1200), 0, decimal.Zero},
		{"cents", decimal.RequireFromString("999.99"), 3, decimal.RequireFromString("2999.97")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RentDue(tt.rent, tt.months)
			assert.True(t, result.Equal(tt.expected), "Expected %v, but got %v", tt.expected, result)
		})
	}
}
