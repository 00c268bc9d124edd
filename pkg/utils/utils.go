package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthsBetween returns how many monthly rent charges have accrued from start
// to end, with end clamped to today. A lease that has not started yet owes 0.
// Formula: (end.year - start.year) * 12 + (end.month - start.month), plus one
// when the end day has reached the start day.
func MonthsBetween(start, end, today time.Time) int {
	start, end, today = truncateDay(start), truncateDay(end), truncateDay(today)

	if start.After(today) {
		return 0
	}
	if end.After(today) {
		end = today
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() >= start.Day() {
		months++
	}

	if months < 0 {
		return 0
	}
	return months
}

// NextMonth advances date by one calendar month keeping the day of month.
// Days missing from the target month fall back to the 28th for February and
// the 30th otherwise.
func NextMonth(date time.Time) time.Time {
	year, month := date.Year(), date.Month()+1
	if month > time.December {
		month = time.January
		year++
	}

	day := date.Day()
	if day > DaysIn(year, month) {
		if month == time.February {
			day = 28
		} else {
			day = 30
		}
	}

	return time.Date(year, month, day, 0, 0, 0, 0, date.Location())
}

// DaysIn returns the number of days in the given month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthName returns the full English name of a month number (1-12)
func MonthName(month int) string {
	return time.Month(month).String()
}

// SameMonth reports whether a and b fall in the same calendar month
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// RentDue is the rent owed for the given number of months
func RentDue(monthlyRent decimal.Decimal, months int) decimal.Decimal {
	return monthlyRent.Mul(decimal.NewFromInt(int64(months)))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
