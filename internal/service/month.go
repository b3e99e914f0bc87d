package service

import (
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey returns the "YYYY-MM" key for a point in time.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// MonthBounds returns [start, end) for a month key, where end is the first
// instant of the following month.
func MonthBounds(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(monthKeyLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	return start, start.AddDate(0, 1, 0), nil
}

// DueDateInMonth clamps a template's due day into the month, so dueDay=31 in
// a 30-day month lands on the 30th rather than rolling over.
func DueDateInMonth(month string, dueDay int) (time.Time, error) {
	start, _, err := MonthBounds(month)
	if err != nil {
		return time.Time{}, err
	}

	// Day 0 of the next month is the last day of this one.
	lastDay := time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	day := dueDay
	if day < 1 {
		day = 1
	}
	if day > lastDay {
		day = lastDay
	}

	return time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, time.UTC), nil
}

// trailingMonths returns the n month keys ending at (and including) end, in
// ascending order.
func trailingMonths(end time.Time, n int) []string {
	months := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		months = append(months, MonthKey(end.AddDate(0, -i, 0)))
	}
	return months
}
