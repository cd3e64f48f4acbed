package Logbook

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used across the API.
const DateLayout = "2006-01-02"

// BackfillDays is how far back an employee may submit a missed day.
const BackfillDays = 3

// RestDays are the weekly days on which routine reporting is suspended.
// Thursday/Friday is the deployed locale's weekend; swap per deployment.
var RestDays = [2]time.Weekday{time.Thursday, time.Friday}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, time.UTC)
}

// MidnightUTC renders a calendar date as the RFC3339 midnight instant
// stored in TaskLog.LogDate.
func MidnightUTC(target time.Time) string {
	return target.Format(DateLayout) + "T00:00:00Z"
}

// IsRestDay reports whether routine decisions are collected on the date.
func IsRestDay(target time.Time) bool {
	wd := target.Weekday()
	return wd == RestDays[0] || wd == RestDays[1]
}

// WithinWindow reports whether target falls inside the allowed
// submission window [today-BackfillDays, today], comparing calendar
// dates only.
func WithinWindow(today, target time.Time) bool {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	earliest := day(today).AddDate(0, 0, -BackfillDays)
	return !day(target).Before(earliest) && !day(target).After(day(today))
}

// DailyLogID derives the deterministic id of a Daily log row. The same
// (employee, task, date) triple always maps to the same id, which makes
// retried writes and re-imports overwrite instead of duplicate.
func DailyLogID(employeeID, taskID string, target time.Time) string {
	return fmt.Sprintf("%s_%s_%s", employeeID, taskID, target.Format(DateLayout))
}
