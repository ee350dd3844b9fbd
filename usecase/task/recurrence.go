package task

import (
	"time"

	"github.com/planora/backend/domain"
)

// NextOccurrence advances a due date by one recurrence step. Month and
// year additions clamp to the last valid day of the target month, so
// Jan 31 + 1 month lands on Feb 28 (29 in leap years) instead of
// spilling into March.
func NextOccurrence(from time.Time, r domain.Recurrence) time.Time {
	switch r {
	case domain.RecurDaily:
		return from.AddDate(0, 0, 1)
	case domain.RecurWeekly:
		return from.AddDate(0, 0, 7)
	case domain.RecurMonthly:
		return addMonthsClamped(from, 1)
	case domain.RecurYearly:
		return addYearsClamped(from, 1)
	}
	return from
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func addYearsClamped(t time.Time, years int) time.Time {
	year, month, day := t.Date()
	if last := daysInMonth(year+years, month); day > last {
		day = last
	}
	return time.Date(year+years, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
