package application

import (
	"time"

	"github.com/Swacker3927/ai-todo-manager/internal/assist/domain"
)

// Period selects the calendar window an analysis covers.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
)

// ParsePeriod validates a period selector.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	}
	return "", domain.NewError(domain.KindValidation, "period must be \"today\" or \"week\"")
}

// Window is a half-open calendar interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WindowFor computes the current window for a period relative to an explicit
// reference instant, in that instant's location. Weeks run Monday through
// Sunday; a Sunday reference maps to the previous Monday.
func WindowFor(p Period, now time.Time) Window {
	switch p {
	case PeriodWeek:
		start := startOfWeek(now)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}
	default:
		start := startOfDay(now)
		return Window{Start: start, End: start.AddDate(0, 0, 1)}
	}
}

// PreviousWindow computes the window immediately before the current one:
// yesterday for "today", the prior Monday-Sunday week for "week".
func PreviousWindow(p Period, now time.Time) Window {
	current := WindowFor(p, now)
	switch p {
	case PeriodWeek:
		return Window{Start: current.Start.AddDate(0, 0, -7), End: current.Start}
	default:
		return Window{Start: current.Start.AddDate(0, 0, -1), End: current.Start}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the week containing the given time.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	// Sunday (0) belongs to the week that started six days earlier.
	daysToSubtract := weekday - 1
	if daysToSubtract < 0 {
		daysToSubtract = 6
	}
	monday := t.AddDate(0, 0, -daysToSubtract)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, monday.Location())
}
