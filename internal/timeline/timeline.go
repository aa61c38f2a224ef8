// Package timeline contains the pure date arithmetic behind the gantt,
// timeline and calendar views: resolving the visible date window, mapping
// date spans to fractional bar positions, bucketing items by day, and
// translating drag deltas into date changes.
package timeline

import (
	"time"
)

// Window is a resolved [Start, End] viewing range.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TotalDays returns the whole-day span of the window. Degenerate windows
// count as a single day to keep positioning divisions defined.
func (w Window) TotalDays() int {
	total := DaysBetween(w.End, w.Start)
	if total <= 0 {
		return 1
	}
	return total
}

// DaysBetween returns the number of whole days from earlier to later,
// truncated toward zero. Negative when later precedes earlier.
func DaysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}

// StartOfDay returns t at 00:00:00 in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns t at 23:59:59 in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
