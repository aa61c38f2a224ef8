package timeline

import (
	"time"

	"github.com/huangang/taskflow/internal/models"
)

// bufferDays is the symmetric visual padding added around the outermost
// dates so bars never touch the window edges.
const bufferDays = 7

// defaultWindowDays is the window width used when nothing is dated.
const defaultWindowDays = 30

// ResolveRange computes the visible date window for a set of tasks and an
// optional project: the min/max over every present date, padded by a week on
// each side (start floored to start-of-day, end ceiled to end-of-day). With
// no dated input at all the window is [today, today+30d].
func ResolveRange(tasks []models.Task, project *models.Project, now time.Time) Window {
	var dates []time.Time

	if project != nil {
		if !project.StartDate.IsZero() {
			dates = append(dates, project.StartDate)
		}
		if !project.EndDate.IsZero() {
			dates = append(dates, project.EndDate)
		}
	}

	for _, t := range tasks {
		if t.StartDate != nil && !t.StartDate.IsZero() {
			dates = append(dates, *t.StartDate)
		}
		if t.DueDate != nil && !t.DueDate.IsZero() {
			dates = append(dates, *t.DueDate)
		}
	}

	if len(dates) == 0 {
		return Window{Start: now, End: now.AddDate(0, 0, defaultWindowDays)}
	}

	min, max := dates[0], dates[0]
	for _, d := range dates[1:] {
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}

	return Window{
		Start: StartOfDay(min).AddDate(0, 0, -bufferDays),
		End:   EndOfDay(max).AddDate(0, 0, bufferDays),
	}
}

// ViewWindow returns the calendar-aligned window around a focus date for the
// assignee timeline: the containing week (Sunday to Saturday), month, or
// quarter. Unknown ranges fall back to the month.
func ViewWindow(focus time.Time, rng string) Window {
	switch rng {
	case "week":
		start := StartOfDay(focus.AddDate(0, 0, -int(focus.Weekday())))
		return Window{Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}
	case "quarter":
		quarter := (int(focus.Month()) - 1) / 3
		start := time.Date(focus.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, focus.Location())
		return Window{Start: start, End: EndOfDay(start.AddDate(0, 3, -1))}
	default: // month
		start := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, focus.Location())
		return Window{Start: start, End: EndOfDay(start.AddDate(0, 1, -1))}
	}
}
