package timeline

import (
	"time"

	"github.com/huangang/taskflow/internal/models"
)

// dayKeyFormat keys calendar buckets by exact calendar day.
const dayKeyFormat = "2006-01-02"

// maxVisibleItems is how many items a day cell shows before collapsing the
// rest into an overflow count.
const maxVisibleItems = 3

// CalendarItem is a task due date or project end date shown in a day cell.
type CalendarItem struct {
	Type     string `json:"type"` // task, project
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority,omitempty"`
}

// DayBucket holds the items due on one day. Items carries at most
// maxVisibleItems entries in insertion order; Overflow counts the rest.
type DayBucket struct {
	Date     string         `json:"date"`
	Items    []CalendarItem `json:"items"`
	Overflow int            `json:"overflow"`
	Total    int            `json:"total"`
}

// MonthBuckets groups task due dates and project end dates falling inside
// the month of the given date into per-day buckets.
func MonthBuckets(month time.Time, tasks []models.Task, projects []models.Project) map[string]*DayBucket {
	w := ViewWindow(month, "month")
	buckets := make(map[string]*DayBucket)

	add := func(day time.Time, item CalendarItem) {
		if day.Before(w.Start) || day.After(w.End) {
			return
		}
		key := day.Format(dayKeyFormat)
		b, ok := buckets[key]
		if !ok {
			b = &DayBucket{Date: key}
			buckets[key] = b
		}
		b.Total++
		if len(b.Items) < maxVisibleItems {
			b.Items = append(b.Items, item)
		} else {
			b.Overflow++
		}
	}

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		add(*t.DueDate, CalendarItem{
			Type:     "task",
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
		})
	}

	for _, p := range projects {
		if p.EndDate.IsZero() {
			continue
		}
		add(p.EndDate, CalendarItem{
			Type:   "project",
			ID:     p.ID,
			Title:  p.Name,
			Status: p.Status,
		})
	}

	return buckets
}
