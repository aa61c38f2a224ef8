package timeline

import (
	"time"

	"github.com/huangang/taskflow/internal/models"
)

// Position maps a [start, end] date span to a fractional horizontal position
// inside the window. Left is clamped to [0, 100]; width has a 1% floor so
// same-day spans stay visible, capped at the space remaining to the right
// edge.
func Position(start, end time.Time, w Window) (left, width float64) {
	total := float64(w.TotalDays())

	offset := DaysBetween(start, w.Start)
	duration := DaysBetween(end, start) + 1 // inclusive of both endpoints

	left = float64(offset) / total * 100
	if left < 0 {
		left = 0
	}
	if left > 100 {
		left = 100
	}

	width = float64(duration) / total * 100
	if width < 1 {
		width = 1
	}
	if width > 100-left {
		width = 100 - left
	}

	return left, width
}

// TodayMarker returns the fractional offset of now inside the window and
// whether the marker falls within the visible range.
func TodayMarker(now time.Time, w Window) (pos float64, visible bool) {
	pos = float64(DaysBetween(now, w.Start)) / float64(w.TotalDays()) * 100
	return pos, pos >= 0 && pos <= 100
}

// Bar is a positioned entity span ready for rendering.
type Bar struct {
	Left     float64 `json:"left"`     // percent
	Width    float64 `json:"width"`    // percent
	Duration int     `json:"duration"` // days, inclusive
}

// TaskBar positions a task inside the window. Tasks missing either date are
// excluded from positioning output; that is a "do not render" signal, not an
// error.
func TaskBar(t *models.Task, w Window) (Bar, bool) {
	if !t.Scheduled() {
		return Bar{}, false
	}
	left, width := Position(*t.StartDate, *t.DueDate, w)
	return Bar{
		Left:     left,
		Width:    width,
		Duration: DaysBetween(*t.DueDate, *t.StartDate) + 1,
	}, true
}

// TimelineItem is a task positioned inside an assignee lane. Items later in
// a lane stack further down with decreasing z-index so overlapping bars stay
// distinguishable.
type TimelineItem struct {
	Task   models.Task `json:"task"`
	Bar    Bar         `json:"bar"`
	Top    int         `json:"top"`     // px offset inside the lane
	ZIndex int         `json:"z_index"`
}

// laneUnassigned is the lane for tasks without an assignee name.
const laneUnassigned = "Unassigned"

// GroupByAssignee positions every scheduled task in the window and groups
// the results into per-assignee lanes, preserving input order inside each
// lane.
func GroupByAssignee(tasks []models.Task, w Window) map[string][]TimelineItem {
	groups := make(map[string][]TimelineItem)

	for _, t := range tasks {
		bar, ok := TaskBar(&t, w)
		if !ok {
			continue
		}

		lane := t.Assignee
		if lane == "" {
			lane = laneUnassigned
		}

		idx := len(groups[lane])
		groups[lane] = append(groups[lane], TimelineItem{
			Task:   t,
			Bar:    bar,
			Top:    idx*20 + 8,
			ZIndex: 10 - idx,
		})
	}

	return groups
}
