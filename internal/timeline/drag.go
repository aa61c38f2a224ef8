package timeline

import (
	"fmt"
	"math"
	"time"
)

// DragMode selects how pointer movement mutates a task's date span.
type DragMode string

const (
	DragModeMove        DragMode = "move"
	DragModeResizeStart DragMode = "resize-start"
	DragModeResizeEnd   DragMode = "resize-end"
)

// ParseDragMode validates a wire-format drag mode.
func ParseDragMode(s string) (DragMode, error) {
	switch DragMode(s) {
	case DragModeMove, DragModeResizeStart, DragModeResizeEnd:
		return DragMode(s), nil
	}
	return "", fmt.Errorf("invalid drag mode %q", s)
}

// DragSession converts continuous pointer movement into whole-day date
// mutations for one task. After each applied mutation the anchor resets to
// the current pointer position, so deltas are incremental rather than
// cumulative from drag start.
type DragSession struct {
	TaskID uint
	Mode   DragMode

	anchorX   float64
	dayWidth  float64
	mutations int
}

// NewDragSession starts a session. dayWidth is derived from the rendered
// timeline width and the window's day count.
func NewDragSession(taskID uint, mode DragMode, anchorX, timelineWidth float64, totalDays int) *DragSession {
	if timelineWidth <= 0 {
		timelineWidth = 1
	}
	if totalDays <= 0 {
		totalDays = 1
	}
	return &DragSession{
		TaskID:   taskID,
		Mode:     mode,
		anchorX:  anchorX,
		dayWidth: timelineWidth / float64(totalDays),
	}
}

// Move advances the pointer to x against the task's current [start, end]
// span. Sub-day movement is debounced: applied is false and the span is
// returned unchanged until the pointer has crossed at least one whole day.
// The start <= end ordering is enforced by clamping in the resize modes.
func (s *DragSession) Move(x float64, start, end time.Time) (newStart, newEnd time.Time, applied bool) {
	deltaDays := int(math.Round((x - s.anchorX) / s.dayWidth))
	if deltaDays == 0 {
		return start, end, false
	}

	switch s.Mode {
	case DragModeResizeStart:
		newStart = start.AddDate(0, 0, deltaDays)
		newEnd = end
		if newStart.After(newEnd) {
			newStart = newEnd.AddDate(0, 0, -1)
		}
	case DragModeResizeEnd:
		newStart = start
		newEnd = end.AddDate(0, 0, deltaDays)
		if newEnd.Before(newStart) {
			newEnd = newStart.AddDate(0, 0, 1)
		}
	default: // move: shift both ends, preserving duration
		newStart = start.AddDate(0, 0, deltaDays)
		newEnd = end.AddDate(0, 0, deltaDays)
	}

	s.anchorX = x
	s.mutations++
	return newStart, newEnd, true
}

// Mutations reports how many date changes the session has applied; the
// completion notification on pointer-up fires only when it is non-zero.
func (s *DragSession) Mutations() int {
	return s.mutations
}
