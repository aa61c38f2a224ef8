package timeline

import (
	"testing"
	"time"
)

// 30-day window rendered at 600px: 20px per day.
func newSession(mode DragMode) *DragSession {
	return NewDragSession(1, mode, 0, 600, 30)
}

func TestDragMove_ShiftsBothEndsPreservingDuration(t *testing.T) {
	s := newSession(DragModeMove)
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 14)

	newStart, newEnd, applied := s.Move(60, start, end) // +3 days

	if !applied {
		t.Fatal("3-day movement should apply")
	}
	if !newStart.Equal(date(2024, time.January, 13)) {
		t.Errorf("newStart = %v, expected Jan 13", newStart)
	}
	if !newEnd.Equal(date(2024, time.January, 17)) {
		t.Errorf("newEnd = %v, expected Jan 17", newEnd)
	}
	if DaysBetween(newEnd, newStart) != DaysBetween(end, start) {
		t.Error("move must preserve duration")
	}
}

func TestDragMove_DebouncesSubDayMovement(t *testing.T) {
	s := newSession(DragModeMove)
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 14)

	_, _, applied := s.Move(9, start, end) // less than half a day

	if applied {
		t.Error("sub-day movement must not apply")
	}
	if s.Mutations() != 0 {
		t.Errorf("Mutations = %d, expected 0", s.Mutations())
	}
}

func TestDragResizeStart_ClampsToEndMinusOneDay(t *testing.T) {
	s := newSession(DragModeResizeStart)
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 12)

	newStart, newEnd, applied := s.Move(200, start, end) // +10 days, past end

	if !applied {
		t.Fatal("movement should apply")
	}
	if !newStart.Equal(date(2024, time.January, 11)) {
		t.Errorf("newStart = %v, expected clamp to end-1d (Jan 11)", newStart)
	}
	if !newEnd.Equal(end) {
		t.Errorf("newEnd = %v, resize-start must not touch the end", newEnd)
	}
	if newStart.After(newEnd) {
		t.Error("start must never exceed end")
	}
}

func TestDragResizeEnd_ClampsToStartPlusOneDay(t *testing.T) {
	s := newSession(DragModeResizeEnd)
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 12)

	newStart, newEnd, applied := s.Move(-200, start, end) // -10 days, before start

	if !applied {
		t.Fatal("movement should apply")
	}
	if !newEnd.Equal(date(2024, time.January, 11)) {
		t.Errorf("newEnd = %v, expected clamp to start+1d (Jan 11)", newEnd)
	}
	if !newStart.Equal(start) {
		t.Errorf("newStart = %v, resize-end must not touch the start", newStart)
	}
}

func TestDragMove_AnchorResetsAfterMutation(t *testing.T) {
	s := newSession(DragModeMove)
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 14)

	// First movement: +1 day from anchor 0.
	start, end, applied := s.Move(20, start, end)
	if !applied {
		t.Fatal("first movement should apply")
	}

	// Second movement to the same x: no further delta from the new anchor.
	_, _, applied = s.Move(20, start, end)
	if applied {
		t.Error("deltas must be incremental from the last applied position")
	}

	// Another +1 day from the reset anchor.
	newStart, _, applied := s.Move(40, start, end)
	if !applied {
		t.Fatal("second whole-day movement should apply")
	}
	if !newStart.Equal(date(2024, time.January, 12)) {
		t.Errorf("newStart = %v, expected Jan 12 after two +1d steps", newStart)
	}
	if s.Mutations() != 2 {
		t.Errorf("Mutations = %d, expected 2", s.Mutations())
	}
}

func TestDragMove_NegativeDelta(t *testing.T) {
	s := NewDragSession(1, DragModeMove, 100, 600, 30)
	start := date(2024, time.January, 10)
	end := date(2024, time.January, 14)

	newStart, newEnd, applied := s.Move(60, start, end) // -2 days

	if !applied {
		t.Fatal("movement should apply")
	}
	if !newStart.Equal(date(2024, time.January, 8)) {
		t.Errorf("newStart = %v, expected Jan 8", newStart)
	}
	if !newEnd.Equal(date(2024, time.January, 12)) {
		t.Errorf("newEnd = %v, expected Jan 12", newEnd)
	}
}

func TestNewDragSession_GuardsDegenerateInputs(t *testing.T) {
	s := NewDragSession(1, DragModeMove, 0, 0, 0)

	// Must not divide by zero; any whole-pixel movement is a whole-day delta
	// in the degenerate single-column window.
	_, _, applied := s.Move(1, date(2024, time.January, 10), date(2024, time.January, 14))
	if !applied {
		t.Error("degenerate session should still translate movement")
	}
}

func TestParseDragMode(t *testing.T) {
	for _, valid := range []string{"move", "resize-start", "resize-end"} {
		if _, err := ParseDragMode(valid); err != nil {
			t.Errorf("ParseDragMode(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseDragMode("rotate"); err == nil {
		t.Error("ParseDragMode should reject unknown modes")
	}
}
