package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/huangang/taskflow/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestPosition_BasicSpan(t *testing.T) {
	// 30-day window Jan 1 - Jan 31; task Jan 10 - Jan 14 (5 days inclusive).
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}

	left, width := Position(date(2024, time.January, 10), date(2024, time.January, 14), w)

	if !almostEqual(left, 30) {
		t.Errorf("left = %f, expected 30", left)
	}
	if !almostEqual(width, 16.67) {
		t.Errorf("width = %f, expected 16.67", width)
	}
}

func TestPosition_ClampsLeftAtZero(t *testing.T) {
	w := Window{Start: date(2024, time.January, 10), End: date(2024, time.January, 31)}

	left, _ := Position(date(2024, time.January, 5), date(2024, time.January, 12), w)

	if left != 0 {
		t.Errorf("left = %f, spans starting before the window should clamp to 0", left)
	}
}

func TestPosition_SameDayKeepsMinimumWidth(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.June, 1)}

	_, width := Position(date(2024, time.March, 1), date(2024, time.March, 1), w)

	if width < 1 {
		t.Errorf("width = %f, same-day spans must keep the 1%% floor", width)
	}
}

func TestPosition_WidthCappedAtRightEdge(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}

	left, width := Position(date(2024, time.January, 25), date(2024, time.February, 20), w)

	if left+width > 100.0001 {
		t.Errorf("left+width = %f, bar must not extend past the window", left+width)
	}
}

func TestPosition_DegenerateWindow(t *testing.T) {
	d := date(2024, time.January, 1)
	w := Window{Start: d, End: d}

	left, width := Position(d, d, w)

	if math.IsNaN(left) || math.IsNaN(width) || math.IsInf(left, 0) || math.IsInf(width, 0) {
		t.Fatalf("degenerate window produced left=%f width=%f", left, width)
	}
}

func TestTodayMarker(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}

	pos, visible := TodayMarker(date(2024, time.January, 16), w)
	if !visible {
		t.Fatal("marker inside the window should be visible")
	}
	if !almostEqual(pos, 50) {
		t.Errorf("pos = %f, expected 50", pos)
	}

	_, visible = TodayMarker(date(2024, time.March, 1), w)
	if visible {
		t.Error("marker after the window should not be visible")
	}

	_, visible = TodayMarker(date(2023, time.December, 1), w)
	if visible {
		t.Error("marker before the window should not be visible")
	}
}

func TestTaskBar_UnscheduledExcluded(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}

	_, ok := TaskBar(&models.Task{Title: "no dates"}, w)
	if ok {
		t.Error("tasks without both dates must be excluded from positioning")
	}

	_, ok = TaskBar(&models.Task{StartDate: datePtr(2024, time.January, 5)}, w)
	if ok {
		t.Error("a start date alone is not enough to position a task")
	}
}

func TestTaskBar_Duration(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}

	bar, ok := TaskBar(&models.Task{
		StartDate: datePtr(2024, time.January, 10),
		DueDate:   datePtr(2024, time.January, 14),
	}, w)
	if !ok {
		t.Fatal("scheduled task should be positioned")
	}
	if bar.Duration != 5 {
		t.Errorf("Duration = %d, expected 5 (inclusive of both endpoints)", bar.Duration)
	}
}

func TestGroupByAssignee_Stacking(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}
	tasks := []models.Task{
		{ID: 1, Assignee: "Sarah Chen", StartDate: datePtr(2024, time.January, 2), DueDate: datePtr(2024, time.January, 5)},
		{ID: 2, Assignee: "Sarah Chen", StartDate: datePtr(2024, time.January, 4), DueDate: datePtr(2024, time.January, 9)},
		{ID: 3, Assignee: "Mike Rodriguez", StartDate: datePtr(2024, time.January, 3), DueDate: datePtr(2024, time.January, 6)},
		{ID: 4, Title: "unscheduled", Assignee: "Sarah Chen"},
	}

	groups := GroupByAssignee(tasks, w)

	sarah := groups["Sarah Chen"]
	if len(sarah) != 2 {
		t.Fatalf("expected 2 positioned tasks for Sarah Chen, got %d", len(sarah))
	}
	if sarah[0].Top != 8 || sarah[0].ZIndex != 10 {
		t.Errorf("first item top/z = %d/%d, expected 8/10", sarah[0].Top, sarah[0].ZIndex)
	}
	if sarah[1].Top != 28 || sarah[1].ZIndex != 9 {
		t.Errorf("second item top/z = %d/%d, expected 28/9", sarah[1].Top, sarah[1].ZIndex)
	}

	if len(groups["Mike Rodriguez"]) != 1 {
		t.Errorf("expected 1 positioned task for Mike Rodriguez")
	}
}

func TestGroupByAssignee_EmptyAssigneeLane(t *testing.T) {
	w := Window{Start: date(2024, time.January, 1), End: date(2024, time.January, 31)}
	tasks := []models.Task{
		{ID: 1, StartDate: datePtr(2024, time.January, 2), DueDate: datePtr(2024, time.January, 5)},
	}

	groups := GroupByAssignee(tasks, w)

	if len(groups[laneUnassigned]) != 1 {
		t.Errorf("tasks without an assignee should land in the %q lane", laneUnassigned)
	}
}
