package timeline

import (
	"testing"
	"time"

	"github.com/huangang/taskflow/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestResolveRange_BuffersAroundTaskDates(t *testing.T) {
	tasks := []models.Task{
		{StartDate: datePtr(2024, time.January, 10), DueDate: datePtr(2024, time.January, 20)},
	}

	w := ResolveRange(tasks, nil, date(2024, time.February, 1))

	wantStart := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.January, 27, 23, 59, 59, 0, time.UTC)

	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, expected %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("End = %v, expected %v", w.End, wantEnd)
	}
}

func TestResolveRange_IncludesProjectBounds(t *testing.T) {
	tasks := []models.Task{
		{StartDate: datePtr(2024, time.March, 10), DueDate: datePtr(2024, time.March, 12)},
	}
	project := &models.Project{
		StartDate: date(2024, time.March, 1),
		EndDate:   date(2024, time.March, 31),
	}

	w := ResolveRange(tasks, project, date(2024, time.March, 15))

	if !w.Start.Equal(time.Date(2024, time.February, 23, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v, project start date should widen the window", w.Start)
	}
	if !w.End.Equal(time.Date(2024, time.April, 7, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("End = %v, project end date should widen the window", w.End)
	}
}

func TestResolveRange_DefaultsToThirtyDays(t *testing.T) {
	now := date(2024, time.June, 1)

	w := ResolveRange(nil, nil, now)

	if !w.Start.Equal(now) {
		t.Errorf("Start = %v, expected %v", w.Start, now)
	}
	if !w.End.Equal(now.AddDate(0, 0, 30)) {
		t.Errorf("End = %v, expected %v", w.End, now.AddDate(0, 0, 30))
	}
}

func TestResolveRange_TasksWithoutDatesIgnored(t *testing.T) {
	tasks := []models.Task{
		{Title: "unscheduled"},
		{StartDate: datePtr(2024, time.May, 5), DueDate: datePtr(2024, time.May, 8)},
	}

	w := ResolveRange(tasks, nil, date(2024, time.May, 1))

	if !w.Start.Equal(time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %v, unscheduled tasks should not affect the window", w.Start)
	}
}

func TestResolveRange_SingleDatedItem(t *testing.T) {
	// One date produces buffer + same-day span + buffer: 14 whole days.
	tasks := []models.Task{
		{StartDate: datePtr(2024, time.July, 15), DueDate: datePtr(2024, time.July, 15)},
	}

	w := ResolveRange(tasks, nil, date(2024, time.July, 1))

	if got := w.TotalDays(); got != 14 {
		t.Errorf("TotalDays = %d, expected 14", got)
	}
}

func TestViewWindow_Month(t *testing.T) {
	w := ViewWindow(date(2024, time.February, 14), "month")

	if !w.Start.Equal(date(2024, time.February, 1)) {
		t.Errorf("Start = %v, expected Feb 1", w.Start)
	}
	if !w.End.Equal(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("End = %v, expected Feb 29 end of day", w.End)
	}
}

func TestViewWindow_Week(t *testing.T) {
	// 2024-01-10 is a Wednesday; the containing week starts Sunday Jan 7.
	w := ViewWindow(date(2024, time.January, 10), "week")

	if !w.Start.Equal(date(2024, time.January, 7)) {
		t.Errorf("Start = %v, expected Sun Jan 7", w.Start)
	}
	if !w.End.Equal(time.Date(2024, time.January, 13, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("End = %v, expected Sat Jan 13 end of day", w.End)
	}
}

func TestViewWindow_Quarter(t *testing.T) {
	w := ViewWindow(date(2024, time.May, 20), "quarter")

	if !w.Start.Equal(date(2024, time.April, 1)) {
		t.Errorf("Start = %v, expected Apr 1", w.Start)
	}
	if !w.End.Equal(time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("End = %v, expected Jun 30 end of day", w.End)
	}
}
