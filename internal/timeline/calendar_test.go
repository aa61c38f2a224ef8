package timeline

import (
	"testing"
	"time"

	"github.com/huangang/taskflow/internal/models"
)

func TestMonthBuckets_GroupsByDueDate(t *testing.T) {
	month := date(2024, time.January, 1)
	tasks := []models.Task{
		{ID: 1, Title: "a", DueDate: datePtr(2024, time.January, 10)},
		{ID: 2, Title: "b", DueDate: datePtr(2024, time.January, 10)},
		{ID: 3, Title: "c", DueDate: datePtr(2024, time.January, 12)},
		{ID: 4, Title: "outside", DueDate: datePtr(2024, time.February, 2)},
		{ID: 5, Title: "undated"},
	}

	buckets := MonthBuckets(month, tasks, nil)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if got := buckets["2024-01-10"].Total; got != 2 {
		t.Errorf("Jan 10 total = %d, expected 2", got)
	}
	if buckets["2024-02-02"] != nil {
		t.Error("due dates outside the month must not produce buckets")
	}
}

func TestMonthBuckets_MixesProjectsAfterTasks(t *testing.T) {
	month := date(2024, time.January, 1)
	tasks := []models.Task{
		{ID: 1, Title: "task", DueDate: datePtr(2024, time.January, 20)},
	}
	projects := []models.Project{
		{ID: 7, Name: "launch", EndDate: date(2024, time.January, 20)},
	}

	buckets := MonthBuckets(month, tasks, projects)

	b := buckets["2024-01-20"]
	if b == nil || len(b.Items) != 2 {
		t.Fatalf("expected a mixed bucket with 2 items, got %+v", b)
	}
	if b.Items[0].Type != "task" || b.Items[1].Type != "project" {
		t.Errorf("insertion order not preserved: %v, %v", b.Items[0].Type, b.Items[1].Type)
	}
}

func TestMonthBuckets_TruncatesAfterThree(t *testing.T) {
	month := date(2024, time.January, 1)
	var tasks []models.Task
	for i := 1; i <= 5; i++ {
		tasks = append(tasks, models.Task{
			ID:      uint(i),
			Title:   "t",
			DueDate: datePtr(2024, time.January, 15),
		})
	}

	buckets := MonthBuckets(month, tasks, nil)

	b := buckets["2024-01-15"]
	if len(b.Items) != 3 {
		t.Errorf("visible items = %d, expected 3", len(b.Items))
	}
	if b.Overflow != 2 {
		t.Errorf("overflow = %d, expected 2", b.Overflow)
	}
	if b.Total != 5 {
		t.Errorf("total = %d, expected 5", b.Total)
	}
}
