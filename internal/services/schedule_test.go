package services

import (
	"testing"
	"time"

	"github.com/huangang/taskflow/internal/models"
	"gorm.io/gorm"
)

func scheduleFixture(t *testing.T) (*ScheduleService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)

	project := models.Project{
		Name:      "Launch",
		Status:    models.ProjectStatusActive,
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("create project: %v", err)
	}

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	scheduled := models.Task{ProjectID: project.ID, Title: "Scheduled",
		Assignee: "Sarah Chen", StartDate: &start, DueDate: &due}
	bare := models.Task{ProjectID: project.ID, Title: "Backlog idea"}
	if err := db.Create(&scheduled).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := db.Create(&bare).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	return NewScheduleService(db), db
}

func TestScheduleService_Gantt(t *testing.T) {
	svc, _ := scheduleFixture(t)

	resp, err := svc.Gantt(1)
	if err != nil {
		t.Fatalf("Gantt() error = %v", err)
	}

	if resp.Window.TotalDays != 44 {
		t.Errorf("TotalDays = %d, expected 44 (span plus 7-day buffers)", resp.Window.TotalDays)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("got %d rows, expected 1 positioned task", len(resp.Rows))
	}
	if resp.Rows[0].Bar.Duration != 5 {
		t.Errorf("Duration = %d, expected 5 (inclusive span)", resp.Rows[0].Bar.Duration)
	}
	if len(resp.Unscheduled) != 1 || resp.Unscheduled[0].Title != "Backlog idea" {
		t.Errorf("Unscheduled = %+v, expected the dateless task", resp.Unscheduled)
	}
	if resp.ProjectBar.Duration != 31 {
		t.Errorf("ProjectBar.Duration = %d, expected 31", resp.ProjectBar.Duration)
	}
}

func TestScheduleService_Gantt_AbsentProject(t *testing.T) {
	svc, _ := scheduleFixture(t)

	_, err := svc.Gantt(99)
	if _, ok := err.(*NotFoundError); !ok {
		t.Fatalf("Gantt() error = %v, expected NotFoundError", err)
	}
}

func TestScheduleService_Timeline(t *testing.T) {
	svc, db := scheduleFixture(t)

	if err := db.Create(&models.User{Name: "Sarah Chen", Role: "Engineer"}).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	start := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	drifter := models.Task{ProjectID: 1, Title: "Floating", StartDate: &start, DueDate: &due}
	if err := db.Create(&drifter).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	focus := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Timeline(focus, "month", 0)
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}

	if len(resp.Lanes) != 2 {
		t.Fatalf("got %d lanes, expected Sarah Chen and Unassigned", len(resp.Lanes))
	}
	if resp.Lanes[0].Assignee != "Sarah Chen" {
		t.Errorf("first lane = %q, roster members come first", resp.Lanes[0].Assignee)
	}
	if resp.Lanes[1].Assignee != "Unassigned" {
		t.Errorf("last lane = %q, expected Unassigned", resp.Lanes[1].Assignee)
	}

	item := resp.Lanes[0].Items[0]
	if item.Top != 8 || item.ZIndex != 10 {
		t.Errorf("first item stacking = (%d, %d), expected (8, 10)", item.Top, item.ZIndex)
	}
}

func TestScheduleService_Calendar(t *testing.T) {
	svc, _ := scheduleFixture(t)

	resp, err := svc.Calendar(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}
	if resp.Month != "2026-03" {
		t.Errorf("Month = %q, expected 2026-03", resp.Month)
	}

	due, ok := resp.Buckets["2026-03-14"]
	if !ok {
		t.Fatal("task due date should have a bucket")
	}
	if len(due.Items) != 1 || due.Items[0].Type != "task" {
		t.Errorf("due bucket = %+v", due)
	}

	end, ok := resp.Buckets["2026-03-31"]
	if !ok {
		t.Fatal("project end date should have a bucket")
	}
	if end.Items[0].Type != "project" {
		t.Errorf("end bucket item type = %q, expected project", end.Items[0].Type)
	}
}
