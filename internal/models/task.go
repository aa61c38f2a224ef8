package models

import (
	"time"
)

// Task statuses
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// Task priorities
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task represents a unit of work inside a project. Assignee is a display
// name, not a foreign key to User; team views match it by name.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"index;not null" json:"project_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:50;default:todo" json:"status"`      // todo, in-progress, review, done
	Priority    string     `gorm:"size:50;default:medium" json:"priority"`  // low, medium, high
	Assignee    string     `gorm:"size:200" json:"assignee"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	Progress    int        `gorm:"default:0" json:"progress"` // 0-100
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// Scheduled reports whether the task carries both dates needed for
// gantt/timeline placement.
func (t *Task) Scheduled() bool {
	return t.StartDate != nil && t.DueDate != nil
}
