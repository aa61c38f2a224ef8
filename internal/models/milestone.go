package models

import (
	"time"
)

// Milestone statuses
const (
	MilestoneStatusPending    = "Pending"
	MilestoneStatusInProgress = "In Progress"
	MilestoneStatusCompleted  = "Completed"
)

// Milestone priorities
const (
	MilestonePriorityLow    = "Low"
	MilestonePriorityMedium = "Medium"
	MilestonePriorityHigh   = "High"
)

// Milestone represents a dated checkpoint inside a project.
// CompletedAt is non-nil exactly when Status is Completed; the milestone
// service enforces the transition rules.
type Milestone struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"index;not null" json:"project_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	Status      string     `gorm:"size:50;default:Pending" json:"status"`  // Pending, In Progress, Completed
	Priority    string     `gorm:"size:50;default:Medium" json:"priority"` // Low, Medium, High
	Progress    int        `gorm:"default:0" json:"progress"`              // 0-100
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (Milestone) TableName() string { return "milestones" }

// Overdue reports whether the milestone is past due and not completed.
func (m *Milestone) Overdue(now time.Time) bool {
	return m.Status != MilestoneStatusCompleted && m.DueDate.Before(now)
}
