package models

import (
	"time"
)

// Project statuses
const (
	ProjectStatusPlanning  = "Planning"
	ProjectStatusActive    = "Active"
	ProjectStatusOnHold    = "On Hold"
	ProjectStatusCompleted = "Completed"
)

// Project represents a project containing tasks and milestones
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:50;default:Planning" json:"status"` // Planning, Active, On Hold, Completed
	Progress    int       `gorm:"default:0" json:"progress"`              // 0-100, set independently of status
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Project) TableName() string { return "projects" }
