package models

import (
	"time"
)

// ActivityLog records entity mutations (create/update/delete) for the
// activity feed. Old entries are pruned by the retention scheduler.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Level     string    `gorm:"size:20;index" json:"level"`   // info, warning, error
	Entity    string    `gorm:"size:50;index" json:"entity"`  // project, task, milestone, user
	Action    string    `gorm:"size:50" json:"action"`        // create, update, delete, drag
	Message   string    `gorm:"size:500" json:"message"`
	Extra     string    `gorm:"type:text" json:"extra,omitempty"` // JSON payload
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
