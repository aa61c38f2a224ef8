package models

import (
	"time"
)

// User represents a team member. Tasks reference users by display name
// (Task.Assignee), not by id.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Role      string    `gorm:"size:100" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
