package models

import (
	"time"

	"gorm.io/gorm"
)

// Task belongs to exactly one board. AssignedTo is the assignee's username;
// empty means unassigned. Archived is a soft delete: the record is kept and
// excluded from default listings, reversible via restore.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(50);not null" json:"status"`
	Priority    string         `gorm:"type:varchar(20);not null" json:"priority"`
	AssignedTo  string         `gorm:"type:varchar(255);index" json:"assigned_to"`
	CreatedBy   string         `gorm:"type:varchar(255);not null" json:"created_by"`
	BoardID     uint64         `gorm:"not null;index" json:"board_id"`
	Archived    bool           `gorm:"not null;default:false;index" json:"archived"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
