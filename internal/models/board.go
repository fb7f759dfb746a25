package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultBoardColumns is applied when a board is created without columns.
var DefaultBoardColumns = []string{"To Do", "In Progress", "Done"}

type Board struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedBy   string         `gorm:"type:varchar(255);not null;index" json:"created_by"`
	Columns     []string       `gorm:"serializer:json" json:"columns"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
