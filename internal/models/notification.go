package models

import "time"

type NotificationType string

const (
	NotificationBoardCreated NotificationType = "BOARD_CREATED"
	NotificationBoardUpdated NotificationType = "BOARD_UPDATED"
	NotificationBoardDeleted NotificationType = "BOARD_DELETED"
	NotificationTaskCreated  NotificationType = "TASK_CREATED"
	NotificationTaskUpdated  NotificationType = "TASK_UPDATED"
	NotificationTaskAssigned NotificationType = "TASK_ASSIGNED"
	NotificationTaskArchived NotificationType = "TASK_ARCHIVED"
	NotificationTaskRestored NotificationType = "TASK_RESTORED"
)

// Notification is a one-way, per-target alert generated as a side effect of
// a lifecycle mutation. It is created once and mutated only by flipping Read.
type Notification struct {
	ID          uint64           `gorm:"primarykey" json:"id"`
	Message     string           `gorm:"type:text;not null" json:"message"`
	Type        NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	TaskID      *uint64          `gorm:"index" json:"task_id"`
	TaskTitle   string           `gorm:"type:varchar(255)" json:"task_title,omitempty"`
	BoardID     *uint64          `json:"board_id"`
	BoardName   string           `gorm:"type:varchar(255)" json:"board_name,omitempty"`
	TargetUser  string           `gorm:"type:varchar(255);not null;index" json:"target_user"`
	TriggeredBy string           `gorm:"type:varchar(255);not null" json:"triggered_by"`
	Read        bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}
