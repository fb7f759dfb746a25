package repository

import (
	"github.com/kairyu/kanban-board-api/internal/models"
)

// BoardRepository defines the interface for board data access
type BoardRepository interface {
	// Create creates a new board
	Create(board *models.Board) error

	// FindByID finds a board by ID
	FindByID(id uint64) (*models.Board, error)

	// FindAll retrieves every board
	FindAll() ([]models.Board, error)

	// FindByCreatedBy retrieves boards created by a specific user
	FindByCreatedBy(username string) ([]models.Board, error)

	// FindByIDs retrieves the boards matching the given ID set
	FindByIDs(ids []uint64) ([]models.Board, error)

	// Update updates a board
	Update(board *models.Board) error

	// Delete deletes a board
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	BoardID    *uint64
	AssignedTo *string
	CreatedBy  *string
	Archived   *bool
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// FindAll retrieves every notification, newest first
	FindAll() ([]models.Notification, error)

	// FindByTargetUser retrieves a user's notifications, newest first
	FindByTargetUser(username string) ([]models.Notification, error)

	// CountByTargetUserAndRead counts a user's notifications by read state
	CountByTargetUserAndRead(username string, read bool) (int64, error)

	// CountByRead counts notifications system-wide by read state
	CountByRead(read bool) (int64, error)

	// Update updates a notification
	Update(notification *models.Notification) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
