package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/kairyu/kanban-board-api/internal/constants"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// NotificationService generates, deduplicates and serves notifications.
//
// Routing is asymmetric: an admin action notifies the affected assignee (if
// any), while a user action always notifies the shared admin inbox. A party
// is never notified of its own action. Generation failures are logged and
// never abort the mutation that triggered them.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	boardRepo        repository.BoardRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, boardRepo repository.BoardRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		boardRepo:        boardRepo,
	}
}

// GetNotifications returns the notifications visible to the caller: admins
// see every notification, users only those targeted at them.
func (s *NotificationService) GetNotifications(identity models.Identity) ([]models.Notification, error) {
	if identity.IsAdmin() {
		return s.notificationRepo.FindAll()
	}
	return s.notificationRepo.FindByTargetUser(identity.Name)
}

// GetUnreadCount returns the unread notification count, following the same
// visibility split as GetNotifications.
func (s *NotificationService) GetUnreadCount(identity models.Identity) (int64, error) {
	if identity.IsAdmin() {
		return s.notificationRepo.CountByRead(false)
	}
	return s.notificationRepo.CountByTargetUserAndRead(identity.Name, false)
}

// MarkAsRead flips a notification to read. Admins can mark any notification,
// users only their own; a mismatched target is a silent no-op.
func (s *NotificationService) MarkAsRead(id uint64, identity models.Identity) error {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to find notification: %w", err)
	}

	if !identity.IsAdmin() && notification.TargetUser != identity.Name {
		return nil
	}
	if notification.Read {
		return nil
	}

	notification.Read = true
	if err := s.notificationRepo.Update(notification); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead flips every unread notification visible to the caller.
// Already-read records are left untouched.
func (s *NotificationService) MarkAllAsRead(identity models.Identity) error {
	notifications, err := s.GetNotifications(identity)
	if err != nil {
		return fmt.Errorf("failed to load notifications: %w", err)
	}

	for i := range notifications {
		if notifications[i].Read {
			continue
		}
		notifications[i].Read = true
		if err := s.notificationRepo.Update(&notifications[i]); err != nil {
			return fmt.Errorf("failed to mark notification as read: %w", err)
		}
	}
	return nil
}

// BoardCreated fires when a board is created. Admin-triggered board events
// are silent; a user-created board notifies the admin inbox.
func (s *NotificationService) BoardCreated(board *models.Board, actor models.Identity) error {
	if actor.Role != models.RoleUser {
		return nil
	}
	message := fmt.Sprintf("New board '%s' created by %s", board.Name, actor.Name)
	return s.notifyAdmins(models.NotificationBoardCreated, message, board, actor)
}

// BoardUpdated fires when a board is updated.
func (s *NotificationService) BoardUpdated(board *models.Board, actor models.Identity) error {
	if actor.Role != models.RoleUser {
		return nil
	}
	message := fmt.Sprintf("Board '%s' has been updated by %s", board.Name, actor.Name)
	return s.notifyAdmins(models.NotificationBoardUpdated, message, board, actor)
}

// BoardDeleted fires when a board is deleted. board is the pre-delete snapshot.
func (s *NotificationService) BoardDeleted(board *models.Board, actor models.Identity) error {
	if actor.Role != models.RoleUser {
		return nil
	}
	message := fmt.Sprintf("Board '%s' has been deleted by %s", board.Name, actor.Name)
	return s.notifyAdmins(models.NotificationBoardDeleted, message, board, actor)
}

// TaskCreated fires when a task is created. An admin-created task notifies
// the assignee that the task was assigned to them; a user-created task would
// notify the admin inbox.
func (s *NotificationService) TaskCreated(task *models.Task, actor models.Identity) error {
	boardName := s.boardName(task.BoardID)

	if actor.IsAdmin() {
		message := fmt.Sprintf("Task '%s' has been assigned to you in board '%s'", task.Title, boardName)
		return s.notifyAssignee(models.NotificationTaskAssigned, message, task, boardName, actor)
	}

	message := fmt.Sprintf("New task '%s' created by %s in board '%s'", task.Title, actor.Name, boardName)
	return s.notifyAdminsForTask(models.NotificationTaskCreated, message, task, boardName, actor)
}

// TaskUpdated fires when a task's fields or status change.
func (s *NotificationService) TaskUpdated(task *models.Task, actor models.Identity) error {
	boardName := s.boardName(task.BoardID)

	if actor.IsAdmin() {
		message := fmt.Sprintf("Task '%s' assigned to you has been updated in board '%s' to '%s'", task.Title, boardName, task.Status)
		return s.notifyAssignee(models.NotificationTaskUpdated, message, task, boardName, actor)
	}

	message := fmt.Sprintf("Task '%s' updated by %s in board '%s' to '%s'", task.Title, actor.Name, boardName, task.Status)
	return s.notifyAdminsForTask(models.NotificationTaskUpdated, message, task, boardName, actor)
}

// TaskAssigned fires when an update changes the assignee. It replaces the
// TaskUpdated event for that mutation.
func (s *NotificationService) TaskAssigned(task *models.Task, actor models.Identity) error {
	boardName := s.boardName(task.BoardID)

	if actor.IsAdmin() {
		message := fmt.Sprintf("Task '%s' has been assigned to you in board '%s' to '%s'", task.Title, boardName, task.Status)
		return s.notifyAssignee(models.NotificationTaskAssigned, message, task, boardName, actor)
	}

	message := fmt.Sprintf("Task '%s' assigned to %s by %s in board '%s' to '%s'", task.Title, task.AssignedTo, actor.Name, boardName, task.Status)
	return s.notifyAdminsForTask(models.NotificationTaskAssigned, message, task, boardName, actor)
}

// TaskArchived fires when a task is soft-deleted.
func (s *NotificationService) TaskArchived(task *models.Task, actor models.Identity) error {
	boardName := s.boardName(task.BoardID)

	if actor.IsAdmin() {
		message := fmt.Sprintf("Task '%s' assigned to you has been archived in board '%s'", task.Title, boardName)
		return s.notifyAssignee(models.NotificationTaskArchived, message, task, boardName, actor)
	}

	message := fmt.Sprintf("Task '%s' archived by %s in board '%s'", task.Title, actor.Name, boardName)
	return s.notifyAdminsForTask(models.NotificationTaskArchived, message, task, boardName, actor)
}

// TaskRestored fires when an archived task is restored.
func (s *NotificationService) TaskRestored(task *models.Task, actor models.Identity) error {
	boardName := s.boardName(task.BoardID)

	if actor.IsAdmin() {
		message := fmt.Sprintf("Task '%s' assigned to you has been restored in board '%s'", task.Title, boardName)
		return s.notifyAssignee(models.NotificationTaskRestored, message, task, boardName, actor)
	}

	message := fmt.Sprintf("Task '%s' restored by %s in board '%s'", task.Title, actor.Name, boardName)
	return s.notifyAdminsForTask(models.NotificationTaskRestored, message, task, boardName, actor)
}

// boardName resolves a board's display name, degrading to a placeholder when
// the board cannot be loaded. A notification must never fail the mutation
// that triggered it over an unresolvable board.
func (s *NotificationService) boardName(boardID uint64) string {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		return constants.UnknownBoardName
	}
	return board.Name
}

// notifyAssignee targets a task's assignee for an admin-triggered event.
// Nothing is sent when the task is unassigned, assigned to the acting admin,
// or assigned to the broadcast inbox itself.
func (s *NotificationService) notifyAssignee(typ models.NotificationType, message string, task *models.Task, boardName string, actor models.Identity) error {
	if task.AssignedTo == "" ||
		task.AssignedTo == actor.Name ||
		task.AssignedTo == constants.BroadcastAdminTarget {
		return nil
	}

	taskID := task.ID
	boardID := task.BoardID
	return s.saveUnlessDuplicate(&models.Notification{
		Message:     message,
		Type:        typ,
		TaskID:      &taskID,
		TaskTitle:   task.Title,
		BoardID:     &boardID,
		BoardName:   boardName,
		TargetUser:  task.AssignedTo,
		TriggeredBy: actor.Name,
	})
}

// notifyAdminsForTask targets the shared admin inbox for a user-triggered task event.
func (s *NotificationService) notifyAdminsForTask(typ models.NotificationType, message string, task *models.Task, boardName string, actor models.Identity) error {
	taskID := task.ID
	boardID := task.BoardID
	return s.saveUnlessDuplicate(&models.Notification{
		Message:     message,
		Type:        typ,
		TaskID:      &taskID,
		TaskTitle:   task.Title,
		BoardID:     &boardID,
		BoardName:   boardName,
		TargetUser:  constants.BroadcastAdminTarget,
		TriggeredBy: actor.Name,
	})
}

// notifyAdmins targets the shared admin inbox for a user-triggered board event.
func (s *NotificationService) notifyAdmins(typ models.NotificationType, message string, board *models.Board, actor models.Identity) error {
	boardID := board.ID
	return s.saveUnlessDuplicate(&models.Notification{
		Message:     message,
		Type:        typ,
		BoardID:     &boardID,
		BoardName:   board.Name,
		TargetUser:  constants.BroadcastAdminTarget,
		TriggeredBy: actor.Name,
	})
}

// saveUnlessDuplicate persists a notification unless the target already has
// an unread one with the same type, task reference and message. This guards
// against one logical action firing twice through overlapping paths; it is a
// read-then-write check, not a transactional guarantee, so two concurrent
// identical triggers can still both land.
func (s *NotificationService) saveUnlessDuplicate(notification *models.Notification) error {
	existing, err := s.notificationRepo.FindByTargetUser(notification.TargetUser)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate notifications: %w", err)
	}

	for _, n := range existing {
		if n.Read || n.Type != notification.Type || n.Message != notification.Message {
			continue
		}
		if sameTaskRef(n.TaskID, notification.TaskID) {
			log.Printf("Skipped duplicate notification for %s: %s", notification.TargetUser, notification.Message)
			return nil
		}
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// sameTaskRef treats two unset task references as equal.
func sameTaskRef(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
