package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kairyu/kanban-board-api/internal/access"
	"github.com/kairyu/kanban-board-api/internal/constants"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskCreateForbidden  = errors.New("only admins can create tasks")
	ErrTaskModifyForbidden  = errors.New("user does not have permission to modify this task")
	ErrTaskArchiveForbidden = errors.New("only admins can archive tasks")
	ErrTaskFieldImmutable   = errors.New("only the task status can be changed")
	ErrTaskBoardMissing     = errors.New("task references a board that does not exist")
	ErrTaskTitleRequired    = errors.New("title is required")
)

// TaskService handles the task lifecycle: create, update, status-only
// update, archive and restore, each gated by the access predicates.
type TaskService struct {
	taskRepo      repository.TaskRepository
	boardRepo     repository.BoardRepository
	notifications *NotificationService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, boardRepo repository.BoardRepository, notifications *NotificationService) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		boardRepo:     boardRepo,
		notifications: notifications,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  string
	BoardID     uint64
}

// UpdateTaskInput represents a full-field task update request. Every field
// is compared against the stored record for restricted callers.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	AssignedTo  string
	BoardID     uint64
}

// ListTasks returns active tasks: all of them for admins, only assigned
// tasks for restricted callers.
func (s *TaskService) ListTasks(identity models.Identity) ([]models.Task, error) {
	archived := false
	filter := repository.TaskFilter{Archived: &archived}
	if !identity.IsAdmin() {
		filter.AssignedTo = &identity.Name
	}
	return s.taskRepo.List(filter)
}

// ListArchivedTasks returns archived tasks under the same visibility split.
func (s *TaskService) ListArchivedTasks(identity models.Identity) ([]models.Task, error) {
	archived := true
	filter := repository.TaskFilter{Archived: &archived}
	if !identity.IsAdmin() {
		filter.AssignedTo = &identity.Name
	}
	return s.taskRepo.List(filter)
}

// ListTasksByBoard returns a board's active tasks. Admins and the board
// creator see every task on the board; other callers see only tasks on that
// board assigned to them.
func (s *TaskService) ListTasksByBoard(boardID uint64, identity models.Identity) ([]models.Task, error) {
	board, err := s.boardRepo.FindByID(boardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	archived := false
	filter := repository.TaskFilter{BoardID: &boardID, Archived: &archived}
	if !identity.IsAdmin() && board.CreatedBy != identity.Name {
		filter.AssignedTo = &identity.Name
	}
	return s.taskRepo.List(filter)
}

// GetTask returns a task if the caller may read it. Access denial is
// reported as not-found so task existence is never leaked.
func (s *TaskService) GetTask(id uint64, identity models.Identity) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	board, err := s.boardRepo.FindByID(task.BoardID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if !access.CanAccessTask(task, board, identity) {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// CreateTask creates a task. Only admins may create tasks; the referenced
// board must exist, and the creator is always the caller.
func (s *TaskService) CreateTask(input CreateTaskInput, identity models.Identity) (*models.Task, error) {
	if !access.CanCreateTask(identity) {
		return nil, ErrTaskCreateForbidden
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	if _, err := s.boardRepo.FindByID(input.BoardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskBoardMissing
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if input.Status == "" {
		input.Status = constants.DefaultTaskStatus
	}
	if input.Priority == "" {
		input.Priority = constants.DefaultTaskPriority
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   identity.Name,
		BoardID:     input.BoardID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if err := s.notifications.TaskCreated(task, identity); err != nil {
		log.Printf("Failed to create task notification: %v", err)
	}

	return task, nil
}

// UpdateTask applies a full-field update. Admins may change any field except
// the creator, which is always preserved from the stored record. Restricted
// callers are accepted only when every field other than status matches the
// stored value exactly; they go through the shared status primitive.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput, identity models.Identity) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !access.CanModifyTask(task, identity) {
		return nil, ErrTaskModifyForbidden
	}

	if !identity.IsAdmin() {
		if input.Title != task.Title ||
			input.Description != task.Description ||
			input.Priority != task.Priority ||
			input.AssignedTo != task.AssignedTo ||
			input.BoardID != task.BoardID {
			return nil, ErrTaskFieldImmutable
		}
		return s.applyStatus(task, input.Status, identity)
	}

	assignmentChanged := task.AssignedTo != input.AssignedTo

	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.AssignedTo = input.AssignedTo

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	if assignmentChanged && task.AssignedTo != "" {
		if err := s.notifications.TaskAssigned(task, identity); err != nil {
			log.Printf("Failed to create task notification: %v", err)
		}
	} else {
		if err := s.notifications.TaskUpdated(task, identity); err != nil {
			log.Printf("Failed to create task notification: %v", err)
		}
	}

	return task, nil
}

// UpdateTaskStatus is the dedicated status-only entry point. It reaches the
// same primitive as a restricted caller's generic update.
func (s *TaskService) UpdateTaskStatus(id uint64, status string, identity models.Identity) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !access.CanModifyTask(task, identity) {
		return nil, ErrTaskModifyForbidden
	}

	return s.applyStatus(task, status, identity)
}

// applyStatus is the shared status-transition primitive. Both status-only
// entry points funnel through here so the notification side effect is
// identical regardless of route.
func (s *TaskService) applyStatus(task *models.Task, status string, identity models.Identity) (*models.Task, error) {
	task.Status = status
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	if err := s.notifications.TaskUpdated(task, identity); err != nil {
		log.Printf("Failed to create task notification: %v", err)
	}

	return task, nil
}

// ArchiveTask soft-deletes a task: the record is retained with the archived
// flag set. Admin only.
func (s *TaskService) ArchiveTask(id uint64, identity models.Identity) (*models.Task, error) {
	if !identity.IsAdmin() {
		return nil, ErrTaskArchiveForbidden
	}

	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Archived = true
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to archive task: %w", err)
	}

	if err := s.notifications.TaskArchived(task, identity); err != nil {
		log.Printf("Failed to create task notification: %v", err)
	}

	return task, nil
}

// RestoreTask clears a task's archived flag. Restore is intentionally
// lenient: any authenticated caller may restore, matching the archive
// design's reversibility.
func (s *TaskService) RestoreTask(id uint64, identity models.Identity) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Archived = false
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to restore task: %w", err)
	}

	if err := s.notifications.TaskRestored(task, identity); err != nil {
		log.Printf("Failed to create task notification: %v", err)
	}

	return task, nil
}

// AccessibleBoards returns every board for admins; for users, the boards
// referenced by tasks assigned to them. This is a wider rule than board
// ownership and is exposed separately from ListBoards.
func (s *TaskService) AccessibleBoards(identity models.Identity) ([]models.Board, error) {
	if identity.IsAdmin() {
		return s.boardRepo.FindAll()
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{AssignedTo: &identity.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned tasks: %w", err)
	}

	seen := make(map[uint64]struct{}, len(tasks))
	boardIDs := make([]uint64, 0, len(tasks))
	for _, task := range tasks {
		if _, ok := seen[task.BoardID]; ok {
			continue
		}
		seen[task.BoardID] = struct{}{}
		boardIDs = append(boardIDs, task.BoardID)
	}

	return s.boardRepo.FindByIDs(boardIDs)
}
