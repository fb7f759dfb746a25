package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kairyu/kanban-board-api/internal/errors"
	"github.com/kairyu/kanban-board-api/internal/middleware"
	"github.com/kairyu/kanban-board-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the payload for creating or updating a task.
type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to"`
	BoardID     uint64 `json:"board_id" binding:"required"`
}

// ListTasks returns active tasks visible to the caller.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasks(identity)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListArchivedTasks returns archived tasks visible to the caller.
func (h *TaskHandler) ListArchivedTasks(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListArchivedTasks(identity)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch archived tasks")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// ListTasksByBoard returns a board's tasks visible to the caller.
func (h *TaskHandler) ListTasksByBoard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boardID, err := strconv.ParseUint(c.Param("boardId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	tasks, err := h.taskService.ListTasksByBoard(boardID, identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(id, identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task. Admin only.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		BoardID:     req.BoardID,
	}, identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a full-field task update.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		BoardID:     req.BoardID,
	}, identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus is the status-only update endpoint.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type StatusUpdateRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(id, req.Status, identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ArchiveTask soft-deletes a task. Admin only.
func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if _, err := h.taskService.ArchiveTask(id, identity); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task archived successfully",
	})
}

// RestoreTask brings an archived task back to the active listing.
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.RestoreTask(id, identity)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrTaskCreateForbidden),
		errors.Is(err, services.ErrTaskModifyForbidden),
		errors.Is(err, services.ErrTaskArchiveForbidden),
		errors.Is(err, services.ErrTaskFieldImmutable):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskBoardMissing),
		errors.Is(err, services.ErrTaskTitleRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
