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

// BoardHandler coordinates board-related HTTP handlers.
type BoardHandler struct {
	boardService *services.BoardService
	taskService  *services.TaskService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *services.BoardService, taskService *services.TaskService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		taskService:  taskService,
	}
}

// BoardRequest is the payload for creating or updating a board.
type BoardRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Columns     []string `json:"columns"`
}

// ListBoards returns every board for admins, or the caller's own boards.
func (h *BoardHandler) ListBoards(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boards, err := h.boardService.ListBoards(identity)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch boards")
		return
	}

	c.JSON(http.StatusOK, boards)
}

// ListAccessibleBoards returns the boards the caller can work in, including
// boards where they only hold assigned tasks.
func (h *BoardHandler) ListAccessibleBoards(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	boards, err := h.taskService.AccessibleBoards(identity)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch boards")
		return
	}

	c.JSON(http.StatusOK, boards)
}

// GetBoard returns a single board.
func (h *BoardHandler) GetBoard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	board, err := h.boardService.GetBoard(id, identity)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// CreateBoard creates a new board owned by the caller.
func (h *BoardHandler) CreateBoard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.CreateBoard(services.CreateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Columns:     req.Columns,
	}, identity)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, board)
}

// UpdateBoard updates a board's name, description and columns.
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	board, err := h.boardService.UpdateBoard(id, services.UpdateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Columns:     req.Columns,
	}, identity)
	if err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// DeleteBoard deletes a board.
func (h *BoardHandler) DeleteBoard(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid board ID")
		return
	}

	if err := h.boardService.DeleteBoard(id, identity); err != nil {
		respondBoardError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Board deleted successfully",
	})
}

func respondBoardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBoardNotFound):
		apierrors.NotFound(c, "Board not found")
	case errors.Is(err, services.ErrBoardModifyForbidden):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrBoardNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

func parseIDParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
