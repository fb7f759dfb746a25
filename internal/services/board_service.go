package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/kairyu/kanban-board-api/internal/access"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBoardNotFound        = errors.New("board not found")
	ErrBoardAccessDenied    = errors.New("user does not have access to this board")
	ErrBoardModifyForbidden = errors.New("only the board creator or an admin can modify this board")
	ErrBoardNameRequired    = errors.New("board name is required")
)

// BoardService handles board lifecycle and queries.
type BoardService struct {
	boardRepo     repository.BoardRepository
	notifications *NotificationService
}

// NewBoardService creates a new BoardService
func NewBoardService(boardRepo repository.BoardRepository, notifications *NotificationService) *BoardService {
	return &BoardService{
		boardRepo:     boardRepo,
		notifications: notifications,
	}
}

// CreateBoardInput represents input for creating a board
type CreateBoardInput struct {
	Name        string
	Description string
	Columns     []string
}

// UpdateBoardInput represents input for updating a board
type UpdateBoardInput struct {
	Name        string
	Description string
	Columns     []string
}

// ListBoards returns all boards for admins, or the boards the caller created.
func (s *BoardService) ListBoards(identity models.Identity) ([]models.Board, error) {
	if identity.IsAdmin() {
		return s.boardRepo.FindAll()
	}
	return s.boardRepo.FindByCreatedBy(identity.Name)
}

// GetBoard returns a board if the caller may read it. Access denial is
// reported as not-found so board existence is never leaked.
func (s *BoardService) GetBoard(id uint64, identity models.Identity) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if !access.CanAccessBoard(board, identity) {
		return nil, ErrBoardNotFound
	}
	return board, nil
}

// CreateBoard creates a board owned by the caller. Columns default to the
// standard three-column workflow when omitted.
func (s *BoardService) CreateBoard(input CreateBoardInput, identity models.Identity) (*models.Board, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrBoardNameRequired
	}

	columns := input.Columns
	if len(columns) == 0 {
		columns = append([]string(nil), models.DefaultBoardColumns...)
	}

	board := &models.Board{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   identity.Name,
		Columns:     columns,
	}

	if err := s.boardRepo.Create(board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	if err := s.notifications.BoardCreated(board, identity); err != nil {
		log.Printf("Failed to create board notification: %v", err)
	}

	return board, nil
}

// UpdateBoard updates a board's name, description and columns. Nil columns
// leave the stored columns unchanged.
func (s *BoardService) UpdateBoard(id uint64, input UpdateBoardInput, identity models.Identity) (*models.Board, error) {
	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to find board: %w", err)
	}

	if !access.CanModifyBoard(board, identity) {
		return nil, ErrBoardModifyForbidden
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrBoardNameRequired
	}

	board.Name = input.Name
	board.Description = input.Description
	if input.Columns != nil {
		board.Columns = input.Columns
	}

	if err := s.boardRepo.Update(board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}

	if err := s.notifications.BoardUpdated(board, identity); err != nil {
		log.Printf("Failed to create board notification: %v", err)
	}

	return board, nil
}

// DeleteBoard deletes a board. Unlike tasks, boards are removed outright.
func (s *BoardService) DeleteBoard(id uint64, identity models.Identity) error {
	board, err := s.boardRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return fmt.Errorf("failed to find board: %w", err)
	}

	if !access.CanModifyBoard(board, identity) {
		return ErrBoardModifyForbidden
	}

	if err := s.boardRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	if err := s.notifications.BoardDeleted(board, identity); err != nil {
		log.Printf("Failed to create board notification: %v", err)
	}

	return nil
}
