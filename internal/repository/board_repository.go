package repository

import (
	"github.com/kairyu/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormBoardRepository is a GORM implementation of BoardRepository
type GormBoardRepository struct {
	db *gorm.DB
}

// NewBoardRepository creates a new BoardRepository
func NewBoardRepository(db *gorm.DB) BoardRepository {
	return &GormBoardRepository{db: db}
}

// Create creates a new board
func (r *GormBoardRepository) Create(board *models.Board) error {
	return r.db.Create(board).Error
}

// FindByID finds a board by ID
func (r *GormBoardRepository) FindByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// FindAll retrieves every board
func (r *GormBoardRepository) FindAll() ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Order("created_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByCreatedBy retrieves boards created by a specific user
func (r *GormBoardRepository) FindByCreatedBy(username string) ([]models.Board, error) {
	var boards []models.Board
	if err := r.db.Where("created_by = ?", username).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// FindByIDs retrieves the boards matching the given ID set
func (r *GormBoardRepository) FindByIDs(ids []uint64) ([]models.Board, error) {
	if len(ids) == 0 {
		return []models.Board{}, nil
	}

	var boards []models.Board
	if err := r.db.Where("id IN ?", ids).Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Update updates a board
func (r *GormBoardRepository) Update(board *models.Board) error {
	return r.db.Save(board).Error
}

// Delete deletes a board
func (r *GormBoardRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Board{}, id).Error
}
