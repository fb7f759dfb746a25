package repository

import (
	"github.com/kairyu/kanban-board-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// FindAll retrieves every notification, newest first
func (r *GormNotificationRepository) FindAll() ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByTargetUser retrieves a user's notifications, newest first
func (r *GormNotificationRepository) FindByTargetUser(username string) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Where("target_user = ?", username).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountByTargetUserAndRead counts a user's notifications by read state
func (r *GormNotificationRepository) CountByTargetUserAndRead(username string, read bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("target_user = ? AND `read` = ?", username, read).
		Count(&count).Error
	return count, err
}

// CountByRead counts notifications system-wide by read state
func (r *GormNotificationRepository) CountByRead(read bool) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("`read` = ?", read).
		Count(&count).Error
	return count, err
}

// Update updates a notification
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}
