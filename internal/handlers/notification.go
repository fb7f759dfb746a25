package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kairyu/kanban-board-api/internal/database"
	apierrors "github.com/kairyu/kanban-board-api/internal/errors"
	"github.com/kairyu/kanban-board-api/internal/middleware"
	"github.com/kairyu/kanban-board-api/internal/models"
	"github.com/kairyu/kanban-board-api/internal/services"
	"github.com/kairyu/kanban-board-api/internal/utils"
)

// NotificationHandler coordinates notification-related HTTP handlers.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// ListNotifications returns the notifications visible to the caller, newest
// first. When page or limit query parameters are present the result is
// paginated; otherwise the full list is returned.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if c.Query("page") == "" && c.Query("limit") == "" {
		notifications, err := h.notificationService.GetNotifications(identity)
		if err != nil {
			apierrors.InternalError(c, "Failed to fetch notifications")
			return
		}
		c.JSON(http.StatusOK, notifications)
		return
	}

	params := utils.GetPaginationParams(c)

	query := database.GetDB().Model(&models.Notification{})
	if !identity.IsAdmin() {
		query = query.Where("target_user = ?", identity.Name)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC, id DESC").
		Scopes(database.Paginate(params)).
		Find(&notifications).Error; err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUnreadCount returns the caller's unread notification count.
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	count, err := h.notificationService.GetUnreadCount(identity)
	if err != nil {
		apierrors.InternalError(c, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"unread_count": count,
	})
}

// MarkAsRead flips one notification to read.
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkAsRead(id, identity); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			apierrors.NotFound(c, "Notification not found")
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification marked as read",
	})
}

// MarkAllAsRead flips every unread notification visible to the caller.
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	identity, exists := middleware.GetIdentity(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.notificationService.MarkAllAsRead(identity); err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
	})
}
