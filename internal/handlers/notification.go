package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/sodo-hospital/admin-api/internal/errors"
	"github.com/sodo-hospital/admin-api/internal/middleware"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// NotificationHandler coordinates notification HTTP handlers.
type NotificationHandler struct {
	notifService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// ListNotifications returns the current user's notifications, newest first.
// Pass unread=true to only see unread ones.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notifService.ListForUser(userID, unreadOnly)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
	})
}

// MarkRead marks one of the current user's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	notificationID, ok := parseID(c)
	if !ok {
		return
	}

	n, err := h.notifService.MarkRead(notificationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			apierrors.NotFound(c, "Notification not found")
			return
		}
		apierrors.InternalError(c, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, n)
}
