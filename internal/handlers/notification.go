// internal/handlers/notification.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/services"
	"shopadmin/internal/utils"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// POST /notifications
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	var req services.CreateNotificationRequest
	if !bindJSON(c, &req) {
		return
	}

	notification, err := h.notifications.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, "Notification created", notification)
}

// GET /notifications/user/:userId
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	unreadOnly, _ := strconv.ParseBool(c.DefaultQuery("unread_only", "false"))

	notifications, err := h.notifications.ListForUser(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Notifications fetched", notifications)
}

// GET /notifications/user/:userId/unread-count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	count, err := h.notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Unread count fetched", gin.H{"unread_count": count})
}

// PUT /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notifications.MarkRead(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Notification marked as read", notification)
}

// PUT /notifications/user/:userId/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	updated, err := h.notifications.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Notifications marked as read", gin.H{"updated": updated})
}

// DELETE /notifications/:id
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notifications.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, "Notification deleted", notification)
}
