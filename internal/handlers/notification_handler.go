package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/muje-team/muje-backend/internal/repositories"
)

// NotificationHandler handles the viewer's notification inbox.
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications returns a page of the viewer's notifications, newest
// first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := h.notifications.GetByRecipientID(getViewerID(c), page, limit)
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// GetUnreadCount returns the unread badge count.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.GetUnreadCount(getViewerID(c))
	if err != nil {
		return engineError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the viewer's notifications as read.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}
	if err := h.notifications.MarkAsRead(uint(id), getViewerID(c)); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllAsRead clears the viewer's unread count.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllAsRead(getViewerID(c)); err != nil {
		return engineError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
