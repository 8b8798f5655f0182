package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/samssiams/Protecture-sub000/internal/middleware"
	"github.com/samssiams/Protecture-sub000/internal/models"
	"github.com/samssiams/Protecture-sub000/internal/repositories"
	"github.com/samssiams/Protecture-sub000/pkg/logger"
	"gorm.io/gorm"
)

// NotificationHandler handles the read side of notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notification/list", h.List)
	g.GET("/notification/unread-count", h.UnreadCount)
	g.POST("/notification/read", h.MarkRead)
	g.POST("/notification/read-all", h.MarkAllRead)
}

// List retrieves the caller's notifications newest-first, paginated
func (h *NotificationHandler) List(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, total, err := h.notificationRepository.GetByRecipientID(claims.UserID, page, limit)
	if err != nil {
		logger.Sugar.Errorw("failed to load notifications", "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"page":          page,
	})
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	count, err := h.notificationRepository.GetUnreadCount(claims.UserID)
	if err != nil {
		logger.Sugar.Errorw("failed to count notifications", "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to count notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

// MarkRead flags one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	var req models.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.notificationRepository.MarkAsRead(req.NotificationID, claims.UserID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		logger.Sugar.Errorw("failed to mark notification read", "notification", req.NotificationID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notification")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked read"})
}

// MarkAllRead flags all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
	}

	if err := h.notificationRepository.MarkAllAsRead(claims.UserID); err != nil {
		logger.Sugar.Errorw("failed to mark notifications read", "user", claims.UserID, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked read"})
}
