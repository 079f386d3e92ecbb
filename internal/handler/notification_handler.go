package handler

import (
	"net/http"

	"hosteladmin/internal/middleware"
	"hosteladmin/internal/model"
	"hosteladmin/internal/service"
	"hosteladmin/pkg/pagination"
	"hosteladmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/api/notifications", middleware.RequireRole(
		model.RoleStudent, model.RoleCaretaker, model.RoleWarden, model.RoleDean, model.RoleAdmin,
	))
	{
		g.GET("", h.List)
		g.GET("/unread-count", h.CountUnread)
		g.PUT("/:id/read", h.MarkRead)
		g.PUT("/read-all", h.MarkAllRead)
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	unreadOnly := c.Query("unread") == "true"
	notifications, total, err := h.notificationService.List(
		c.Request.Context(), middleware.UserID(c), unreadOnly, p.Page, p.Limit,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, notifications, total, p.Page, p.Limit))
}

func (h *NotificationHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationService.CountUnread(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"unread": count}))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "marked read"}))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "all marked read"}))
}
