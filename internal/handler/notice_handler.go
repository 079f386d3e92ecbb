package handler

import (
	"net/http"

	"hosteladmin/internal/middleware"
	"hosteladmin/internal/model"
	"hosteladmin/internal/service"
	"hosteladmin/pkg/pagination"
	"hosteladmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NoticeHandler struct {
	noticeService service.NoticeService
}

func NewNoticeHandler(noticeService service.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

func (h *NoticeHandler) RegisterRoutes(router *gin.RouterGroup) {
	board := router.Group("/api/notices", middleware.RequireRole(
		model.RoleStudent, model.RoleCaretaker, model.RoleWarden, model.RoleDean, model.RoleAdmin,
	))
	{
		board.GET("", h.ListActive)
		board.GET("/:id", h.Get)
	}

	publish := router.Group("/api/staff/notices", middleware.RequireRole(
		model.RoleWarden, model.RoleDean, model.RoleAdmin,
	))
	{
		publish.POST("", h.Publish)
		publish.DELETE("/:id", h.Unpublish)
	}
}

func (h *NoticeHandler) Publish(c *gin.Context) {
	var dto service.PublishNoticeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	notice, err := h.noticeService.Publish(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, notice))
}

func (h *NoticeHandler) ListActive(c *gin.Context) {
	p := pagination.Parse(c)
	var hostelID *uuid.UUID
	if raw := c.Query("hostel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid hostel_id"))
			return
		}
		hostelID = &id
	}

	notices, total, err := h.noticeService.ListActive(
		c.Request.Context(), middleware.UserRole(c), hostelID, p.Page, p.Limit,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, notices, total, p.Page, p.Limit))
}

func (h *NoticeHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	notice, err := h.noticeService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, notice))
}

func (h *NoticeHandler) Unpublish(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.noticeService.Unpublish(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "notice unpublished"}))
}
