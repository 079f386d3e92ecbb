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

type AuditHandler struct {
	auditService service.AuditService
}

func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	g := router.Group("/api/admin/audit-logs", middleware.RequireRole(model.RoleAdmin))
	{
		g.GET("", h.List)
	}
}

func (h *AuditHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.AuditFilter{
		Action: c.Query("action"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	if raw := c.Query("user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid user_id"))
			return
		}
		filter.UserID = &id
	}

	logs, total, err := h.auditService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, logs, total, p.Page, p.Limit))
}
