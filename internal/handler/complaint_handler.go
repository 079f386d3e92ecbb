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

type ComplaintHandler struct {
	complaintService service.ComplaintService
}

func NewComplaintHandler(complaintService service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

func (h *ComplaintHandler) RegisterRoutes(router *gin.RouterGroup) {
	student := router.Group("/api/student/complaints", middleware.RequireRole(model.RoleStudent))
	{
		student.POST("", h.Create)
		student.GET("", h.ListOwn)
	}

	staff := router.Group("/api/complaints", middleware.RequireRole(
		model.RoleCaretaker, model.RoleWarden, model.RoleDean, model.RoleAdmin,
	))
	{
		staff.GET("", h.List)
		staff.GET("/:id", h.Get)
		staff.PUT("/:id/status", h.UpdateStatus)
	}
}

// Create godoc
// @Summary File a complaint
// @Tags    complaints
// @Router  /api/student/complaints [post]
func (h *ComplaintHandler) Create(c *gin.Context) {
	var dto service.CreateComplaintDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	complaint, err := h.complaintService.Create(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, complaint))
}

func (h *ComplaintHandler) ListOwn(c *gin.Context) {
	p := pagination.Parse(c)
	studentID := middleware.UserID(c)
	complaints, total, err := h.complaintService.List(c.Request.Context(), service.ComplaintFilter{
		StudentID: &studentID,
		Status:    c.Query("status"),
		Page:      p.Page,
		Limit:     p.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, complaints, total, p.Page, p.Limit))
}

func (h *ComplaintHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.ComplaintFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     p.Page,
		Limit:    p.Limit,
	}
	if raw := c.Query("hostel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid hostel_id"))
			return
		}
		filter.HostelID = &id
	}

	complaints, total, err := h.complaintService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, complaints, total, p.Page, p.Limit))
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	complaint, err := h.complaintService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.UpdateComplaintDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	complaint, err := h.complaintService.UpdateStatus(
		c.Request.Context(), id, middleware.UserID(c), middleware.UserRole(c), dto,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, complaint))
}
