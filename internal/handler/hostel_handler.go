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

type HostelHandler struct {
	hostelService service.HostelService
}

func NewHostelHandler(hostelService service.HostelService) *HostelHandler {
	return &HostelHandler{hostelService: hostelService}
}

func (h *HostelHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := router.Group("/api/hostels", middleware.RequireRole(
		model.RoleCaretaker, model.RoleWarden, model.RoleDean, model.RoleAdmin,
	))
	{
		staff.GET("", h.List)
		staff.GET("/:id", h.Get)
	}

	admin := router.Group("/api/admin/hostels", middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", h.Create)
		admin.PUT("/:id", h.Update)
		admin.DELETE("/:id", h.Deactivate)
		admin.PUT("/:id/warden", h.AssignWarden)
		admin.PUT("/:id/caretakers", h.AssignCaretaker)
	}
}

// Create godoc
// @Summary Register a new hostel
// @Tags    hostels
// @Router  /api/admin/hostels [post]
func (h *HostelHandler) Create(c *gin.Context) {
	var dto service.CreateHostelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	hostel, err := h.hostelService.Create(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, hostel))
}

func (h *HostelHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	hostel, err := h.hostelService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, hostel))
}

func (h *HostelHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	activeOnly := c.DefaultQuery("active", "true") == "true"
	hostels, total, err := h.hostelService.List(c.Request.Context(), p.Page, p.Limit, activeOnly)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, hostels, total, p.Page, p.Limit))
}

func (h *HostelHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.UpdateHostelDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	hostel, err := h.hostelService.Update(c.Request.Context(), id, dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, hostel))
}

func (h *HostelHandler) Deactivate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.hostelService.Deactivate(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "hostel deactivated"}))
}

type assignStaffRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

func (h *HostelHandler) AssignWarden(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req assignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	if err := h.hostelService.AssignWarden(c.Request.Context(), id, req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "warden assigned"}))
}

func (h *HostelHandler) AssignCaretaker(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req assignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	if err := h.hostelService.AssignCaretaker(c.Request.Context(), id, req.UserID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "caretaker assigned"}))
}
