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

type TransferHandler struct {
	transferService service.TransferService
}

func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

func (h *TransferHandler) RegisterRoutes(router *gin.RouterGroup) {
	student := router.Group("/api/student/transfers", middleware.RequireRole(model.RoleStudent))
	{
		student.POST("", h.Create)
		student.GET("", h.ListOwn)
	}

	staff := router.Group("/api/warden/transfers", middleware.RequireRole(model.RoleWarden, model.RoleAdmin))
	{
		staff.GET("", h.List)
		staff.PUT("/:id", h.Review)
	}
}

func (h *TransferHandler) Create(c *gin.Context) {
	var dto service.CreateTransferDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	transfer, err := h.transferService.Create(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, transfer))
}

func (h *TransferHandler) ListOwn(c *gin.Context) {
	p := pagination.Parse(c)
	studentID := middleware.UserID(c)
	transfers, total, err := h.transferService.List(c.Request.Context(), service.TransferFilter{
		StudentID: &studentID,
		Status:    c.Query("status"),
		Page:      p.Page,
		Limit:     p.Limit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, transfers, total, p.Page, p.Limit))
}

func (h *TransferHandler) List(c *gin.Context) {
	p := pagination.Parse(c)
	filter := service.TransferFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	if raw := c.Query("hostel_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid hostel_id"))
			return
		}
		filter.HostelID = &id
	}

	transfers, total, err := h.transferService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, transfers, total, p.Page, p.Limit))
}

// Review godoc
// @Summary Approve or reject a transfer request
// @Tags    transfers
// @Router  /api/warden/transfers/{id} [put]
func (h *TransferHandler) Review(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.ReviewTransferDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	transfer, err := h.transferService.Review(c.Request.Context(), id, middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, transfer))
}
