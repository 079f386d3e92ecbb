package handler

import (
	"net/http"

	"hosteladmin/internal/middleware"
	"hosteladmin/internal/model"
	"hosteladmin/internal/repository"
	"hosteladmin/internal/service"
	"hosteladmin/pkg/pagination"
	"hosteladmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequisitionHandler struct {
	requisitionService service.RequisitionService
}

func NewRequisitionHandler(requisitionService service.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{requisitionService: requisitionService}
}

func (h *RequisitionHandler) RegisterRoutes(router *gin.RouterGroup) {
	caretaker := router.Group("/api/caretaker/requisitions", middleware.RequireRole(model.RoleCaretaker))
	{
		caretaker.POST("", h.Create)
		caretaker.GET("", h.ListForCaretaker)
		caretaker.POST("/:id/resubmit", h.Resubmit)
		caretaker.POST("/:id/cancel", h.Cancel)
	}

	warden := router.Group("/api/warden/requisitions", middleware.RequireRole(model.RoleWarden))
	{
		warden.GET("", h.ListForWarden)
		warden.PUT("/:id", h.WardenAct)
	}

	dean := router.Group("/api/dean/requisitions", middleware.RequireRole(model.RoleDean))
	{
		dean.GET("", h.ListAll)
		dean.PUT("/:id", h.DeanAct)
	}

	admin := router.Group("/api/admin/requisitions", middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("", h.ListAll)
		admin.PUT("/:id/process", h.AdminAct)
	}

	// Any staff role may inspect a single requisition it can reach.
	router.GET("/api/requisitions/:id",
		middleware.RequireRole(model.RoleCaretaker, model.RoleWarden, model.RoleDean, model.RoleAdmin),
		h.Get)
}

// Create godoc
// @Summary  File a new requisition for the caretaker's hostel
// @Tags     requisitions
// @Security BearerAuth
// @Router   /api/caretaker/requisitions [post]
func (h *RequisitionHandler) Create(c *gin.Context) {
	var dto service.CreateRequisitionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	req, err := h.requisitionService.Create(c.Request.Context(), middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, req))
}

func (h *RequisitionHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	req, err := h.requisitionService.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}

func (h *RequisitionHandler) ListForCaretaker(c *gin.Context) {
	p := pagination.Parse(c)
	reqs, total, err := h.requisitionService.ListForCaretaker(c.Request.Context(), middleware.UserID(c), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, reqs, total, p.Page, p.Limit))
}

func (h *RequisitionHandler) ListForWarden(c *gin.Context) {
	p := pagination.Parse(c)
	reqs, total, err := h.requisitionService.ListForWarden(c.Request.Context(), middleware.UserID(c), c.Query("status"), p.Page, p.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, reqs, total, p.Page, p.Limit))
}

// ListAll serves the dean and admin views: every hostel, optional status and
// hostel filters.
func (h *RequisitionHandler) ListAll(c *gin.Context) {
	p := pagination.Parse(c)
	filter := repository.RequisitionFilter{
		Status: c.Query("status"),
		Page:   p.Page,
		Limit:  p.Limit,
	}
	if raw := c.Query("hostel_id"); raw != "" {
		hostelID, err := uuid.Parse(raw)
		if err == nil {
			filter.HostelID = &hostelID
		}
	}

	reqs, total, err := h.requisitionService.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, reqs, total, p.Page, p.Limit))
}

// WardenAct godoc
// @Summary  Approve, reject or return a pending requisition
// @Tags     requisitions
// @Security BearerAuth
// @Router   /api/warden/requisitions/{id} [put]
func (h *RequisitionHandler) WardenAct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.WardenActionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	req, err := h.requisitionService.WardenAct(c.Request.Context(), id, middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}

func (h *RequisitionHandler) DeanAct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.DeanActionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	req, err := h.requisitionService.DeanAct(c.Request.Context(), id, middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}

// AdminAct godoc
// @Summary  Settle a dean-approved requisition
// @Tags     requisitions
// @Security BearerAuth
// @Router   /api/admin/requisitions/{id}/process [put]
func (h *RequisitionHandler) AdminAct(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.AdminActionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	req, err := h.requisitionService.AdminAct(c.Request.Context(), id, middleware.UserID(c), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}

func (h *RequisitionHandler) Resubmit(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Comments string `json:"comments"`
	}
	_ = c.ShouldBindJSON(&body)

	req, err := h.requisitionService.Resubmit(c.Request.Context(), id, middleware.UserID(c), body.Comments)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}

func (h *RequisitionHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Comments string `json:"comments"`
	}
	_ = c.ShouldBindJSON(&body)

	req, err := h.requisitionService.Cancel(c.Request.Context(), id, middleware.UserID(c), body.Comments)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, req))
}
