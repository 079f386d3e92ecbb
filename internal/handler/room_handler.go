package handler

import (
	"net/http"

	"hosteladmin/internal/middleware"
	"hosteladmin/internal/model"
	"hosteladmin/internal/service"
	"hosteladmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomService service.RoomService
}

func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

func (h *RoomHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := router.Group("/api/hostels/:id/rooms", middleware.RequireRole(
		model.RoleCaretaker, model.RoleWarden, model.RoleDean, model.RoleAdmin,
	))
	{
		staff.GET("", h.ListByHostel)
	}

	admin := router.Group("/api/admin/hostels/:id/rooms", middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", h.Create)
	}

	rooms := router.Group("/api/admin/rooms", middleware.RequireRole(model.RoleAdmin, model.RoleWarden))
	{
		rooms.PUT("/:id", h.Update)
		rooms.POST("/:id/allot", h.Allot)
		rooms.POST("/:id/vacate", h.Vacate)
	}
}

func (h *RoomHandler) Create(c *gin.Context) {
	hostelID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.CreateRoomDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), hostelID, dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, room))
}

func (h *RoomHandler) ListByHostel(c *gin.Context) {
	hostelID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	rooms, err := h.roomService.ListByHostel(c.Request.Context(), hostelID, c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rooms))
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.UpdateRoomDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, room))
}

type occupancyRequest struct {
	StudentID uuid.UUID `json:"student_id" binding:"required"`
}

// Allot godoc
// @Summary Place a student in a room
// @Tags    rooms
// @Router  /api/admin/rooms/{id}/allot [post]
func (h *RoomHandler) Allot(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req occupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	room, err := h.roomService.Allot(c.Request.Context(), id, req.StudentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, room))
}

func (h *RoomHandler) Vacate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req occupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	room, err := h.roomService.Vacate(c.Request.Context(), id, req.StudentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, room))
}
