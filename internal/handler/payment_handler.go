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

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	student := router.Group("/api/student/payments", middleware.RequireRole(model.RoleStudent))
	{
		student.GET("", h.ListOwn)
		student.POST("/:id/pay", h.Pay)
	}

	admin := router.Group("/api/admin/payments", middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", h.CreateDue)
	}
}

// CreateDue godoc
// @Summary Raise a fee due against a student
// @Tags    payments
// @Router  /api/admin/payments [post]
func (h *PaymentHandler) CreateDue(c *gin.Context) {
	var dto service.CreatePaymentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	payment, err := h.paymentService.CreateDue(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, payment))
}

func (h *PaymentHandler) ListOwn(c *gin.Context) {
	p := pagination.Parse(c)
	payments, total, err := h.paymentService.ListByStudent(
		c.Request.Context(), middleware.UserID(c), c.Query("status"), p.Page, p.Limit,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.List(http.StatusOK, payments, total, p.Page, p.Limit))
}

func (h *PaymentHandler) Pay(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var dto service.RecordPaymentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	payment, err := h.paymentService.MarkCompleted(c.Request.Context(), id, dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, payment))
}
