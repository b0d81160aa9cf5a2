package api

import (
	"net/http"
	"strconv"

	"ticket-checkout/internal/domain/order"
	reqdto "ticket-checkout/internal/handler/dto/request"
	resdto "ticket-checkout/internal/handler/dto/response"
	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminOrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewAdminOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *AdminOrderHandler {
	return &AdminOrderHandler{cmds: cmds, q: q}
}

// @Summary List all orders
// @Description Every order, newest first, optionally filtered by status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending | paid | issued | canceled"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200, default 20)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/orders [get]
func (h *AdminOrderHandler) List(c *gin.Context) {
	var q reqdto.ListAllOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	filter := queries.OrderFilter{}
	if q.Status != "" {
		status := order.Status(q.Status)
		filter.Status = &status
	}

	views, next, err := h.q.ListAll(c.Request.Context(), filter, cursorFrom(q.Cursor), q.Limit)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	writeOrderList(c, views, next)
}

// @Summary Update order status
// @Description Move an order along pending -> paid -> issued, or cancel it
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body reqdto.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} resdto.UpdateOrderStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/orders/{id}/status [patch]
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errInvalidID
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.UpdateOrderStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.UpdateOrderStatus(c.Request.Context(), id, order.Status(req.Status))
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUpdateOrderStatusResult(result))
}
