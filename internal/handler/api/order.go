package api

import (
	"net/http"
	"strconv"

	reqdto "ticket-checkout/internal/handler/dto/request"
	resdto "ticket-checkout/internal/handler/dto/response"
	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/handler/middleware"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errUnauthenticated = errs.New("no authenticated user in context")
	errInvalidID       = errs.New("id must be a positive integer")
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Place order
// @Description Reserve tickets, redeem an optional voucher and record the order in one transaction
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the first response for a repeated key"
// @Param request body reqdto.PlaceOrderRequest true "Cart"
// @Success 201 {object} resdto.PlaceOrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var req reqdto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.PlaceOrder(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		abortWithOrderError(c, err)
		return
	}

	c.Header("Location", "/api/orders/"+strconv.FormatInt(result.OrderID, 10))
	c.JSON(http.StatusCreated, resdto.FromPlaceOrderResult(result))
}

// @Summary List my orders
// @Description Order history of the caller, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param cursor query string false "Opaque cursor from a previous page"
// @Param limit query int false "Page size (1-200, default 20)"
// @Success 200 {object} resdto.OrderListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	var q reqdto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	views, next, err := h.q.ListByUser(c.Request.Context(), userID, cursorFrom(q.Cursor), q.Limit)
	if err != nil {
		abortWithOrderError(c, err)
		return
	}
	writeOrderList(c, views, next)
}

func cursorFrom(after string) *queries.Cursor {
	if after == "" {
		return nil
	}
	return &queries.Cursor{After: after}
}

func writeOrderList(c *gin.Context, views []*queries.OrderView, next *queries.Cursor) {
	res, err := resdto.FromOrderViews(views, next)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render orders", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
