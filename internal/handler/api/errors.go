package api

import (
	"net/http"

	"ticket-checkout/internal/handler/httperr"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters only where one error could carry two marks; the first hit wins.
var orderErrorMappings = []errorMapping{
	{errs.ErrVoucherNotFound, http.StatusNotFound, "voucher_not_found", "Voucher not found"},
	{errs.ErrVoucherExpired, http.StatusUnprocessableEntity, "voucher_expired", "Voucher is not valid at this time"},
	{errs.ErrVoucherExhausted, http.StatusConflict, "voucher_exhausted", "Voucher quota exhausted"},
	{errs.ErrVoucherAlreadyRedeemed, http.StatusConflict, "voucher_already_redeemed", "Voucher already redeemed"},
	{errs.ErrTicketNotFound, http.StatusNotFound, "ticket_not_found", "Ticket not found"},
	{errs.ErrInsufficientStock, http.StatusConflict, "insufficient_stock", "Insufficient ticket stock"},
	{errs.ErrEmptyCart, http.StatusBadRequest, "empty_cart", "Cart is empty"},
	{errs.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity", "Quantity must be between 1 and 2147483647"},
	{errs.ErrTooManyItems, http.StatusBadRequest, "too_many_items", "Too many items in cart"},
	{errs.ErrOrderNotFound, http.StatusNotFound, "order_not_found", "Order not found"},
	{errs.ErrInvalidOrderStatus, http.StatusBadRequest, "invalid_order_status", "Invalid order status"},
	{errs.ErrInvalidStatusTransition, http.StatusConflict, "invalid_status_transition", "Order status transition not allowed"},
	{queries.ErrInvalidCursor, http.StatusBadRequest, "invalid_cursor", "Invalid cursor"},
	{errs.ErrTransactionAborted, http.StatusServiceUnavailable, "transaction_aborted", "Order could not be completed, please retry"},
}

func abortWithOrderError(c *gin.Context, err error) {
	for _, m := range orderErrorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithCode(c, m.status, m.code, err, m.message, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
