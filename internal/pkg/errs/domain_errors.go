package errs

import "errors"

// Checkout error taxonomy shared by the domain, usecase and handler layers
var (
	// Voucher errors
	ErrVoucherNotFound        = errors.New("voucher not found")
	ErrVoucherExpired         = errors.New("voucher is not valid at this time")
	ErrVoucherExhausted       = errors.New("voucher quota exhausted")
	ErrVoucherAlreadyRedeemed = errors.New("voucher already redeemed by user")

	// Catalog errors
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrInsufficientStock = errors.New("insufficient ticket stock")

	// Cart validation errors
	ErrEmptyCart       = errors.New("cart has no items")
	ErrInvalidQuantity = errors.New("quantity out of range")
	ErrTooManyItems    = errors.New("cart has too many items")

	// Order errors
	ErrOrderNotFound           = errors.New("order not found")
	ErrInvalidOrderStatus      = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")

	// Operation errors
	ErrTransactionAborted = errors.New("transaction aborted")
)

// IsRejection reports whether err is an expected business outcome rather
// than an infrastructure failure.
func IsRejection(err error) bool {
	return IsAny(err,
		ErrVoucherNotFound,
		ErrVoucherExpired,
		ErrVoucherExhausted,
		ErrVoucherAlreadyRedeemed,
		ErrTicketNotFound,
		ErrInsufficientStock,
		ErrEmptyCart,
		ErrInvalidQuantity,
		ErrTooManyItems,
		ErrOrderNotFound,
		ErrInvalidOrderStatus,
		ErrInvalidStatusTransition,
	)
}
