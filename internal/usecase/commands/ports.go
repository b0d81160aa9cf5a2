package commands

import (
	"time"

	"ticket-checkout/internal/pkg/errs"
)

// CheckoutObserver receives one observation per checkout attempt.
type CheckoutObserver interface {
	ObserveCheckout(outcome string, elapsed time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveCheckout(string, time.Duration) {}

const (
	OutcomeSuccess            = "success"
	OutcomeVoucherNotFound    = "voucher_not_found"
	OutcomeVoucherExpired     = "voucher_expired"
	OutcomeVoucherExhausted   = "voucher_exhausted"
	OutcomeVoucherRedeemed    = "voucher_already_redeemed"
	OutcomeTicketNotFound     = "ticket_not_found"
	OutcomeInsufficientStock  = "insufficient_stock"
	OutcomeInvalidCart        = "invalid_cart"
	OutcomeTransactionAborted = "transaction_aborted"
)

// CheckoutOutcome maps a checkout error to a low-cardinality label.
func CheckoutOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errs.Is(err, errs.ErrVoucherNotFound):
		return OutcomeVoucherNotFound
	case errs.Is(err, errs.ErrVoucherExpired):
		return OutcomeVoucherExpired
	case errs.Is(err, errs.ErrVoucherExhausted):
		return OutcomeVoucherExhausted
	case errs.Is(err, errs.ErrVoucherAlreadyRedeemed):
		return OutcomeVoucherRedeemed
	case errs.Is(err, errs.ErrTicketNotFound):
		return OutcomeTicketNotFound
	case errs.Is(err, errs.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case errs.IsAny(err, errs.ErrEmptyCart, errs.ErrInvalidQuantity, errs.ErrTooManyItems):
		return OutcomeInvalidCart
	default:
		return OutcomeTransactionAborted
	}
}
