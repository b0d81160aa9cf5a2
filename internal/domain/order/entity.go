package order

import (
	"time"

	"ticket-checkout/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LineItem struct {
	TicketID  int64
	Quantity  int32
	UnitPrice decimal.Decimal
}

func NewLineItem(ticketID int64, quantity int32, unitPrice decimal.Decimal) (LineItem, error) {
	if quantity <= 0 {
		return LineItem{}, errs.ErrInvalidQuantity
	}
	return LineItem{TicketID: ticketID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

// Subtotal is the value persisted as the line item price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt32(li.Quantity))
}

// Order is the header created by a checkout. Status changes after creation
// go through Transition.
type Order struct {
	id        int64
	userID    uuid.UUID
	orderedAt time.Time
	total     decimal.Decimal
	status    Status
	voucherID *int64
	items     []LineItem
}

func NewOrder(userID uuid.UUID, items []LineItem, quote Quote, voucherID *int64, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, errs.ErrEmptyCart
	}
	return &Order{
		userID:    userID,
		orderedAt: now,
		total:     quote.Net,
		status:    StatusPending,
		voucherID: voucherID,
		items:     items,
	}, nil
}

func Reconstruct(id int64, userID uuid.UUID, orderedAt time.Time, total decimal.Decimal, status Status, voucherID *int64) (*Order, error) {
	if !status.IsValid() {
		return nil, errs.ErrInvalidOrderStatus
	}
	return &Order{
		id:        id,
		userID:    userID,
		orderedAt: orderedAt,
		total:     total,
		status:    status,
		voucherID: voucherID,
	}, nil
}

func (o *Order) Transition(next Status) error {
	if !next.IsValid() {
		return errs.ErrInvalidOrderStatus
	}
	if !o.status.CanTransitionTo(next) {
		return errs.ErrInvalidStatusTransition
	}
	o.status = next
	return nil
}

func (o *Order) AssignID(id int64) {
	o.id = id
}

func (o *Order) ID() int64              { return o.id }
func (o *Order) UserID() uuid.UUID      { return o.userID }
func (o *Order) OrderedAt() time.Time   { return o.orderedAt }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) Status() Status         { return o.status }
func (o *Order) VoucherID() *int64      { return o.voucherID }
func (o *Order) Items() []LineItem      { return o.items }
