package shared

import (
	"context"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/domain/ticket"
	"ticket-checkout/internal/domain/voucher"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one transaction. Any error from fn rolls back every
	// write made through tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Tickets() TicketRepository
	Vouchers() VoucherRepository
	Orders() OrderRepository
	Outbox() OutboxRepository
}

type TicketRepository interface {
	GetByID(ctx context.Context, id int64) (*ticket.Ticket, error)
	// ReserveStock decrements stock by qty only when enough is left and
	// returns the remaining stock.
	ReserveStock(ctx context.Context, id int64, qty int32) (int32, error)
}

type VoucherRepository interface {
	GetByCode(ctx context.Context, code string) (*voucher.Voucher, error)
	// ReserveQuota takes one unit of quota and records the redemption.
	ReserveQuota(ctx context.Context, r Redemption) (int32, error)
	CountRedemptions(ctx context.Context, voucherID int64, userID uuid.UUID) (int64, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, o *order.Order) (int64, error)
	InsertItem(ctx context.Context, orderID int64, item order.LineItem) (int64, error)
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status) error
}

type OutboxRepository interface {
	Append(ctx context.Context, event OutboxEvent) error
}
