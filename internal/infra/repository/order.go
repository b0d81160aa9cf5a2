package repository

import (
	"context"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/pkg/pgconv"
)

type OrderQueries interface {
	InsertOrder(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderParams) (int64, error)
	InsertOrderItem(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOrderItemParams) (int64, error)
	GetOrderForUpdate(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Orders, error)
	UpdateOrderStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateOrderStatusParams) error
}

type OrderRepository struct {
	queries OrderQueries
	db      sqlc.DBTX
}

func NewOrderRepository(queries OrderQueries, db sqlc.DBTX) *OrderRepository {
	return &OrderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *order.Order) (int64, error) {
	id, err := r.queries.InsertOrder(ctx, r.db, sqlc.InsertOrderParams{
		UserID:     o.UserID(),
		OrderDate:  pgconv.TimeToPgtype(o.OrderedAt()),
		TotalPrice: pgconv.DecimalToNumeric(o.Total()),
		Status:     o.Status().String(),
		VoucherID:  pgconv.Int64PtrToPgtype(o.VoucherID()),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert order", err)
	}
	return id, nil
}

// InsertItem stores the line subtotal in the price column.
func (r *OrderRepository) InsertItem(ctx context.Context, orderID int64, item order.LineItem) (int64, error) {
	id, err := r.queries.InsertOrderItem(ctx, r.db, sqlc.InsertOrderItemParams{
		OrderID:  orderID,
		TicketID: item.TicketID,
		Quantity: item.Quantity,
		Price:    pgconv.DecimalToNumeric(item.Subtotal()),
	})
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to insert order item", err)
		if infra.IsKind(wrapped, infra.KindForeignKeyViolated) {
			return 0, errs.Mark(wrapped, errs.ErrTicketNotFound)
		}
		return 0, wrapped
	}
	return id, nil
}

func (r *OrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	row, err := r.queries.GetOrderForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("order not found", err, infra.KindNotFound), errs.ErrOrderNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock order", err)
	}

	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert order row", err)
	}
	o, err := order.Reconstruct(
		row.ID,
		row.UserID,
		pgconv.TimeFromPgtype(row.OrderDate),
		total,
		order.Status(row.Status),
		pgconv.Int64PtrFromPgtype(row.VoucherID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert order row", err)
	}
	return o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	if err := r.queries.UpdateOrderStatus(ctx, r.db, sqlc.UpdateOrderStatusParams{
		ID:     id,
		Status: status.String(),
	}); err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	return nil
}
