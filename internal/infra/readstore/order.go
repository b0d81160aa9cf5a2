package readstore

import (
	"context"
	"time"

	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderViewQueries interface {
	ListOrdersByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserFirstPageParams) ([]sqlc.ListOrdersByUserFirstPageRow, error)
	ListOrdersByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersByUserKeysetParams) ([]sqlc.ListOrdersByUserKeysetRow, error)
	ListOrdersFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersFirstPageParams) ([]sqlc.ListOrdersFirstPageRow, error)
	ListOrdersKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOrdersKeysetParams) ([]sqlc.ListOrdersKeysetRow, error)
	ListOrderItemsByOrderIDs(ctx context.Context, db sqlc.DBTX, orderIds []int64) ([]sqlc.ListOrderItemsByOrderIDsRow, error)
}

type OrderReadStore struct {
	queries OrderViewQueries
	db      sqlc.DBTX
}

func NewOrderReadStore(queries OrderViewQueries, db sqlc.DBTX) *OrderReadStore {
	return &OrderReadStore{
		queries: queries,
		db:      db,
	}
}

// orderRow mirrors the four list query rows, which share one column set.
type orderRow struct {
	ID                   int64              `json:"id"`
	UserID               uuid.UUID          `json:"user_id"`
	OrderDate            pgtype.Timestamptz `json:"order_date"`
	TotalPrice           pgtype.Numeric     `json:"total_price"`
	Status               string             `json:"status"`
	VoucherID            pgtype.Int8        `json:"voucher_id"`
	VoucherCode          pgtype.Text        `json:"voucher_code"`
	VoucherDiscountType  pgtype.Text        `json:"voucher_discount_type"`
	VoucherDiscountValue pgtype.Numeric     `json:"voucher_discount_value"`
}

func (r *OrderReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrdersByUserFirstPage(ctx, r.db, sqlc.ListOrdersByUserFirstPageParams{
		UserID:   userID,
		RowLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user orders first page", err)
	}
	out := make([]orderRow, len(rows))
	for i, row := range rows {
		out[i] = orderRow(row)
	}
	return r.withItems(ctx, out)
}

func (r *OrderReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastOrderDate time.Time, lastID int64, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrdersByUserKeyset(ctx, r.db, sqlc.ListOrdersByUserKeysetParams{
		UserID:        userID,
		LastOrderDate: pgconv.TimeToPgtype(lastOrderDate),
		LastID:        lastID,
		RowLimit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list user orders keyset", err)
	}
	out := make([]orderRow, len(rows))
	for i, row := range rows {
		out[i] = orderRow(row)
	}
	return r.withItems(ctx, out)
}

func (r *OrderReadStore) FindAllFirstPage(ctx context.Context, status *string, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrdersFirstPage(ctx, r.db, sqlc.ListOrdersFirstPageParams{
		Status:   pgconv.StringPtrToPgtype(status),
		RowLimit: limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders first page", err)
	}
	out := make([]orderRow, len(rows))
	for i, row := range rows {
		out[i] = orderRow(row)
	}
	return r.withItems(ctx, out)
}

func (r *OrderReadStore) FindAllKeyset(ctx context.Context, status *string, lastOrderDate time.Time, lastID int64, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.queries.ListOrdersKeyset(ctx, r.db, sqlc.ListOrdersKeysetParams{
		Status:        pgconv.StringPtrToPgtype(status),
		LastOrderDate: pgconv.TimeToPgtype(lastOrderDate),
		LastID:        lastID,
		RowLimit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders keyset", err)
	}
	out := make([]orderRow, len(rows))
	for i, row := range rows {
		out[i] = orderRow(row)
	}
	return r.withItems(ctx, out)
}

// withItems loads the line items of a page in one query.
func (r *OrderReadStore) withItems(ctx context.Context, rows []orderRow) ([]*queries.OrderView, error) {
	if len(rows) == 0 {
		return []*queries.OrderView{}, nil
	}

	views := make([]*queries.OrderView, 0, len(rows))
	byID := make(map[int64]*queries.OrderView, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		view, err := toOrderView(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert order row", err)
		}
		views = append(views, view)
		byID[view.ID] = view
		ids = append(ids, view.ID)
	}

	items, err := r.queries.ListOrderItemsByOrderIDs(ctx, r.db, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list order items", err)
	}
	for _, item := range items {
		view, ok := byID[item.OrderID]
		if !ok {
			continue
		}
		price, err := pgconv.DecimalFromNumeric(item.Price)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert order item row", err)
		}
		view.Items = append(view.Items, queries.OrderItemView{
			ID:       item.ID,
			TicketID: item.TicketID,
			Quantity: item.Quantity,
			Price:    price,
			Ticket: queries.TicketSummary{
				Origin:        item.Origin,
				Destination:   item.Destination,
				Date:          pgconv.DateFromPgtype(item.Date),
				DepartureTime: pgconv.ClockFromPgtype(item.DepartureTime),
			},
		})
	}
	return views, nil
}

func toOrderView(row orderRow) (*queries.OrderView, error) {
	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, err
	}
	view := &queries.OrderView{
		ID:         row.ID,
		UserID:     row.UserID,
		OrderDate:  pgconv.TimeFromPgtype(row.OrderDate),
		TotalPrice: total,
		Status:     row.Status,
		VoucherID:  pgconv.Int64PtrFromPgtype(row.VoucherID),
		Items:      []queries.OrderItemView{},
	}
	if row.VoucherCode.Valid {
		value, err := pgconv.DecimalFromNumeric(row.VoucherDiscountValue)
		if err != nil {
			return nil, err
		}
		view.Voucher = &queries.VoucherSummary{
			Code:          row.VoucherCode.String,
			DiscountType:  row.VoucherDiscountType.String,
			DiscountValue: value,
		}
	}
	return view, nil
}
