//go:build unit || e2e

package builder

import (
	"time"

	reqdto "ticket-checkout/internal/handler/dto/request"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderBuilder struct {
	ID          int64
	UserID      uuid.UUID
	OrderDate   time.Time
	Status      string
	VoucherID   *int64
	VoucherCode *string
	Items       []commands.LineItemInput
	Gross       decimal.Decimal
	Discount    decimal.Decimal
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:        1,
		UserID:    uuid.New(),
		OrderDate: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
		Status:    "pending",
		Items: []commands.LineItemInput{
			{TicketID: 1, Quantity: 2},
		},
		Gross:    decimal.RequireFromString("3000000.00"),
		Discount: decimal.Zero,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *OrderBuilder) BuildRequestDTO() reqdto.PlaceOrderRequest {
	items := make([]reqdto.OrderItemRequest, len(b.Items))
	for i, it := range b.Items {
		items[i] = reqdto.OrderItemRequest{TicketID: it.TicketID, Quantity: it.Quantity}
	}
	return reqdto.PlaceOrderRequest{
		Items:       items,
		VoucherCode: b.VoucherCode,
	}
}

func (b *OrderBuilder) BuildInput() commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		UserID:      b.UserID,
		Items:       b.Items,
		VoucherCode: b.VoucherCode,
	}
}

func (b *OrderBuilder) BuildResult() *commands.PlaceOrderResult {
	return &commands.PlaceOrderResult{
		OrderID:   b.ID,
		Gross:     b.Gross,
		Discount:  b.Discount,
		Total:     b.Gross.Sub(b.Discount),
		VoucherID: b.VoucherID,
	}
}

func (b *OrderBuilder) BuildInfra() sqlc.Orders {
	return sqlc.Orders{
		ID:         b.ID,
		UserID:     b.UserID,
		OrderDate:  pgconv.TimeToPgtype(b.OrderDate),
		TotalPrice: pgconv.DecimalToNumeric(b.Gross.Sub(b.Discount)),
		Status:     b.Status,
		VoucherID:  pgconv.Int64PtrToPgtype(b.VoucherID),
		UpdatedAt:  pgconv.TimeToPgtype(b.OrderDate),
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	items := make([]queries.OrderItemView, len(b.Items))
	for i, it := range b.Items {
		items[i] = queries.OrderItemView{
			ID:       int64(i + 1),
			TicketID: it.TicketID,
			Quantity: it.Quantity,
			Price:    b.Gross,
			Ticket: queries.TicketSummary{
				Origin:        "CGK",
				Destination:   "DPS",
				Date:          time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
				DepartureTime: "08:30",
			},
		}
	}
	return &queries.OrderView{
		ID:         b.ID,
		UserID:     b.UserID,
		OrderDate:  b.OrderDate,
		TotalPrice: b.Gross.Sub(b.Discount),
		Status:     b.Status,
		VoucherID:  b.VoucherID,
		Items:      items,
	}
}

// Fluent builder methods
func (b *OrderBuilder) WithUserID(userID uuid.UUID) *OrderBuilder {
	b.UserID = userID
	return b
}

func (b *OrderBuilder) WithVoucher(id int64, code string, discount string) *OrderBuilder {
	b.VoucherID = &id
	b.VoucherCode = &code
	b.Discount = decimal.RequireFromString(discount)
	return b
}

func (b *OrderBuilder) WithItems(items ...commands.LineItemInput) *OrderBuilder {
	b.Items = items
	return b
}
