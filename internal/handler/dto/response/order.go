package response

import (
	"time"

	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type PlaceOrderResponse struct {
	OrderID    int64           `json:"order_id"`
	GrossPrice decimal.Decimal `json:"gross_price"`
	Discount   decimal.Decimal `json:"discount"`
	TotalPrice decimal.Decimal `json:"total_price"`
	VoucherID  *int64          `json:"voucher_id,omitempty"`
}

func FromPlaceOrderResult(r *commands.PlaceOrderResult) *PlaceOrderResponse {
	return &PlaceOrderResponse{
		OrderID:    r.OrderID,
		GrossPrice: r.Gross,
		Discount:   r.Discount,
		TotalPrice: r.Total,
		VoucherID:  r.VoucherID,
	}
}

type OrderResponse struct {
	ID         int64               `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	OrderDate  time.Time           `json:"order_date"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Status     string              `json:"status"`
	VoucherID  *int64              `json:"voucher_id,omitempty"`
	Voucher    *VoucherResponse    `json:"voucher,omitempty"`
	Items      []OrderItemResponse `json:"items"`
}

type VoucherResponse struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

type OrderItemResponse struct {
	ID       int64           `json:"id"`
	TicketID int64           `json:"ticket_id"`
	Quantity int32           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Ticket   TicketResponse  `json:"ticket"`
}

type TicketResponse struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Date          string `json:"date"`
	DepartureTime string `json:"departure_time"`
}

type OrderListResponse struct {
	Orders     []*OrderResponse `json:"orders"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

type UpdateOrderStatusResponse struct {
	OrderID int64  `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func FromUpdateOrderStatusResult(r *commands.UpdateOrderStatusResult) *UpdateOrderStatusResponse {
	return &UpdateOrderStatusResponse{
		OrderID: r.OrderID,
		From:    r.From.String(),
		To:      r.To.String(),
	}
}

// Only time.Time -> string pairs hit this converter, which is the ticket date.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src any) (any, error) {
				t, _ := src.(time.Time)
				return t.Format(dateLayout), nil
			},
		},
	},
}

func FromOrderView(v *queries.OrderView) (*OrderResponse, error) {
	res := &OrderResponse{}
	if err := copier.CopyWithOption(res, v, copyOption); err != nil {
		return nil, err
	}
	if res.Items == nil {
		res.Items = []OrderItemResponse{}
	}
	return res, nil
}

func FromOrderViews(views []*queries.OrderView, next *queries.Cursor) (*OrderListResponse, error) {
	out := &OrderListResponse{Orders: make([]*OrderResponse, 0, len(views))}
	for _, v := range views {
		res, err := FromOrderView(v)
		if err != nil {
			return nil, err
		}
		out.Orders = append(out.Orders, res)
	}
	if next != nil && next.After != "" {
		after := next.After
		out.NextCursor = &after
	}
	return out, nil
}
