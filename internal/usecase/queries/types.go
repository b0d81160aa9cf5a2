package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is an order with its line items and voucher summary
type OrderView struct {
	ID         int64           `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	OrderDate  time.Time       `json:"order_date"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	VoucherID  *int64          `json:"voucher_id,omitempty"`
	Voucher    *VoucherSummary `json:"voucher,omitempty"`
	Items      []OrderItemView `json:"items"`
}

type VoucherSummary struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

type OrderItemView struct {
	ID       int64           `json:"id"`
	TicketID int64           `json:"ticket_id"`
	Quantity int32           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Ticket   TicketSummary   `json:"ticket"`
}

type TicketSummary struct {
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	Date          time.Time `json:"date"`
	DepartureTime string    `json:"departure_time"`
}
