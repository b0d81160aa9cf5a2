package request

import (
	"strings"

	"ticket-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type OrderItemRequest struct {
	TicketID int64 `json:"ticket_id" binding:"required,gt=0"`
	Quantity int32 `json:"quantity" binding:"required,gt=0"`
}

type PlaceOrderRequest struct {
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	VoucherCode *string            `json:"voucher_code,omitempty" binding:"omitempty,max=64"`
}

// GetVoucherCode treats a blank code as no voucher.
func (r PlaceOrderRequest) GetVoucherCode() *string {
	if r.VoucherCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.VoucherCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r PlaceOrderRequest) ToInput(userID uuid.UUID) commands.PlaceOrderInput {
	items := make([]commands.LineItemInput, len(r.Items))
	for i, it := range r.Items {
		items[i] = commands.LineItemInput{
			TicketID: it.TicketID,
			Quantity: it.Quantity,
		}
	}
	return commands.PlaceOrderInput{
		UserID:      userID,
		Items:       items,
		VoucherCode: r.GetVoucherCode(),
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid issued canceled"`
}

type ListOrdersQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

type ListAllOrdersQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Status string `form:"status" binding:"omitempty,oneof=pending paid issued canceled"`
}
