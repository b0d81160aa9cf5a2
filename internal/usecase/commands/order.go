package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sort"
	"time"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/domain/voucher"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "ticket-checkout/usecase/commands"

type LineItemInput struct {
	TicketID int64
	Quantity int32
}

type PlaceOrderInput struct {
	UserID      uuid.UUID
	Items       []LineItemInput
	VoucherCode *string
}

type PlaceOrderResult struct {
	OrderID   int64
	Gross     decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
	VoucherID *int64
}

type UpdateOrderStatusResult struct {
	OrderID int64
	From    order.Status
	To      order.Status
}

//go:generate mockgen -source=order.go -destination=../../../tests/mock/commands/order.go -package=commands
type OrderCommands interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) (*UpdateOrderStatusResult, error)
}

type OrderOptions struct {
	MaxItems           int
	VoucherOncePerUser bool
}

type orderUseCaseImpl struct {
	uow        shared.UnitOfWork
	calculator order.PriceCalculator
	clock      clock.Clock
	observer   CheckoutObserver
	opts       OrderOptions
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewOrderCommands(
	uow shared.UnitOfWork,
	calculator order.PriceCalculator,
	clk clock.Clock,
	observer CheckoutObserver,
	opts OrderOptions,
	logger *slog.Logger,
) OrderCommands {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &orderUseCaseImpl{
		uow:        uow,
		calculator: calculator,
		clock:      clk,
		observer:   observer,
		opts:       opts,
		logger:     logger,
		tracer:     otel.Tracer(tracerName),
	}
}

func (uc *orderUseCaseImpl) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	ctx, span := uc.tracer.Start(ctx, "OrderCommands.PlaceOrder", trace.WithAttributes(
		attribute.String("user.id", in.UserID.String()),
		attribute.Int("cart.lines", len(in.Items)),
		attribute.Bool("cart.voucher", in.VoucherCode != nil),
	))
	defer span.End()

	start := time.Now()
	result, err := uc.placeOrder(ctx, in)
	outcome := CheckoutOutcome(err)
	uc.observer.ObserveCheckout(outcome, time.Since(start))
	span.SetAttributes(attribute.String("checkout.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		if errs.IsRejection(err) {
			uc.logger.InfoContext(ctx, "checkout rejected", "user_id", in.UserID, "outcome", outcome, "error", err.Error())
		} else {
			span.SetStatus(codes.Error, "checkout aborted")
			uc.logger.ErrorContext(ctx, "checkout aborted", "user_id", in.UserID, "error", err.Error())
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int64("order.id", result.OrderID))
	uc.logger.InfoContext(ctx, "order placed",
		"order_id", result.OrderID,
		"user_id", in.UserID,
		"total", result.Total.String(),
	)
	return result, nil
}

func (uc *orderUseCaseImpl) placeOrder(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	lines, err := mergeLines(in.Items, uc.opts.MaxItems)
	if err != nil {
		return nil, err
	}

	code, err := voucherCode(in.VoucherCode)
	if err != nil {
		return nil, err
	}

	var result *PlaceOrderResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()

		var v *voucher.Voucher
		if code != "" {
			found, verr := tx.Vouchers().GetByCode(ctx, code)
			if verr != nil {
				return verr
			}
			if verr = found.ValidateAt(now); verr != nil {
				return verr
			}
			v = found
		}

		items := make([]order.LineItem, 0, len(lines))
		for _, line := range lines {
			t, terr := tx.Tickets().GetByID(ctx, line.TicketID)
			if terr != nil {
				return terr
			}
			if !t.CanFulfil(line.Quantity) {
				return errs.Wrapf(errs.ErrInsufficientStock, "ticket %d has %d left, %d requested", t.ID(), t.Stock(), line.Quantity)
			}
			item, ierr := order.NewLineItem(t.ID(), line.Quantity, t.Price())
			if ierr != nil {
				return ierr
			}
			items = append(items, item)
		}

		quote, qerr := uc.calculator.Calculate(items, v, now)
		if qerr != nil {
			return qerr
		}

		var voucherID *int64
		if v != nil {
			id := v.ID()
			voucherID = &id
		}

		o, oerr := order.NewOrder(in.UserID, items, quote, voucherID, now)
		if oerr != nil {
			return oerr
		}
		orderID, oerr := tx.Orders().Insert(ctx, o)
		if oerr != nil {
			return oerr
		}
		o.AssignID(orderID)

		// Ascending ticket order keeps row locks acquired in the same order
		// across concurrent checkouts.
		for _, item := range items {
			if _, ierr := tx.Orders().InsertItem(ctx, orderID, item); ierr != nil {
				return ierr
			}
			if _, rerr := tx.Tickets().ReserveStock(ctx, item.TicketID, item.Quantity); rerr != nil {
				return rerr
			}
		}

		if v != nil {
			if verr := uc.redeem(ctx, tx, v, in.UserID, orderID); verr != nil {
				return verr
			}
		}

		if eerr := appendOrderPlaced(ctx, tx, o, quote); eerr != nil {
			return eerr
		}

		result = &PlaceOrderResult{
			OrderID:   orderID,
			Gross:     quote.Gross,
			Discount:  quote.Discount,
			Total:     quote.Net,
			VoucherID: voucherID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *orderUseCaseImpl) redeem(ctx context.Context, tx shared.Tx, v *voucher.Voucher, userID uuid.UUID, orderID int64) error {
	if _, err := tx.Vouchers().ReserveQuota(ctx, shared.Redemption{
		VoucherID: v.ID(),
		UserID:    userID,
		OrderID:   orderID,
	}); err != nil {
		return err
	}
	if !uc.opts.VoucherOncePerUser {
		return nil
	}
	// The quota update above holds the voucher row lock, so concurrent
	// redemptions by the same user are already serialized here.
	n, err := tx.Vouchers().CountRedemptions(ctx, v.ID(), userID)
	if err != nil {
		return err
	}
	if n > 1 {
		return errs.ErrVoucherAlreadyRedeemed
	}
	return nil
}

func (uc *orderUseCaseImpl) UpdateOrderStatus(ctx context.Context, orderID int64, next order.Status) (*UpdateOrderStatusResult, error) {
	ctx, span := uc.tracer.Start(ctx, "OrderCommands.UpdateOrderStatus", trace.WithAttributes(
		attribute.Int64("order.id", orderID),
		attribute.String("order.status", next.String()),
	))
	defer span.End()

	if !next.IsValid() {
		return nil, errs.ErrInvalidOrderStatus
	}

	var result *UpdateOrderStatusResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		from := o.Status()
		if err = o.Transition(next); err != nil {
			return err
		}
		if err = tx.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}
		if err = appendStatusChanged(ctx, tx, orderID, from, next, uc.clock.Now()); err != nil {
			return err
		}
		result = &UpdateOrderStatusResult{OrderID: orderID, From: from, To: next}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.InfoContext(ctx, "order status updated", "order_id", orderID, "from", result.From, "to", result.To)
	return result, nil
}

// mergeLines folds repeated tickets into one line and sorts by ticket id.
func mergeLines(in []LineItemInput, maxItems int) ([]LineItemInput, error) {
	if len(in) == 0 {
		return nil, errs.ErrEmptyCart
	}
	if maxItems > 0 && len(in) > maxItems {
		return nil, errs.ErrTooManyItems
	}

	byTicket := make(map[int64]int64, len(in))
	for _, item := range in {
		if item.Quantity <= 0 {
			return nil, errs.ErrInvalidQuantity
		}
		byTicket[item.TicketID] += int64(item.Quantity)
		if byTicket[item.TicketID] > math.MaxInt32 {
			return nil, errs.ErrInvalidQuantity
		}
	}

	lines := make([]LineItemInput, 0, len(byTicket))
	for id, qty := range byTicket {
		lines = append(lines, LineItemInput{TicketID: id, Quantity: int32(qty)})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].TicketID < lines[j].TicketID })
	return lines, nil
}

func voucherCode(raw *string) (string, error) {
	if raw == nil {
		return "", nil
	}
	code, err := voucher.NormalizeCode(*raw)
	if err != nil {
		// a code that cannot exist is reported the same way as an unknown one
		return "", errs.Mark(err, errs.ErrVoucherNotFound)
	}
	return code, nil
}

type orderPlacedItem struct {
	TicketID  int64           `json:"ticket_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Price     decimal.Decimal `json:"price"`
}

type orderPlacedPayload struct {
	OrderID   int64             `json:"order_id"`
	UserID    uuid.UUID         `json:"user_id"`
	Status    string            `json:"status"`
	Gross     decimal.Decimal   `json:"gross"`
	Discount  decimal.Decimal   `json:"discount"`
	Total     decimal.Decimal   `json:"total_price"`
	VoucherID *int64            `json:"voucher_id,omitempty"`
	Items     []orderPlacedItem `json:"items"`
	OrderedAt time.Time         `json:"order_date"`
}

type statusChangedPayload struct {
	OrderID   int64     `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

func appendOrderPlaced(ctx context.Context, tx shared.Tx, o *order.Order, quote order.Quote) error {
	items := make([]orderPlacedItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderPlacedItem{
			TicketID:  item.TicketID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Price:     item.Subtotal(),
		})
	}
	payload, err := json.Marshal(orderPlacedPayload{
		OrderID:   o.ID(),
		UserID:    o.UserID(),
		Status:    o.Status().String(),
		Gross:     quote.Gross,
		Discount:  quote.Discount,
		Total:     quote.Net,
		VoucherID: o.VoucherID(),
		Items:     items,
		OrderedAt: o.OrderedAt(),
	})
	if err != nil {
		return errs.Wrap(err, "marshal order.placed payload")
	}
	return tx.Outbox().Append(ctx, shared.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: shared.AggregateOrder,
		AggregateID:   o.ID(),
		EventType:     shared.EventOrderPlaced,
		Payload:       payload,
		OccurredAt:    o.OrderedAt(),
	})
}

func appendStatusChanged(ctx context.Context, tx shared.Tx, orderID int64, from, to order.Status, now time.Time) error {
	payload, err := json.Marshal(statusChangedPayload{
		OrderID:   orderID,
		From:      from.String(),
		To:        to.String(),
		ChangedAt: now,
	})
	if err != nil {
		return errs.Wrap(err, "marshal order.status_changed payload")
	}
	return tx.Outbox().Append(ctx, shared.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: shared.AggregateOrder,
		AggregateID:   orderID,
		EventType:     shared.EventOrderStatusChanged,
		Payload:       payload,
		OccurredAt:    now,
	})
}
