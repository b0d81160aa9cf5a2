//go:build unit

package commands_test

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/domain/ticket"
	"ticket-checkout/internal/domain/voucher"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory UnitOfWork. Transactions run one at a time and
// a failed transaction restores the state it started from.
type memStore struct {
	mu sync.Mutex

	tickets     map[int64]ticket.Attributes
	vouchers    map[string]memVoucher
	redemptions []shared.Redemption
	orders      map[int64]memOrder
	items       []memItem
	events      []shared.OutboxEvent
	nextOrderID int64

	reserveHook func(ticketID int64) error
	appendErr   error
}

type memVoucher struct {
	id    int64
	attrs voucher.Attributes
}

type memOrder struct {
	userID    uuid.UUID
	orderedAt time.Time
	total     decimal.Decimal
	status    order.Status
	voucherID *int64
}

type memItem struct {
	orderID int64
	item    order.LineItem
}

type memSnapshot struct {
	tickets     map[int64]ticket.Attributes
	vouchers    map[string]memVoucher
	redemptions []shared.Redemption
	orders      map[int64]memOrder
	items       []memItem
	events      []shared.OutboxEvent
	nextOrderID int64
}

func newMemStore() *memStore {
	return &memStore{
		tickets:  map[int64]ticket.Attributes{},
		vouchers: map[string]memVoucher{},
		orders:   map[int64]memOrder{},
	}
}

func (s *memStore) addTicket(id int64, price string, stock int32) {
	s.tickets[id] = ticket.Attributes{
		Origin:        "CGK",
		Destination:   "DPS",
		Date:          time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
		DepartureTime: "08:30",
		Price:         decimal.RequireFromString(price),
		Stock:         stock,
		Class:         ticket.ClassEconomy,
		Airline:       "Garuda",
	}
}

func (s *memStore) addVoucher(id int64, attrs voucher.Attributes) {
	s.vouchers[attrs.Code] = memVoucher{id: id, attrs: attrs}
}

func (s *memStore) stock(id int64) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tickets[id].Stock
}

func (s *memStore) quota(code string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vouchers[code].attrs.Quota
}

func (s *memStore) counts() (orders, items, redemptions, events int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders), len(s.items), len(s.redemptions), len(s.events)
}

func (s *memStore) snapshot() memSnapshot {
	return memSnapshot{
		tickets:     maps.Clone(s.tickets),
		vouchers:    maps.Clone(s.vouchers),
		redemptions: slices.Clone(s.redemptions),
		orders:      maps.Clone(s.orders),
		items:       slices.Clone(s.items),
		events:      slices.Clone(s.events),
		nextOrderID: s.nextOrderID,
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.tickets = snap.tickets
	s.vouchers = snap.vouchers
	s.redemptions = snap.redemptions
	s.orders = snap.orders
	s.items = snap.items
	s.events = snap.events
	s.nextOrderID = snap.nextOrderID
}

func (s *memStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(ctx, memTx{s: s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type memTx struct{ s *memStore }

func (t memTx) Tickets() shared.TicketRepository   { return memTickets(t) }
func (t memTx) Vouchers() shared.VoucherRepository { return memVouchers(t) }
func (t memTx) Orders() shared.OrderRepository     { return memOrders(t) }
func (t memTx) Outbox() shared.OutboxRepository    { return memOutbox(t) }

type memTickets struct{ s *memStore }

func (r memTickets) GetByID(_ context.Context, id int64) (*ticket.Ticket, error) {
	attrs, ok := r.s.tickets[id]
	if !ok {
		return nil, errs.ErrTicketNotFound
	}
	return ticket.Reconstruct(id, attrs)
}

func (r memTickets) ReserveStock(_ context.Context, id int64, qty int32) (int32, error) {
	if r.s.reserveHook != nil {
		if err := r.s.reserveHook(id); err != nil {
			return 0, err
		}
	}
	attrs, ok := r.s.tickets[id]
	if !ok {
		return 0, errs.ErrTicketNotFound
	}
	if attrs.Stock < qty {
		return 0, errs.ErrInsufficientStock
	}
	attrs.Stock -= qty
	r.s.tickets[id] = attrs
	return attrs.Stock, nil
}

type memVouchers struct{ s *memStore }

func (r memVouchers) GetByCode(_ context.Context, code string) (*voucher.Voucher, error) {
	for stored, v := range r.s.vouchers {
		if strings.EqualFold(stored, code) {
			return voucher.Reconstruct(v.id, v.attrs)
		}
	}
	return nil, errs.ErrVoucherNotFound
}

func (r memVouchers) ReserveQuota(_ context.Context, red shared.Redemption) (int32, error) {
	for code, v := range r.s.vouchers {
		if v.id != red.VoucherID {
			continue
		}
		if v.attrs.Quota <= 0 {
			return 0, errs.ErrVoucherExhausted
		}
		v.attrs.Quota--
		r.s.vouchers[code] = v
		r.s.redemptions = append(r.s.redemptions, red)
		return v.attrs.Quota, nil
	}
	return 0, errs.ErrVoucherNotFound
}

func (r memVouchers) CountRedemptions(_ context.Context, voucherID int64, userID uuid.UUID) (int64, error) {
	var n int64
	for _, red := range r.s.redemptions {
		if red.VoucherID == voucherID && red.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memOrders struct{ s *memStore }

func (r memOrders) Insert(_ context.Context, o *order.Order) (int64, error) {
	r.s.nextOrderID++
	r.s.orders[r.s.nextOrderID] = memOrder{
		userID:    o.UserID(),
		orderedAt: o.OrderedAt(),
		total:     o.Total(),
		status:    o.Status(),
		voucherID: o.VoucherID(),
	}
	return r.s.nextOrderID, nil
}

func (r memOrders) InsertItem(_ context.Context, orderID int64, item order.LineItem) (int64, error) {
	if _, ok := r.s.tickets[item.TicketID]; !ok {
		return 0, errs.ErrTicketNotFound
	}
	r.s.items = append(r.s.items, memItem{orderID: orderID, item: item})
	return int64(len(r.s.items)), nil
}

func (r memOrders) GetForUpdate(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	return order.Reconstruct(id, o.userID, o.orderedAt, o.total, o.status, o.voucherID)
}

func (r memOrders) UpdateStatus(_ context.Context, id int64, status order.Status) error {
	o, ok := r.s.orders[id]
	if !ok {
		return errs.ErrOrderNotFound
	}
	o.status = status
	r.s.orders[id] = o
	return nil
}

type memOutbox struct{ s *memStore }

func (r memOutbox) Append(_ context.Context, event shared.OutboxEvent) error {
	if r.s.appendErr != nil {
		return r.s.appendErr
	}
	r.s.events = append(r.s.events, event)
	return nil
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveCheckout(outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) count(outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, got := range o.outcomes {
		if got == outcome {
			n++
		}
	}
	return n
}
