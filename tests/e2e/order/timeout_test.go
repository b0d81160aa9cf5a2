//go:build e2e

package order_test

import (
	"context"
	"time"

	"ticket-checkout/internal/domain/order"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/infra/uow"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/commands"
	"ticket-checkout/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// TestTransactionDeadline
// =============================================================================

func (s *OrderSuite) TestTransactionDeadline() {
	s.Run("Error case: checkout blocked on a locked ticket row aborts at the deadline", func() {
		t := s.T()
		ticketID := dbtest.CreateTestTicket(t, s.DB, "300000.00", 5)

		cfg := s.Config.Checkout
		cfg.TxTimeout = 300 * time.Millisecond
		cfg.TxMaxRetries = 0
		uc := commands.NewOrderCommands(
			uow.NewPostgresUoW(s.DB, sqlc.New(), cfg, nil),
			order.NewDefaultPriceCalculator(),
			clock.NewRealClock(),
			nil,
			commands.OrderOptions{MaxItems: cfg.MaxItems},
			nil,
		)

		ctx := context.Background()
		holder, err := s.DB.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = holder.Rollback(ctx) }()
		_, err = holder.Exec(ctx, "SELECT id FROM tickets WHERE id = $1 FOR UPDATE", ticketID)
		require.NoError(t, err)

		userID := uuid.New()
		start := time.Now()
		_, err = uc.PlaceOrder(ctx, commands.PlaceOrderInput{
			UserID: userID,
			Items:  []commands.LineItemInput{{TicketID: ticketID, Quantity: 2}},
		})
		elapsed := time.Since(start)

		require.Error(t, err)
		require.True(t, errs.Is(err, errs.ErrTransactionAborted), "got %v", err)
		require.Equal(t, commands.OutcomeTransactionAborted, commands.CheckoutOutcome(err))
		require.Less(t, elapsed, 5*time.Second)

		require.NoError(t, holder.Rollback(ctx))
		require.Equal(t, int32(5), dbtest.TicketStock(t, s.DB, ticketID))
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "orders", &userID))
		require.Equal(t, 0, dbtest.CountRows(t, s.DB, "outbox_events", nil))
	})

	s.Run("Normal case: checkout completes once the lock is released in time", func() {
		t := s.T()
		ticketID := dbtest.CreateTestTicket(t, s.DB, "300000.00", 5)

		cfg := s.Config.Checkout
		cfg.TxTimeout = 5 * time.Second
		uc := commands.NewOrderCommands(
			uow.NewPostgresUoW(s.DB, sqlc.New(), cfg, nil),
			order.NewDefaultPriceCalculator(),
			clock.NewRealClock(),
			nil,
			commands.OrderOptions{MaxItems: cfg.MaxItems},
			nil,
		)

		ctx := context.Background()
		holder, err := s.DB.Begin(ctx)
		require.NoError(t, err)
		_, err = holder.Exec(ctx, "SELECT id FROM tickets WHERE id = $1 FOR UPDATE", ticketID)
		require.NoError(t, err)

		go func() {
			time.Sleep(200 * time.Millisecond)
			_ = holder.Rollback(context.Background())
		}()

		res, err := uc.PlaceOrder(ctx, commands.PlaceOrderInput{
			UserID: uuid.New(),
			Items:  []commands.LineItemInput{{TicketID: ticketID, Quantity: 2}},
		})
		require.NoError(t, err)
		require.NotZero(t, res.OrderID)
		require.Equal(t, int32(3), dbtest.TicketStock(t, s.DB, ticketID))
	})
}
