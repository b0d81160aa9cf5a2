//go:build unit

package order_test

import (
	"testing"
	"time"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/domain/voucher"
	"ticket-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustVoucher(t *testing.T, kind voucher.Kind, value string, quota int32) *voucher.Voucher {
	t.Helper()
	v, err := voucher.Reconstruct(7, voucher.Attributes{
		Code:       "PROMO",
		Kind:       kind,
		Value:      dec(value),
		Quota:      quota,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
	})
	require.NoError(t, err)
	return v
}

func assertQuote(t *testing.T, q order.Quote, gross, discount, net string) {
	t.Helper()
	assert.True(t, dec(gross).Equal(q.Gross), "gross: want %s, got %s", gross, q.Gross)
	assert.True(t, dec(discount).Equal(q.Discount), "discount: want %s, got %s", discount, q.Discount)
	assert.True(t, dec(net).Equal(q.Net), "net: want %s, got %s", net, q.Net)
}

func TestDefaultPriceCalculator_Calculate(t *testing.T) {
	calc := order.NewDefaultPriceCalculator()
	twoSeats := []order.LineItem{{TicketID: 1, Quantity: 2, UnitPrice: dec("500000")}}

	t.Run("no voucher equals sum of subtotals", func(t *testing.T) {
		items := []order.LineItem{
			{TicketID: 1, Quantity: 2, UnitPrice: dec("500000")},
			{TicketID: 2, Quantity: 3, UnitPrice: dec("125000.50")},
		}
		q, err := calc.Calculate(items, nil, now)
		require.NoError(t, err)
		assertQuote(t, q, "1375001.50", "0", "1375001.50")
	})

	t.Run("percent voucher", func(t *testing.T) {
		q, err := calc.Calculate(twoSeats, mustVoucher(t, voucher.KindPercent, "10", 1), now)
		require.NoError(t, err)
		assertQuote(t, q, "1000000", "100000", "900000")
	})

	t.Run("nominal voucher clamped to gross", func(t *testing.T) {
		q, err := calc.Calculate(twoSeats, mustVoucher(t, voucher.KindNominal, "2000000", 1), now)
		require.NoError(t, err)
		assertQuote(t, q, "1000000", "1000000", "0")
	})

	t.Run("exhausted voucher", func(t *testing.T) {
		_, err := calc.Calculate(twoSeats, mustVoucher(t, voucher.KindPercent, "10", 0), now)
		assert.ErrorIs(t, err, errs.ErrVoucherExhausted)
	})

	t.Run("voucher outside window", func(t *testing.T) {
		_, err := calc.Calculate(twoSeats, mustVoucher(t, voucher.KindPercent, "10", 3), now.Add(2*time.Hour))
		assert.ErrorIs(t, err, errs.ErrVoucherExpired)
	})

	t.Run("deterministic", func(t *testing.T) {
		v := mustVoucher(t, voucher.KindPercent, "15", 3)
		first, err := calc.Calculate(twoSeats, v, now)
		require.NoError(t, err)
		second, err := calc.Calculate(twoSeats, v, now)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestLineItem_Subtotal(t *testing.T) {
	item, err := order.NewLineItem(3, 4, dec("99.99"))
	require.NoError(t, err)
	assert.True(t, dec("399.96").Equal(item.Subtotal()))

	_, err = order.NewLineItem(3, 0, dec("99.99"))
	assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
}
