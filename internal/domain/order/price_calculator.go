package order

import (
	"time"

	"ticket-checkout/internal/domain/voucher"

	"github.com/shopspring/decimal"
)

type Quote struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
}

type PriceCalculator interface {
	Calculate(items []LineItem, v *voucher.Voucher, now time.Time) (Quote, error)
}

type DefaultPriceCalculator struct{}

func NewDefaultPriceCalculator() *DefaultPriceCalculator {
	return &DefaultPriceCalculator{}
}

// Calculate sums the line subtotals and applies the voucher, if any. The
// voucher must be inside its validity window and still have quota.
func (pc *DefaultPriceCalculator) Calculate(items []LineItem, v *voucher.Voucher, now time.Time) (Quote, error) {
	gross := decimal.Zero
	for _, item := range items {
		gross = gross.Add(item.Subtotal())
	}

	quote := Quote{Gross: gross, Discount: decimal.Zero, Net: gross}
	if v == nil {
		return quote, nil
	}
	if err := v.ValidateAt(now); err != nil {
		return Quote{}, err
	}

	quote.Discount = v.DiscountFor(gross)
	quote.Net = gross.Sub(quote.Discount)
	return quote, nil
}
