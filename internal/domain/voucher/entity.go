package voucher

import (
	"errors"
	"strings"
	"time"

	"ticket-checkout/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCode     = errors.New("invalid voucher code")
	ErrInvalidKind     = errors.New("invalid voucher discount kind")
	ErrInvalidValue    = errors.New("invalid voucher discount value")
	ErrNegativeQuota   = errors.New("voucher quota cannot be negative")
	ErrInvalidValidity = errors.New("voucher valid_until is before valid_from")
)

const maxCodeLength = 64

type Kind string

const (
	KindPercent Kind = "percent"
	KindNominal Kind = "nominal"
)

func (k Kind) IsValid() bool {
	return k == KindPercent || k == KindNominal
}

func (k Kind) String() string {
	return string(k)
}

var hundred = decimal.NewFromInt(100)

// NormalizeCode trims and upper-cases a code as typed by a customer.
// Stored codes keep their original case; lookups compare upper(code).
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > maxCodeLength {
		return "", ErrInvalidCode
	}
	return code, nil
}

type Voucher struct {
	id         int64
	code       string
	kind       Kind
	value      decimal.Decimal
	quota      int32
	validFrom  time.Time
	validUntil time.Time
}

type Attributes struct {
	Code       string
	Kind       Kind
	Value      decimal.Decimal
	Quota      int32
	ValidFrom  time.Time
	ValidUntil time.Time
}

func Reconstruct(id int64, attrs Attributes) (*Voucher, error) {
	if !attrs.Kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if attrs.Value.IsNegative() {
		return nil, ErrInvalidValue
	}
	if attrs.Kind == KindPercent && attrs.Value.GreaterThan(hundred) {
		return nil, ErrInvalidValue
	}
	if attrs.Quota < 0 {
		return nil, ErrNegativeQuota
	}
	if attrs.ValidUntil.Before(attrs.ValidFrom) {
		return nil, ErrInvalidValidity
	}
	return &Voucher{
		id:         id,
		code:       attrs.Code,
		kind:       attrs.Kind,
		value:      attrs.Value,
		quota:      attrs.Quota,
		validFrom:  attrs.ValidFrom,
		validUntil: attrs.ValidUntil,
	}, nil
}

// IsActiveAt reports whether now falls inside [validFrom, validUntil].
func (v *Voucher) IsActiveAt(now time.Time) bool {
	return !now.Before(v.validFrom) && !now.After(v.validUntil)
}

// ValidateAt checks the validity window first, then the remaining quota.
func (v *Voucher) ValidateAt(now time.Time) error {
	if !v.IsActiveAt(now) {
		return errs.ErrVoucherExpired
	}
	if v.quota <= 0 {
		return errs.ErrVoucherExhausted
	}
	return nil
}

// DiscountFor returns the discount on gross, never more than gross itself.
func (v *Voucher) DiscountFor(gross decimal.Decimal) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	var discount decimal.Decimal
	switch v.kind {
	case KindPercent:
		discount = gross.Mul(v.value).Div(hundred)
	case KindNominal:
		discount = v.value
	}
	if discount.GreaterThan(gross) {
		discount = gross
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return discount.Round(2)
}

func (v *Voucher) ID() int64              { return v.id }
func (v *Voucher) Code() string           { return v.code }
func (v *Voucher) Kind() Kind             { return v.kind }
func (v *Voucher) Value() decimal.Decimal { return v.value }
func (v *Voucher) Quota() int32           { return v.quota }
func (v *Voucher) ValidFrom() time.Time   { return v.validFrom }
func (v *Voucher) ValidUntil() time.Time  { return v.validUntil }
