//go:build unit || e2e

package builder

import (
	"time"

	"ticket-checkout/internal/domain/voucher"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type VoucherBuilder struct {
	ID         int64
	Code       string
	Kind       voucher.Kind
	Value      decimal.Decimal
	Quota      int32
	ValidFrom  time.Time
	ValidUntil time.Time
}

func NewVoucherBuilder() *VoucherBuilder {
	now := time.Now()
	return &VoucherBuilder{
		ID:         1,
		Code:       "HOLIDAY10",
		Kind:       voucher.KindPercent,
		Value:      decimal.NewFromInt(10),
		Quota:      100,
		ValidFrom:  now.Add(-24 * time.Hour),
		ValidUntil: now.Add(24 * time.Hour),
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *VoucherBuilder) BuildDomain() (*voucher.Voucher, error) {
	return voucher.Reconstruct(b.ID, voucher.Attributes{
		Code:       b.Code,
		Kind:       b.Kind,
		Value:      b.Value,
		Quota:      b.Quota,
		ValidFrom:  b.ValidFrom,
		ValidUntil: b.ValidUntil,
	})
}

func (b *VoucherBuilder) BuildInfra() sqlc.Vouchers {
	return sqlc.Vouchers{
		ID:            b.ID,
		Code:          b.Code,
		DiscountType:  string(b.Kind),
		DiscountValue: pgconv.DecimalToNumeric(b.Value),
		Quota:         b.Quota,
		ValidFrom:     pgconv.TimeToPgtype(b.ValidFrom),
		ValidUntil:    pgconv.TimeToPgtype(b.ValidUntil),
		CreatedAt:     pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
}

// Fluent builder methods
func (b *VoucherBuilder) WithCode(code string) *VoucherBuilder {
	b.Code = code
	return b
}

func (b *VoucherBuilder) WithQuota(quota int32) *VoucherBuilder {
	b.Quota = quota
	return b
}

func (b *VoucherBuilder) AsNominal(amount string) *VoucherBuilder {
	b.Kind = voucher.KindNominal
	b.Value = decimal.RequireFromString(amount)
	return b
}

func (b *VoucherBuilder) AsPercent(percent int64) *VoucherBuilder {
	b.Kind = voucher.KindPercent
	b.Value = decimal.NewFromInt(percent)
	return b
}

func (b *VoucherBuilder) AsExpired() *VoucherBuilder {
	b.ValidFrom = time.Now().Add(-48 * time.Hour)
	b.ValidUntil = time.Now().Add(-24 * time.Hour)
	return b
}
