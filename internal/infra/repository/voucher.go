package repository

import (
	"context"

	"ticket-checkout/internal/domain/voucher"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/pkg/pgconv"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VoucherQueries interface {
	GetVoucherByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Vouchers, error)
	ReserveVoucherQuota(ctx context.Context, db sqlc.DBTX, id int64) (int32, error)
	InsertVoucherRedemption(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertVoucherRedemptionParams) (int64, error)
	CountVoucherRedemptions(ctx context.Context, db sqlc.DBTX, arg sqlc.CountVoucherRedemptionsParams) (int64, error)
}

type VoucherRepository struct {
	queries VoucherQueries
	db      sqlc.DBTX
}

func NewVoucherRepository(queries VoucherQueries, db sqlc.DBTX) *VoucherRepository {
	return &VoucherRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VoucherRepository) GetByCode(ctx context.Context, code string) (*voucher.Voucher, error) {
	row, err := r.queries.GetVoucherByCode(ctx, r.db, code)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("voucher not found", err, infra.KindNotFound), errs.ErrVoucherNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get voucher by code", err)
	}

	v, err := toVoucher(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert voucher row", err)
	}
	return v, nil
}

// ReserveQuota decrements quota only while it is positive, then appends the
// redemption. Both statements share the caller's transaction.
func (r *VoucherRepository) ReserveQuota(ctx context.Context, red shared.Redemption) (int32, error) {
	remaining, err := r.queries.ReserveVoucherQuota(ctx, r.db, red.VoucherID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, errs.Mark(infra.WrapRepoErr("voucher quota exhausted", err, infra.KindConflict), errs.ErrVoucherExhausted)
		}
		return 0, infra.WrapRepoErr("failed to reserve voucher quota", err)
	}

	_, err = r.queries.InsertVoucherRedemption(ctx, r.db, sqlc.InsertVoucherRedemptionParams{
		UserID:    red.UserID,
		VoucherID: red.VoucherID,
		OrderID:   pgtype.Int8{Int64: red.OrderID, Valid: red.OrderID != 0},
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert voucher redemption", err)
	}
	return remaining, nil
}

func (r *VoucherRepository) CountRedemptions(ctx context.Context, voucherID int64, userID uuid.UUID) (int64, error) {
	n, err := r.queries.CountVoucherRedemptions(ctx, r.db, sqlc.CountVoucherRedemptionsParams{
		VoucherID: voucherID,
		UserID:    userID,
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count voucher redemptions", err)
	}
	return n, nil
}

func toVoucher(row sqlc.Vouchers) (*voucher.Voucher, error) {
	value, err := pgconv.DecimalFromNumeric(row.DiscountValue)
	if err != nil {
		return nil, err
	}
	return voucher.Reconstruct(row.ID, voucher.Attributes{
		Code:       row.Code,
		Kind:       voucher.Kind(row.DiscountType),
		Value:      value,
		Quota:      row.Quota,
		ValidFrom:  pgconv.TimeFromPgtype(row.ValidFrom),
		ValidUntil: pgconv.TimeFromPgtype(row.ValidUntil),
	})
}
