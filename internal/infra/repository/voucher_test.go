//go:build unit

package repository_test

import (
	"context"
	"testing"

	"ticket-checkout/internal/infra"
	"ticket-checkout/internal/infra/repository"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/shared"
	"ticket-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockVoucherQueries struct {
	mock.Mock
}

func (m *MockVoucherQueries) GetVoucherByCode(ctx context.Context, db sqlc.DBTX, code string) (sqlc.Vouchers, error) {
	args := m.Called(ctx, db, code)
	return args.Get(0).(sqlc.Vouchers), args.Error(1)
}

func (m *MockVoucherQueries) ReserveVoucherQuota(ctx context.Context, db sqlc.DBTX, id int64) (int32, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(int32), args.Error(1)
}

func (m *MockVoucherQueries) InsertVoucherRedemption(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertVoucherRedemptionParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherQueries) CountVoucherRedemptions(ctx context.Context, db sqlc.DBTX, arg sqlc.CountVoucherRedemptionsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestVoucherRepository_GetByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("success: voucher converted from row", func(t *testing.T) {
		mockQueries := new(MockVoucherQueries)
		mockDB := &mockDBTX{}
		row := builder.NewVoucherBuilder().WithCode("HOLIDAY10").WithQuota(4).BuildInfra()
		mockQueries.On("GetVoucherByCode", ctx, mockDB, "HOLIDAY10").Return(row, nil)

		v, err := repository.NewVoucherRepository(mockQueries, mockDB).GetByCode(ctx, "HOLIDAY10")

		require.NoError(t, err)
		assert.Equal(t, "HOLIDAY10", v.Code())
		assert.Equal(t, int32(4), v.Quota())
	})

	t.Run("error: unknown code", func(t *testing.T) {
		mockQueries := new(MockVoucherQueries)
		mockDB := &mockDBTX{}
		mockQueries.On("GetVoucherByCode", ctx, mockDB, "NOPE").Return(sqlc.Vouchers{}, pgx.ErrNoRows)

		_, err := repository.NewVoucherRepository(mockQueries, mockDB).GetByCode(ctx, "NOPE")

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrVoucherNotFound))
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestVoucherRepository_ReserveQuota(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	red := shared.Redemption{VoucherID: 3, UserID: userID, OrderID: 11}

	testCases := []struct {
		name       string
		setupMock  func(*MockVoucherQueries, sqlc.DBTX)
		expectErr  bool
		expectMark error
	}{
		{
			name: "success: quota taken and redemption recorded",
			setupMock: func(m *MockVoucherQueries, db sqlc.DBTX) {
				m.On("ReserveVoucherQuota", ctx, db, int64(3)).Return(int32(0), nil)
				m.On("InsertVoucherRedemption", ctx, db, sqlc.InsertVoucherRedemptionParams{
					UserID:    userID,
					VoucherID: 3,
					OrderID:   pgtype.Int8{Int64: 11, Valid: true},
				}).Return(int64(1), nil)
			},
		},
		{
			name: "error: quota exhausted skips the redemption insert",
			setupMock: func(m *MockVoucherQueries, db sqlc.DBTX) {
				m.On("ReserveVoucherQuota", ctx, db, int64(3)).Return(int32(0), pgx.ErrNoRows)
			},
			expectErr:  true,
			expectMark: errs.ErrVoucherExhausted,
		},
		{
			name: "error: redemption insert fails",
			setupMock: func(m *MockVoucherQueries, db sqlc.DBTX) {
				m.On("ReserveVoucherQuota", ctx, db, int64(3)).Return(int32(2), nil)
				m.On("InsertVoucherRedemption", ctx, db, mock.Anything).Return(int64(0), assert.AnError)
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockQueries := new(MockVoucherQueries)
			mockDB := &mockDBTX{}
			tc.setupMock(mockQueries, mockDB)

			_, err := repository.NewVoucherRepository(mockQueries, mockDB).ReserveQuota(ctx, red)

			if tc.expectErr {
				require.Error(t, err)
				if tc.expectMark != nil {
					assert.True(t, errs.Is(err, tc.expectMark))
				}
			} else {
				require.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestVoucherRepository_CountRedemptions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	mockQueries := new(MockVoucherQueries)
	mockDB := &mockDBTX{}
	mockQueries.On("CountVoucherRedemptions", ctx, mockDB, sqlc.CountVoucherRedemptionsParams{VoucherID: 3, UserID: userID}).Return(int64(2), nil)

	n, err := repository.NewVoucherRepository(mockQueries, mockDB).CountRedemptions(ctx, 3, userID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
