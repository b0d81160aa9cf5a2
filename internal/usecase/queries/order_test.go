//go:build unit

package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/queries"
	queriesmock "ticket-checkout/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type sameInstant struct{ t time.Time }

func (m sameInstant) Matches(x any) bool {
	got, ok := x.(time.Time)
	return ok && got.Equal(m.t)
}

func (m sameInstant) String() string { return fmt.Sprintf("is the same instant as %s", m.t) }

func views(n int) []*queries.OrderView {
	base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	out := make([]*queries.OrderView, 0, n)
	for i := range n {
		out = append(out, &queries.OrderView{
			ID:         int64(100 - i),
			UserID:     uuid.New(),
			OrderDate:  base.Add(-time.Duration(i) * time.Minute),
			TotalPrice: decimal.NewFromInt(1500000),
			Status:     "pending",
		})
	}
	return out
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("first page with a next cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		rows := views(3)
		store.EXPECT().FindByUserFirstPage(ctx, userID, int32(3)).Return(rows, nil)

		got, next, err := queries.NewOrderQueries(store).ListByUser(ctx, userID, nil, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, next)

		lastAt, lastID, err := queries.DecodeAfterCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, rows[1].ID, lastID)
		assert.True(t, lastAt.Equal(rows[1].OrderDate))
	})

	t.Run("last page has no cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		store.EXPECT().FindByUserFirstPage(ctx, userID, int32(3)).Return(views(2), nil)

		got, next, err := queries.NewOrderQueries(store).ListByUser(ctx, userID, &queries.Cursor{}, 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Nil(t, next)
	})

	t.Run("keyset page decodes the cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
		cursor := &queries.Cursor{After: queries.EncodeAfterCursor(at, 42)}
		store.EXPECT().
			FindByUserKeyset(ctx, userID, sameInstant{at}, int64(42), int32(21)).
			Return(nil, nil)

		got, next, err := queries.NewOrderQueries(store).ListByUser(ctx, userID, cursor, 0)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Nil(t, next)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		store.EXPECT().FindByUserFirstPage(ctx, userID, int32(queries.MaxListLimit+1)).Return(nil, nil)

		_, _, err := queries.NewOrderQueries(store).ListByUser(ctx, userID, nil, 10_000)
		require.NoError(t, err)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)

		_, _, err := queries.NewOrderQueries(store).ListByUser(ctx, userID, &queries.Cursor{After: "not-a-cursor"}, 10)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		store.EXPECT().FindByUserFirstPage(gomock.Any(), userID, gomock.Any()).Return(nil, errs.New("db down"))

		_, _, err := queries.NewOrderQueries(store).ListByUser(ctx, userID, nil, 10)
		assert.EqualError(t, err, "db down")
	})
}

func TestListAll(t *testing.T) {
	ctx := context.Background()

	t.Run("status filter is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		paid := order.StatusPaid
		store.EXPECT().
			FindAllFirstPage(ctx, gomock.Eq(ptr("paid")), int32(11)).
			Return(views(1), nil)

		got, next, err := queries.NewOrderQueries(store).ListAll(ctx, queries.OrderFilter{Status: &paid}, nil, 10)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Nil(t, next)
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		at := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		store.EXPECT().
			FindAllKeyset(ctx, gomock.Nil(), sameInstant{at}, int64(7), int32(6)).
			Return(views(6), nil)

		got, next, err := queries.NewOrderQueries(store).ListAll(ctx, queries.OrderFilter{}, &queries.Cursor{After: queries.EncodeAfterCursor(at, 7)}, 5)
		require.NoError(t, err)
		assert.Len(t, got, 5)
		assert.NotNil(t, next)
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)
		bogus := order.Status("refunded")

		_, _, err := queries.NewOrderQueries(store).ListAll(ctx, queries.OrderFilter{Status: &bogus}, nil, 10)
		assert.True(t, errs.Is(err, errs.ErrInvalidOrderStatus))
	})

	t.Run("malformed cursor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockOrderReadStore(ctrl)

		_, _, err := queries.NewOrderQueries(store).ListAll(ctx, queries.OrderFilter{}, &queries.Cursor{After: "djI6MS0y"}, 10)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2026, 10, 19, 10, 0, 0, 123456000, time.UTC)

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, 99))
	require.NoError(t, err)
	assert.True(t, gotAt.Equal(at))
	assert.Equal(t, int64(99), gotID)

	for _, bad := range []string{"", "%%%", "djE6YWJj", "djE6MS1h"} {
		_, _, err := queries.DecodeAfterCursor(bad)
		assert.Error(t, err, bad)
	}
}

func ptr[T any](v T) *T { return &v }
