package queries

import (
	"context"
	"time"

	"ticket-checkout/internal/domain/order"
	"ticket-checkout/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.New("invalid cursor")

type OrderFilter struct {
	Status *order.Status
}

type OrderReadStore interface {
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*OrderView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastOrderDate time.Time, lastID int64, limit int32) ([]*OrderView, error)
	FindAllFirstPage(ctx context.Context, status *string, limit int32) ([]*OrderView, error)
	FindAllKeyset(ctx context.Context, status *string, lastOrderDate time.Time, lastID int64, limit int32) ([]*OrderView, error)
}

//go:generate mockgen -source=order.go -destination=../../../tests/mock/queries/order.go -package=queries
type OrderQueries interface {
	// ListByUser returns the caller's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
	// ListAll returns every order, newest first. Admin only.
	ListAll(ctx context.Context, filter OrderFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error)
}

type orderQueriesImpl struct {
	store OrderReadStore
}

func NewOrderQueries(store OrderReadStore) OrderQueries {
	return &orderQueriesImpl{store: store}
}

func (q *orderQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*OrderView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindByUserFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastOrderDate, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindByUserKeyset(ctx, userID, lastOrderDate, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit)
	return rows, next, nil
}

func (q *orderQueriesImpl) ListAll(ctx context.Context, filter OrderFilter, cursor *Cursor, limit int) ([]*OrderView, *Cursor, error) {
	var status *string
	if filter.Status != nil {
		if !filter.Status.IsValid() {
			return nil, nil, errs.ErrInvalidOrderStatus
		}
		s := filter.Status.String()
		status = &s
	}

	limit = ValidateLimit(limit)
	var rows []*OrderView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindAllFirstPage(ctx, status, int32(limit+1))
	} else {
		lastOrderDate, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindAllKeyset(ctx, status, lastOrderDate, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit)
	return rows, next, nil
}

func paginate(rows []*OrderView, limit int) ([]*OrderView, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	last := rows[limit-1]
	return rows[:limit], &Cursor{After: EncodeAfterCursor(last.OrderDate, last.ID)}
}
