//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticket-checkout/internal/infra/repository"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOutboxQueries struct {
	mock.Mock
}

func (m *MockOutboxQueries) InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockOutboxQueries) ClaimOutboxEvents(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOutboxEventsParams) ([]sqlc.ClaimOutboxEventsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.ClaimOutboxEventsRow), args.Error(1)
}

func (m *MockOutboxQueries) MarkOutboxEventsPublished(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) error {
	return m.Called(ctx, db, ids).Error(0)
}

func (m *MockOutboxQueries) ReleaseOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseOutboxEventParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func TestOutboxRepository_Append(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	event := shared.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: shared.AggregateOrder,
		AggregateID:   42,
		EventType:     shared.EventOrderPlaced,
		Payload:       []byte(`{"order_id":42}`),
		OccurredAt:    now,
	}

	mockQueries := new(MockOutboxQueries)
	mockDB := &mockDBTX{}
	mockQueries.On("InsertOutboxEvent", ctx, mockDB, sqlc.InsertOutboxEventParams{
		ID:            event.ID,
		AggregateType: "order",
		AggregateID:   42,
		EventType:     "order.placed",
		Payload:       event.Payload,
		CreatedAt:     pgconv.TimeToPgtype(now),
	}).Return(nil)

	require.NoError(t, repository.NewOutboxRepository(mockQueries, mockDB).Append(ctx, event))
	mockQueries.AssertExpectations(t)
}

func TestOutboxRepository_Claim(t *testing.T) {
	ctx := context.Background()
	stale := time.Now().Add(-time.Minute)
	id := uuid.New()

	mockQueries := new(MockOutboxQueries)
	mockDB := &mockDBTX{}
	mockQueries.On("ClaimOutboxEvents", ctx, mockDB, sqlc.ClaimOutboxEventsParams{
		StaleBefore: pgconv.TimeToPgtype(stale),
		BatchSize:   10,
	}).Return([]sqlc.ClaimOutboxEventsRow{{
		ID:            id,
		AggregateType: "order",
		AggregateID:   7,
		EventType:     "order.placed",
		Payload:       []byte(`{}`),
		Attempts:      1,
		CreatedAt:     pgconv.TimeToPgtype(stale),
	}}, nil)

	events, err := repository.NewOutboxRepository(mockQueries, mockDB).Claim(ctx, 10, stale)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, int64(7), events[0].AggregateID)
}

func TestOutboxRepository_MarkPublished(t *testing.T) {
	ctx := context.Background()

	t.Run("no ids is a no-op", func(t *testing.T) {
		mockQueries := new(MockOutboxQueries)
		require.NoError(t, repository.NewOutboxRepository(mockQueries, &mockDBTX{}).MarkPublished(ctx, nil))
		mockQueries.AssertNotCalled(t, "MarkOutboxEventsPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ids are marked in one statement", func(t *testing.T) {
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		mockQueries := new(MockOutboxQueries)
		mockDB := &mockDBTX{}
		mockQueries.On("MarkOutboxEventsPublished", ctx, mockDB, ids).Return(nil)

		require.NoError(t, repository.NewOutboxRepository(mockQueries, mockDB).MarkPublished(ctx, ids))
		mockQueries.AssertExpectations(t)
	})
}

func TestOutboxRepository_Release(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	mockQueries := new(MockOutboxQueries)
	mockDB := &mockDBTX{}
	mockQueries.On("ReleaseOutboxEvent", ctx, mockDB, sqlc.ReleaseOutboxEventParams{
		ID:        id,
		LastError: pgtype.Text{String: "broker down", Valid: true},
	}).Return(nil)

	require.NoError(t, repository.NewOutboxRepository(mockQueries, mockDB).Release(ctx, id, errors.New("broker down")))
	mockQueries.AssertExpectations(t)
}
