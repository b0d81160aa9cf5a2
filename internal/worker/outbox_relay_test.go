//go:build unit

package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu          sync.Mutex
	pending     []shared.OutboxEvent
	claimErr    error
	staleBefore time.Time
	published   []uuid.UUID
	released    map[uuid.UUID]error
}

func (s *fakeStore) Claim(_ context.Context, limit int32, staleBefore time.Time) ([]shared.OutboxEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staleBefore = staleBefore
	if s.claimErr != nil {
		return nil, s.claimErr
	}
	n := min(int(limit), len(s.pending))
	out := s.pending[:n]
	s.pending = s.pending[n:]
	return out, nil
}

func (s *fakeStore) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, ids...)
	return nil
}

func (s *fakeStore) Release(_ context.Context, id uuid.UUID, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released == nil {
		s.released = map[uuid.UUID]error{}
	}
	s.released[id] = cause
	return nil
}

type fakePublisher struct {
	sent   []messaging.Message
	failOn map[string]bool
}

func (p *fakePublisher) Publish(_ context.Context, msgs ...messaging.Message) error {
	for _, m := range msgs {
		if p.failOn[string(m.Key)] {
			return assert.AnError
		}
		p.sent = append(p.sent, m)
	}
	return nil
}

type countingObserver struct {
	published int
	failed    int
}

func (o *countingObserver) Published(n int) { o.published += n }
func (o *countingObserver) Failed(n int)    { o.failed += n }

func newEvent(orderID int64, eventType string) shared.OutboxEvent {
	return shared.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: shared.AggregateOrder,
		AggregateID:   orderID,
		EventType:     eventType,
		Payload:       []byte(`{"order_id":1}`),
		OccurredAt:    time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOutboxRelay_ProcessBatch(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := config.OutboxConfig{PollInterval: time.Second, BatchSize: 2}

	t.Run("publishes a batch and marks it", func(t *testing.T) {
		first := newEvent(1, shared.EventOrderPlaced)
		second := newEvent(2, shared.EventOrderPlaced)
		third := newEvent(3, shared.EventOrderStatusChanged)
		store := &fakeStore{pending: []shared.OutboxEvent{first, second, third}}
		pub := &fakePublisher{}
		obs := &countingObserver{}
		relay := NewOutboxRelay(store, pub, obs, clock.NewMockClock(now), cfg, nil)

		n, err := relay.ProcessBatch(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, n)
		assert.Equal(t, []uuid.UUID{first.ID, second.ID}, store.published)
		assert.Len(t, store.pending, 1)
		assert.Equal(t, now.Add(-staleAfter), store.staleBefore)
		assert.Equal(t, 2, obs.published)

		var env Envelope
		require.NoError(t, json.Unmarshal(pub.sent[0].Value, &env))
		assert.Equal(t, first.ID, env.ID)
		assert.Equal(t, shared.EventOrderPlaced, env.Type)
		assert.Equal(t, int64(1), env.AggregateID)
		assert.JSONEq(t, `{"order_id":1}`, string(env.Payload))
		assert.Equal(t, "1", string(pub.sent[0].Key))
		assert.Equal(t, shared.EventOrderPlaced, pub.sent[0].Headers["event_type"])
	})

	t.Run("releases events that fail to publish", func(t *testing.T) {
		ok := newEvent(1, shared.EventOrderPlaced)
		bad := newEvent(2, shared.EventOrderPlaced)
		store := &fakeStore{pending: []shared.OutboxEvent{ok, bad}}
		pub := &fakePublisher{failOn: map[string]bool{"2": true}}
		obs := &countingObserver{}
		relay := NewOutboxRelay(store, pub, obs, clock.NewMockClock(now), cfg, nil)

		n, err := relay.ProcessBatch(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, n)
		assert.Equal(t, []uuid.UUID{ok.ID}, store.published)
		require.Contains(t, store.released, bad.ID)
		assert.ErrorIs(t, store.released[bad.ID], assert.AnError)
		assert.Equal(t, 1, obs.failed)
	})

	t.Run("empty outbox is a no-op", func(t *testing.T) {
		store := &fakeStore{}
		relay := NewOutboxRelay(store, &fakePublisher{}, nil, clock.NewMockClock(now), cfg, nil)

		n, err := relay.ProcessBatch(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, store.published)
	})

	t.Run("claim failure is returned", func(t *testing.T) {
		store := &fakeStore{claimErr: assert.AnError}
		relay := NewOutboxRelay(store, &fakePublisher{}, nil, clock.NewMockClock(now), cfg, nil)

		_, err := relay.ProcessBatch(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestOutboxRelay_RunStopsOnCancel(t *testing.T) {
	store := &fakeStore{pending: []shared.OutboxEvent{newEvent(1, shared.EventOrderPlaced)}}
	pub := &fakePublisher{}
	relay := NewOutboxRelay(store, pub, nil, clock.NewRealClock(), config.OutboxConfig{PollInterval: 10 * time.Millisecond, BatchSize: 10}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.published) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
