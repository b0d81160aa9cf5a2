package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"ticket-checkout/internal/infra/messaging"
	"ticket-checkout/internal/pkg/clock"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

// Rows left in processing longer than this are assumed orphaned by a
// crashed relay and get claimed again.
const staleAfter = time.Minute

type OutboxStore interface {
	Claim(ctx context.Context, limit int32, staleBefore time.Time) ([]shared.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
	Release(ctx context.Context, id uuid.UUID, cause error) error
}

type Publisher interface {
	Publish(ctx context.Context, msgs ...messaging.Message) error
}

type RelayObserver interface {
	Published(n int)
	Failed(n int)
}

// Envelope is the Kafka message value for every outbox event.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	Type          string          `json:"type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   int64           `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

type OutboxRelay struct {
	store        OutboxStore
	publisher    Publisher
	observer     RelayObserver
	clock        clock.Clock
	logger       *slog.Logger
	pollInterval time.Duration
	batchSize    int32
	sendTimeout  time.Duration
}

func NewOutboxRelay(
	store OutboxStore,
	publisher Publisher,
	observer RelayObserver,
	clk clock.Clock,
	cfg config.OutboxConfig,
	logger *slog.Logger,
) *OutboxRelay {
	if logger == nil {
		logger = slog.Default()
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 50
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &OutboxRelay{
		store:        store,
		publisher:    publisher,
		observer:     observer,
		clock:        clk,
		logger:       logger,
		pollInterval: interval,
		batchSize:    batch,
		sendTimeout:  5 * time.Second,
	}
}

// Run polls until ctx is canceled.
func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", "interval", r.pollInterval.String(), "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.ProcessBatch(ctx); err != nil {
				r.logger.Error("outbox batch failed", "error", err.Error())
			}
		}
	}
}

// ProcessBatch claims one batch and publishes it. It returns the number of
// events that reached Kafka.
func (r *OutboxRelay) ProcessBatch(ctx context.Context) (int, error) {
	events, err := r.store.Claim(ctx, r.batchSize, r.clock.Now().Add(-staleAfter))
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]uuid.UUID, 0, len(events))
	failed := 0
	for _, e := range events {
		msg, err := toMessage(e)
		if err == nil {
			sendCtx, cancel := context.WithTimeout(ctx, r.sendTimeout)
			err = r.publisher.Publish(sendCtx, msg)
			cancel()
		}
		if err != nil {
			failed++
			r.logger.Warn("outbox publish failed", "event_id", e.ID.String(), "event_type", e.EventType, "error", err.Error())
			if relErr := r.store.Release(ctx, e.ID, err); relErr != nil {
				r.logger.Error("outbox release failed", "event_id", e.ID.String(), "error", relErr.Error())
			}
			continue
		}
		published = append(published, e.ID)
	}

	if r.observer != nil {
		r.observer.Published(len(published))
		r.observer.Failed(failed)
	}

	if err := r.store.MarkPublished(ctx, published); err != nil {
		return 0, err
	}
	if len(published) > 0 {
		r.logger.Debug("outbox events published", "count", len(published))
	}
	return len(published), nil
}

func toMessage(e shared.OutboxEvent) (messaging.Message, error) {
	value, err := json.Marshal(Envelope{
		ID:            e.ID,
		Type:          e.EventType,
		AggregateType: e.AggregateType,
		AggregateID:   e.AggregateID,
		OccurredAt:    e.OccurredAt.UTC(),
		Payload:       json.RawMessage(e.Payload),
	})
	if err != nil {
		return messaging.Message{}, err
	}
	return messaging.Message{
		Key:   []byte(strconv.FormatInt(e.AggregateID, 10)),
		Value: value,
		Headers: map[string]string{
			"event_type": e.EventType,
			"event_id":   e.ID.String(),
		},
	}, nil
}
