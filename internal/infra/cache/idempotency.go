package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const processingMarker = "PROCESSING"

type IdempotencyState int

const (
	// StateAcquired means the caller owns the key and must Complete or Release it.
	StateAcquired IdempotencyState = iota
	// StateInProgress means another request holds the key.
	StateInProgress
	// StateCompleted means a stored response is available for replay.
	StateCompleted
)

// StoredResponse is what gets replayed for a repeated key. Fingerprint
// identifies the request that produced it.
type StoredResponse struct {
	Status      int    `json:"status"`
	Body        []byte `json:"body"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type IdempotencyStore struct {
	client  *redis.Client
	keyTTL  time.Duration
	lockTTL time.Duration
}

func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}

	return client, nil
}

func NewIdempotencyStore(client *redis.Client, cfg config.CheckoutConfig) *IdempotencyStore {
	return &IdempotencyStore{
		client:  client,
		keyTTL:  cfg.IdempotencyKeyTTL,
		lockTTL: cfg.IdempotencyLockTTL,
	}
}

func Key(scope, key string) string {
	return "idempotency:" + scope + ":" + key
}

// Begin claims key with SETNX. When the key already exists the current
// holder state is returned instead.
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (IdempotencyState, *StoredResponse, error) {
	acquired, err := s.client.SetNX(ctx, key, processingMarker, s.lockTTL).Result()
	if err != nil {
		return 0, nil, errs.Wrap(err, "failed to claim idempotency key")
	}
	if acquired {
		return StateAcquired, nil, nil
	}

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		// Lock expired between SETNX and GET.
		if errors.Is(err, redis.Nil) {
			return StateInProgress, nil, nil
		}
		return 0, nil, errs.Wrap(err, "failed to read idempotency key")
	}
	if val == processingMarker {
		return StateInProgress, nil, nil
	}

	resp, err := decodeResponse(val)
	if err != nil {
		return 0, nil, err
	}
	return StateCompleted, resp, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, resp StoredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return errs.Wrap(err, "failed to encode idempotent response")
	}
	if err := s.client.Set(ctx, key, raw, s.keyTTL).Err(); err != nil {
		return errs.Wrap(err, "failed to store idempotent response")
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return errs.Wrap(err, "failed to release idempotency key")
	}
	return nil
}

func decodeResponse(val string) (*StoredResponse, error) {
	var resp StoredResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, errs.Wrap(err, "failed to decode idempotent response")
	}
	return &resp, nil
}
