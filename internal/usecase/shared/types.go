package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"

	AggregateOrder = "order"
)

type Redemption struct {
	VoucherID int64
	UserID    uuid.UUID
	OrderID   int64
}

type OutboxEvent struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   int64
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
}
