package repository

import (
	"context"
	"time"

	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"
	"ticket-checkout/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxQueries interface {
	InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error
	ClaimOutboxEvents(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOutboxEventsParams) ([]sqlc.ClaimOutboxEventsRow, error)
	MarkOutboxEventsPublished(ctx context.Context, db sqlc.DBTX, ids []uuid.UUID) error
	ReleaseOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseOutboxEventParams) error
}

type OutboxRepository struct {
	queries OutboxQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Append(ctx context.Context, event shared.OutboxEvent) error {
	if err := r.queries.InsertOutboxEvent(ctx, r.db, sqlc.InsertOutboxEventParams{
		ID:            event.ID,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     pgconv.TimeToPgtype(event.OccurredAt),
	}); err != nil {
		return infra.WrapRepoErr("failed to append outbox event", err)
	}
	return nil
}

// Claim moves up to limit pending events to processing. Events stuck in
// processing since before staleBefore are claimed again.
func (r *OutboxRepository) Claim(ctx context.Context, limit int32, staleBefore time.Time) ([]shared.OutboxEvent, error) {
	rows, err := r.queries.ClaimOutboxEvents(ctx, r.db, sqlc.ClaimOutboxEventsParams{
		StaleBefore: pgconv.TimeToPgtype(staleBefore),
		BatchSize:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}

	events := make([]shared.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, shared.OutboxEvent{
			ID:            row.ID,
			AggregateType: row.AggregateType,
			AggregateID:   row.AggregateID,
			EventType:     row.EventType,
			Payload:       row.Payload,
			OccurredAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.queries.MarkOutboxEventsPublished(ctx, r.db, ids); err != nil {
		return infra.WrapRepoErr("failed to mark outbox events published", err)
	}
	return nil
}

func (r *OutboxRepository) Release(ctx context.Context, id uuid.UUID, cause error) error {
	lastError := pgtype.Text{}
	if cause != nil {
		lastError = pgtype.Text{String: cause.Error(), Valid: true}
	}
	if err := r.queries.ReleaseOutboxEvent(ctx, r.db, sqlc.ReleaseOutboxEventParams{
		ID:        id,
		LastError: lastError,
	}); err != nil {
		return infra.WrapRepoErr("failed to release outbox event", err)
	}
	return nil
}
