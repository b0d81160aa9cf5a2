package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"ticket-checkout/internal/infra/repository"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool       *pgxpool.Pool
	q          *sqlc.Queries
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *sqlc.Queries, cfg config.CheckoutConfig, logger *slog.Logger) shared.UnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUoW{
		pool:       pool,
		q:          q,
		timeout:    cfg.TxTimeout,
		maxRetries: max(cfg.TxMaxRetries, 0),
		backoff:    50 * time.Millisecond,
		logger:     logger,
	}
}

// Within runs fn in a READ COMMITTED transaction. Stock and quota are
// guarded by conditional UPDATEs, which take the row lock themselves.
// Any failure that is not a business rejection comes back marked as
// errs.ErrTransactionAborted.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}
	return classify(u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn))
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= u.maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			q:    u.q,
		}

		err = callFn(ctx, pgxTx, tx, fn)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		// Rollback must not inherit an expired deadline.
		rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		if rollbackErr := pgxTx.Rollback(rbCtx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}
		cancel()

		if !shouldRetry(err, attempt, u.maxRetries) {
			if attempt == u.maxRetries && isRetryableError(err) {
				u.logger.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, u.backoff)

		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

// callFn rolls back before letting a panic from fn continue.
func callFn(ctx context.Context, pgxTx pgx.Tx, tx shared.Tx, fn func(ctx context.Context, tx shared.Tx) error) error {
	defer func() {
		if r := recover(); r != nil {
			rbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
			_ = pgxTx.Rollback(rbCtx)
			cancel()
			panic(r)
		}
	}()
	return fn(ctx, tx)
}

func classify(err error) error {
	if err == nil || errs.IsRejection(err) {
		return err
	}
	return errs.Mark(err, errs.ErrTransactionAborted)
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx sqlc.DBTX
	q    *sqlc.Queries

	// Lazy-initialized repositories
	ticketRepo  shared.TicketRepository
	voucherRepo shared.VoucherRepository
	orderRepo   shared.OrderRepository
	outboxRepo  shared.OutboxRepository
}

func (t *pgTx) Tickets() shared.TicketRepository {
	if t.ticketRepo == nil {
		t.ticketRepo = repository.NewTicketRepository(t.q, t.dbtx)
	}
	return t.ticketRepo
}

func (t *pgTx) Vouchers() shared.VoucherRepository {
	if t.voucherRepo == nil {
		t.voucherRepo = repository.NewVoucherRepository(t.q, t.dbtx)
	}
	return t.voucherRepo
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.q, t.dbtx)
	}
	return t.orderRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.q, t.dbtx)
	}
	return t.outboxRepo
}
