//go:build unit

package uow

import (
	"context"
	"testing"
	"time"

	"ticket-checkout/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantAborted bool
	}{
		{name: "nil stays nil", err: nil},
		{name: "voucher rejection passes through", err: errs.Wrap(errs.ErrVoucherExhausted, "reserve quota")},
		{name: "stock rejection passes through", err: errs.ErrInsufficientStock},
		{name: "ticket lookup rejection passes through", err: errs.Mark(errs.New("no rows"), errs.ErrTicketNotFound)},
		{name: "driver error is aborted", err: &pgconn.PgError{Code: "08006"}, wantAborted: true},
		{name: "deadline is aborted", err: context.DeadlineExceeded, wantAborted: true},
		{name: "begin failure is aborted", err: errs.Mark(errs.New("dial"), errTransactionBegin), wantAborted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.wantAborted, errs.Is(got, errs.ErrTransactionAborted))
			assert.Equal(t, !tt.wantAborted, errs.IsRejection(got))
		})
	}
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(&pgconn.PgError{Code: pgErrCodeSerializationFailure}))
	assert.True(t, isRetryableError(errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "update")))
	assert.False(t, isRetryableError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isRetryableError(assert.AnError))
}

func TestShouldRetry(t *testing.T) {
	retryable := &pgconn.PgError{Code: pgErrCodeSerializationFailure}

	assert.True(t, shouldRetry(retryable, 0, 2))
	assert.True(t, shouldRetry(retryable, 1, 2))
	assert.False(t, shouldRetry(retryable, 2, 2))
	assert.False(t, shouldRetry(assert.AnError, 0, 2))
}

func TestCalculateBackoff(t *testing.T) {
	base := 50 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		want := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, want)
		assert.Less(t, got, want+want/5+time.Nanosecond)
	}
}
