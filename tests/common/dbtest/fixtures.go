//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func CreateTestTicket(t *testing.T, db DBLike, price string, stock int32) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO tickets (origin, destination, date, departure_time, price, stock, class, airline)
		VALUES ('CGK', 'DPS', '2026-12-24', '08:30', $1, $2, 'economy', 'Garuda')
		RETURNING id`,
		decimal.RequireFromString(price).String(), stock).Scan(&id)
	require.NoError(t, err)
	return id
}

type VoucherFixture struct {
	Code       string
	Kind       string
	Value      string
	Quota      int32
	ValidFrom  time.Time
	ValidUntil time.Time
}

// ActiveVoucher is valid for a day either side of now.
func ActiveVoucher(code, kind, value string, quota int32) VoucherFixture {
	now := time.Now()
	return VoucherFixture{
		Code:       code,
		Kind:       kind,
		Value:      value,
		Quota:      quota,
		ValidFrom:  now.Add(-24 * time.Hour),
		ValidUntil: now.Add(24 * time.Hour),
	}
}

func CreateTestVoucher(t *testing.T, db DBLike, v VoucherFixture) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(), `
		INSERT INTO vouchers (code, discount_type, discount_value, quota, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		v.Code, v.Kind, v.Value, v.Quota, v.ValidFrom, v.ValidUntil).Scan(&id)
	require.NoError(t, err)
	return id
}

func TicketStock(t *testing.T, db DBLike, ticketID int64) int32 {
	t.Helper()

	var stock int32
	err := db.QueryRow(context.Background(), "SELECT stock FROM tickets WHERE id = $1", ticketID).Scan(&stock)
	require.NoError(t, err)
	return stock
}

func VoucherQuota(t *testing.T, db DBLike, voucherID int64) int32 {
	t.Helper()

	var quota int32
	err := db.QueryRow(context.Background(), "SELECT quota FROM vouchers WHERE id = $1", voucherID).Scan(&quota)
	require.NoError(t, err)
	return quota
}

// CountRows counts rows of a checkout table, optionally scoped to one user.
func CountRows(t *testing.T, db DBLike, table string, userID *uuid.UUID) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	args := []any{}
	if userID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *userID)
	}
	var n int
	err := db.QueryRow(context.Background(), query, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts the base catalog used by tests that do not build their own
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO tickets (origin, destination, date, departure_time, price, stock, class, airline) VALUES
		    ('CGK', 'DPS', '2026-12-24', '08:30', 1500000.00, 50, 'economy', 'Garuda'),
		    ('CGK', 'KNO', '2026-12-25', '13:15', 2100000.00, 20, 'business', 'Lion Air');
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
