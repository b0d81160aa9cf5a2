package pgconv

import (
	"database/sql"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

var (
	ErrNullNumeric     = errors.New("unexpected NULL numeric value")
	ErrNonFiniteNumber = errors.New("numeric value is NaN or infinite")
)

// DecimalFromNumeric converts a NUMERIC column without going through float64.
func DecimalFromNumeric(pn pgtype.Numeric) (decimal.Decimal, error) {
	if !pn.Valid {
		return decimal.Zero, ErrNullNumeric
	}
	if pn.NaN || pn.InfinityModifier != pgtype.Finite {
		return decimal.Zero, ErrNonFiniteNumber
	}
	if pn.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(pn.Int, pn.Exp), nil
}

func DecimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   new(big.Int).Set(d.Coefficient()),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func Int64PtrFromPgtype(pi pgtype.Int8) *int64 {
	if !pi.Valid {
		return nil
	}
	return &pi.Int64
}

func Int64PtrToPgtype(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{Valid: false}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func StringPtrFromPgtype(pt pgtype.Text) *string {
	if !pt.Valid {
		return nil
	}
	return &pt.String
}

func TimeFromPgtype(pt pgtype.Timestamptz) time.Time {
	return pt.Time
}

func TimeToPgtype(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func DateFromPgtype(pd pgtype.Date) time.Time {
	if !pd.Valid {
		return time.Time{}
	}
	return pd.Time
}

func DateToPgtype(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}

// ClockFromPgtype renders a TIME column as HH:MM.
func ClockFromPgtype(pt pgtype.Time) string {
	if !pt.Valid {
		return ""
	}
	d := time.Duration(pt.Microseconds) * time.Microsecond
	return time.Time{}.Add(d).Format("15:04")
}

func ClockToPgtype(hhmm string) (pgtype.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return pgtype.Time{}, err
	}
	us := int64(t.Hour())*int64(time.Hour/time.Microsecond) + int64(t.Minute())*int64(time.Minute/time.Microsecond)
	return pgtype.Time{Microseconds: us, Valid: true}, nil
}

func UUIDPtrFromPgtype(pu pgtype.UUID) *uuid.UUID {
	if !pu.Valid {
		return nil
	}
	id := uuid.UUID(pu.Bytes)
	return &id
}

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func StringPtrToPgtype(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: *s, Valid: true}
}
