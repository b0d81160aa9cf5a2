//go:build unit || e2e

package builder

import (
	"time"

	"ticket-checkout/internal/domain/ticket"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type TicketBuilder struct {
	ID            int64
	Origin        string
	Destination   string
	Date          time.Time
	DepartureTime string
	Price         decimal.Decimal
	Stock         int32
	Class         ticket.Class
	Airline       string
}

func NewTicketBuilder() *TicketBuilder {
	return &TicketBuilder{
		ID:            1,
		Origin:        "CGK",
		Destination:   "DPS",
		Date:          time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
		DepartureTime: "08:30",
		Price:         decimal.RequireFromString("1500000.00"),
		Stock:         10,
		Class:         ticket.ClassEconomy,
		Airline:       "Garuda",
	}
}

func (b *TicketBuilder) With(mutate func(*TicketBuilder)) *TicketBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *TicketBuilder) BuildDomain() (*ticket.Ticket, error) {
	return ticket.Reconstruct(b.ID, ticket.Attributes{
		Origin:        b.Origin,
		Destination:   b.Destination,
		Date:          b.Date,
		DepartureTime: b.DepartureTime,
		Price:         b.Price,
		Stock:         b.Stock,
		Class:         b.Class,
		Airline:       b.Airline,
	})
}

func (b *TicketBuilder) BuildInfra() sqlc.Tickets {
	departure, _ := pgconv.ClockToPgtype(b.DepartureTime)
	return sqlc.Tickets{
		ID:            b.ID,
		Origin:        b.Origin,
		Destination:   b.Destination,
		Date:          pgconv.DateToPgtype(b.Date),
		DepartureTime: departure,
		Price:         pgconv.DecimalToNumeric(b.Price),
		Stock:         b.Stock,
		Class:         string(b.Class),
		Airline:       b.Airline,
		CreatedAt:     pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
}

// Fluent builder methods
func (b *TicketBuilder) WithID(id int64) *TicketBuilder {
	b.ID = id
	return b
}

func (b *TicketBuilder) WithPrice(price string) *TicketBuilder {
	b.Price = decimal.RequireFromString(price)
	return b
}

func (b *TicketBuilder) WithStock(stock int32) *TicketBuilder {
	b.Stock = stock
	return b
}

func (b *TicketBuilder) SoldOut() *TicketBuilder {
	b.Stock = 0
	return b
}
