package repository

import (
	"context"

	"ticket-checkout/internal/domain/ticket"
	"ticket-checkout/internal/infra"
	sqlc "ticket-checkout/internal/infra/sqlc/generated"
	"ticket-checkout/internal/pkg/errs"
	"ticket-checkout/internal/pkg/pgconv"
)

type TicketQueries interface {
	GetTicketByID(ctx context.Context, db sqlc.DBTX, id int64) (sqlc.Tickets, error)
	ReserveTicketStock(ctx context.Context, db sqlc.DBTX, arg sqlc.ReserveTicketStockParams) (int32, error)
}

type TicketRepository struct {
	queries TicketQueries
	db      sqlc.DBTX
}

func NewTicketRepository(queries TicketQueries, db sqlc.DBTX) *TicketRepository {
	return &TicketRepository{
		queries: queries,
		db:      db,
	}
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*ticket.Ticket, error) {
	row, err := r.queries.GetTicketByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Mark(infra.WrapRepoErr("ticket not found", err, infra.KindNotFound), errs.ErrTicketNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get ticket", err)
	}

	t, err := toTicket(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert ticket row", err)
	}
	return t, nil
}

// ReserveStock is a single conditional UPDATE. No row back means the ticket
// is gone or has less than qty left.
func (r *TicketRepository) ReserveStock(ctx context.Context, id int64, qty int32) (int32, error) {
	remaining, err := r.queries.ReserveTicketStock(ctx, r.db, sqlc.ReserveTicketStockParams{
		Quantity: qty,
		ID:       id,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, errs.Mark(infra.WrapRepoErr("ticket stock exhausted", err, infra.KindConflict), errs.ErrInsufficientStock)
		}
		return 0, infra.WrapRepoErr("failed to reserve ticket stock", err)
	}
	return remaining, nil
}

func toTicket(row sqlc.Tickets) (*ticket.Ticket, error) {
	price, err := pgconv.DecimalFromNumeric(row.Price)
	if err != nil {
		return nil, err
	}
	return ticket.Reconstruct(row.ID, ticket.Attributes{
		Origin:        row.Origin,
		Destination:   row.Destination,
		Date:          pgconv.DateFromPgtype(row.Date),
		DepartureTime: pgconv.ClockFromPgtype(row.DepartureTime),
		Price:         price,
		Stock:         row.Stock,
		Class:         ticket.Class(row.Class),
		Airline:       row.Airline,
	})
}
