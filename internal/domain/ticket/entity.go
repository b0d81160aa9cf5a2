package ticket

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice = errors.New("ticket price cannot be negative")
	ErrNegativeStock = errors.New("ticket stock cannot be negative")
	ErrInvalidClass  = errors.New("invalid ticket class")
)

type Class string

const (
	ClassEconomy  Class = "economy"
	ClassBusiness Class = "business"
	ClassFirst    Class = "first"
)

func (c Class) IsValid() bool {
	switch c {
	case ClassEconomy, ClassBusiness, ClassFirst:
		return true
	default:
		return false
	}
}

// Ticket is a read snapshot of a catalog row. Stock only changes through
// a reservation in the catalog store, never through this value.
type Ticket struct {
	id            int64
	origin        string
	destination   string
	date          time.Time
	departureTime string
	price         decimal.Decimal
	stock         int32
	class         Class
	airline       string
}

type Attributes struct {
	Origin        string
	Destination   string
	Date          time.Time
	DepartureTime string
	Price         decimal.Decimal
	Stock         int32
	Class         Class
	Airline       string
}

func Reconstruct(id int64, attrs Attributes) (*Ticket, error) {
	if attrs.Price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if attrs.Stock < 0 {
		return nil, ErrNegativeStock
	}
	if attrs.Class != "" && !attrs.Class.IsValid() {
		return nil, ErrInvalidClass
	}
	return &Ticket{
		id:            id,
		origin:        attrs.Origin,
		destination:   attrs.Destination,
		date:          attrs.Date,
		departureTime: attrs.DepartureTime,
		price:         attrs.Price,
		stock:         attrs.Stock,
		class:         attrs.Class,
		airline:       attrs.Airline,
	}, nil
}

// CanFulfil is the optimistic pre-check; the reservation is authoritative.
func (t *Ticket) CanFulfil(quantity int32) bool {
	return quantity > 0 && t.stock >= quantity
}

func (t *Ticket) ID() int64              { return t.id }
func (t *Ticket) Origin() string         { return t.origin }
func (t *Ticket) Destination() string    { return t.destination }
func (t *Ticket) Date() time.Time        { return t.date }
func (t *Ticket) DepartureTime() string  { return t.departureTime }
func (t *Ticket) Price() decimal.Decimal { return t.price }
func (t *Ticket) Stock() int32           { return t.stock }
func (t *Ticket) Class() Class           { return t.class }
func (t *Ticket) Airline() string        { return t.airline }
