package order

import "ticket-checkout/internal/pkg/errs"

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusIssued   Status = "issued"
	StatusCanceled Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusIssued, StatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is accepted. Only a
// canceled order is final; an issued one can still be canceled.
func (s Status) IsTerminal() bool {
	return s == StatusCanceled
}

// CanTransitionTo allows pending -> paid -> issued and cancellation from any
// state except canceled.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusPaid:
		return s == StatusPending
	case StatusIssued:
		return s == StatusPaid
	case StatusCanceled:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errs.ErrInvalidOrderStatus
	}
	return status, nil
}
