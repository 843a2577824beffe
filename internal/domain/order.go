package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusAccepted   OrderStatus = "ACCEPTED"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
	StatusRejected   OrderStatus = "REJECTED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// transitions is the whole lifecycle: anything absent here is invalid.
// REJECTED is reachable from ACCEPTED as well as PENDING because funding
// happens atomically with creation, so a provider decline always lands
// on an already funded order.
var transitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending: {
		StatusAccepted:  true,
		StatusRejected:  true,
		StatusCancelled: true,
	},
	StatusAccepted: {
		StatusInProgress: true,
		StatusRejected:   true,
		StatusCancelled:  true,
	},
	StatusInProgress: {
		StatusCompleted: true,
	},
}

func CanTransition(from, to OrderStatus) bool {
	return transitions[from][to]
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusCancelled
}

type Order struct {
	ID           string
	CustomerID   string
	ProviderID   string
	ServiceID    string
	TotalAmount  Money
	Commission   Money
	Currency     string
	Status       OrderStatus
	ServiceDate  time.Time
	Address      string
	CancelledBy  *string
	CancelReason *string
	FundedAt     *time.Time
	CancelledAt  *time.Time
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Funded reports whether money has been captured for this order.
// Refunds reverse captured money only.
func (o *Order) Funded() bool {
	return o.FundedAt != nil
}
