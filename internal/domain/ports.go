package domain

import "context"

type OrderEventType string

const (
	EventOrderCreated    OrderEventType = "ORDER_CREATED"
	EventOrderAccepted   OrderEventType = "ORDER_ACCEPTED"
	EventOrderInProgress OrderEventType = "ORDER_IN_PROGRESS"
	EventOrderCompleted  OrderEventType = "ORDER_COMPLETED"
)

// NotificationTrigger is fire-and-forget: failures are logged by the
// caller and never affect the settlement outcome.
type NotificationTrigger interface {
	Notify(ctx context.Context, orderID string, event OrderEventType) error
}

// VirtualNumberAllocator manages the telephony-masking number attached
// to an active order. Failures are logged, not fatal to the transition.
type VirtualNumberAllocator interface {
	Assign(ctx context.Context, orderID string) error
	Release(ctx context.Context, orderID string) error
}

type Service struct {
	ID         string
	ProviderID string
	Price      Money
	Currency   string
	Active     bool
}

type ServiceCatalog interface {
	GetService(ctx context.Context, serviceID string) (*Service, error)
}

type Account struct {
	ID       string
	Active   bool
	Verified bool
}

type UserDirectory interface {
	GetAccount(ctx context.Context, userID string) (*Account, error)
}

type Message struct {
	Key   []byte
	Value []byte
}

type PublisherPort interface {
	Publish(topic string, msgs ...Message) error
}
