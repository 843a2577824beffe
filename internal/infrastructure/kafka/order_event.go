package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LavaJover/booking-settlement-service/internal/domain"
)

// OrderEvent is the typed notification payload. Consumers rely on this
// exact shape; no free-form metadata rides along.
type OrderEvent struct {
	OrderID    string `json:"order_id"`
	EventType  string `json:"event_type"`
	OccurredAt string `json:"occurred_at"`
}

// KafkaNotificationTrigger publishes order lifecycle events. It is the
// fire-and-forget NotificationTrigger: the settlement core logs
// failures and moves on.
type KafkaNotificationTrigger struct {
	publisher domain.PublisherPort
	topic     string
}

func NewKafkaNotificationTrigger(pub domain.PublisherPort, topic string) *KafkaNotificationTrigger {
	return &KafkaNotificationTrigger{publisher: pub, topic: topic}
}

func (t *KafkaNotificationTrigger) Notify(ctx context.Context, orderID string, event domain.OrderEventType) error {
	value, err := json.Marshal(OrderEvent{
		OrderID:    orderID,
		EventType:  string(event),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	return t.publisher.Publish(t.topic, domain.Message{
		Key:   []byte(orderID),
		Value: value,
	})
}
