package notify

import (
	"context"
	"time"

	kafkax "github.com/ariefcatur/go-order-fulfillment.git/internal/kafka"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaNotifier publish envelope lifecycle ke topic order.lifecycle.
// Producer-nya async (buffered), jadi caller tidak pernah nunggu broker.
type KafkaNotifier struct {
	Producer *kafkax.Producer
	Service  string
}

func (n *KafkaNotifier) OrderConfirmed(_ context.Context, o *orders.Order) {
	items := make([]orders.ItemPrice, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orders.ItemPrice{
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			PriceCents: it.PriceCents,
		})
	}
	n.publish(o.ID, orders.EventOrderConfirmed, orders.OrderConfirmedPayload{
		OrderID:    o.ID,
		Items:      items,
		TotalCents: o.TotalCents(),
	})
}

func (n *KafkaNotifier) OrderFulfilled(_ context.Context, orderID string) {
	n.publish(orderID, orders.EventOrderFulfilled, orders.OrderFulfilledPayload{OrderID: orderID})
}

func (n *KafkaNotifier) OrderCancelled(_ context.Context, orderID string) {
	n.publish(orderID, orders.EventOrderCancelled, orders.OrderCancelledPayload{OrderID: orderID})
}

func (n *KafkaNotifier) publish(orderID, eventType string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      n.Service,
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	n.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
