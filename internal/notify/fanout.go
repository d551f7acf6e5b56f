package notify

import (
	"context"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
)

// Fanout menyebar satu notifikasi ke beberapa Notifier, berurutan.
type Fanout []Notifier

func (f Fanout) OrderConfirmed(ctx context.Context, o *orders.Order) {
	for _, n := range f {
		n.OrderConfirmed(ctx, o)
	}
}

func (f Fanout) OrderFulfilled(ctx context.Context, orderID string) {
	for _, n := range f {
		n.OrderFulfilled(ctx, orderID)
	}
}

func (f Fanout) OrderCancelled(ctx context.Context, orderID string) {
	for _, n := range f {
		n.OrderCancelled(ctx, orderID)
	}
}
