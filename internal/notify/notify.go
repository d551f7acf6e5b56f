// Package notify mengirim notifikasi lifecycle order. Fire-and-forget:
// gagal kirim tidak boleh memengaruhi state order.
package notify

import (
	"context"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"go.uber.org/zap"
)

type Notifier interface {
	OrderConfirmed(ctx context.Context, o *orders.Order)
	OrderFulfilled(ctx context.Context, orderID string)
	OrderCancelled(ctx context.Context, orderID string)
}

// LogNotifier: dipakai test dan deployment tanpa kafka.
type LogNotifier struct {
	Log *zap.Logger
}

func (n *LogNotifier) OrderConfirmed(_ context.Context, o *orders.Order) {
	n.Log.Info("order confirmed", zap.String("order_id", o.ID), zap.Int("total_cents", o.TotalCents()))
}

func (n *LogNotifier) OrderFulfilled(_ context.Context, orderID string) {
	n.Log.Info("order fulfilled", zap.String("order_id", orderID))
}

func (n *LogNotifier) OrderCancelled(_ context.Context, orderID string) {
	n.Log.Info("order cancelled", zap.String("order_id", orderID))
}
