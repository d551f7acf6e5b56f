package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkax "github.com/ariefcatur/go-order-fulfillment.git/internal/kafka"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// DedupStore: subset command redis yang dipakai deliverer.
// *redis.Client memenuhi interface ini.
type DedupStore interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Deliverer: handler consumer order.lifecycle. Di sinilah notifikasi
// "dikirim" (di deployment ini: log terstruktur per event).
type Deliverer struct {
	Redis DedupStore
	Log   *zap.Logger
}

// Handle dipasang sebagai handler consumer. Klaim dedup pakai SETNX;
// kalau pengiriman gagal, klaim dilepas supaya redelivery dari kafka
// tetap diproses, bukan dibuang sebagai duplikat.
func (d *Deliverer) Handle(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", env.EventID)
	claimed, err := d.Redis.SetNX(ctx, dkey, "1", redisx.TTLDedup).Result()
	if err != nil {
		// redis lagi bermasalah: tetap kirim. Lebih baik dobel
		// notifikasi daripada hilang.
		d.Log.Warn("dedup claim", zap.String("event_id", env.EventID), zap.Error(err))
	} else if !claimed {
		return nil
	}

	if err := d.deliver(env); err != nil {
		if derr := d.Redis.Del(ctx, dkey).Err(); derr != nil {
			d.Log.Warn("dedup release", zap.String("event_id", env.EventID), zap.Error(derr))
		}
		return err
	}
	return nil
}

func (d *Deliverer) deliver(env orders.Envelope) error {
	switch env.EventType {
	case orders.EventOrderConfirmed:
		p, err := kafkax.UnwrapPayload[orders.OrderConfirmedPayload](env.Payload)
		if err != nil {
			return err
		}
		d.Log.Info("sending order confirmation",
			zap.String("order_id", p.OrderID),
			zap.Int("total_cents", p.TotalCents),
			zap.Int("items", len(p.Items)))
	case orders.EventOrderFulfilled:
		p, err := kafkax.UnwrapPayload[orders.OrderFulfilledPayload](env.Payload)
		if err != nil {
			return err
		}
		d.Log.Info("sending order fulfillment notification", zap.String("order_id", p.OrderID))
	case orders.EventOrderCancelled:
		p, err := kafkax.UnwrapPayload[orders.OrderCancelledPayload](env.Payload)
		if err != nil {
			return err
		}
		d.Log.Info("sending order cancellation notification", zap.String("order_id", p.OrderID))
	default:
		// event asing di topic ini: skip, jangan bikin consumer macet
		d.Log.Warn("unknown event type", zap.String("event_type", env.EventType))
	}
	return nil
}
