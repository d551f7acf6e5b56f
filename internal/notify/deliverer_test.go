package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	kafkax "github.com/ariefcatur/go-order-fulfillment.git/internal/kafka"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeDedup meniru SETNX/DEL redis di memori.
type fakeDedup struct {
	keys   map[string]bool
	setErr error
}

func newFakeDedup() *fakeDedup {
	return &fakeDedup{keys: map[string]bool{}}
}

func (f *fakeDedup) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) *redis.BoolCmd {
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if f.keys[key] {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = true
	return redis.NewBoolResult(true, nil)
}

func (f *fakeDedup) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if f.keys[k] {
			delete(f.keys, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func fulfilledMessage(t *testing.T, eventID, orderID string) kafkago.Message {
	t.Helper()
	env := orders.Envelope{
		EventID:      eventID,
		EventType:    orders.EventOrderFulfilled,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     "order-api",
		Payload:      kafkax.MustMarshal(orders.OrderFulfilledPayload{OrderID: orderID}),
	}
	return kafkago.Message{Value: kafkax.MustMarshal(env)}
}

func sentCount(logs *observer.ObservedLogs) int {
	return len(logs.FilterMessage("sending order fulfillment notification").All())
}

func TestHandleDeduplicatesByEventID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := &Deliverer{Redis: newFakeDedup(), Log: zap.New(core)}
	m := fulfilledMessage(t, "evt-1", "order-1")

	require.NoError(t, d.Handle(context.Background(), m))
	require.NoError(t, d.Handle(context.Background(), m))

	assert.Equal(t, 1, sentCount(logs))
}

func TestHandleFailureReleasesClaim(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fake := newFakeDedup()
	d := &Deliverer{Redis: fake, Log: zap.New(core)}

	bad := orders.Envelope{
		EventID:   "evt-2",
		EventType: orders.EventOrderFulfilled,
		Payload:   json.RawMessage(`"bukan objek"`),
	}
	require.Error(t, d.Handle(context.Background(), kafkago.Message{Value: kafkax.MustMarshal(bad)}))

	// klaim dilepas: redelivery event yang sama tetap diproses
	dkey := fmt.Sprintf(redisx.KeyDedup, "notifier", "evt-2")
	assert.False(t, fake.keys[dkey])

	require.NoError(t, d.Handle(context.Background(), fulfilledMessage(t, "evt-2", "order-2")))
	assert.Equal(t, 1, sentCount(logs))
}

func TestHandleDeliversWhenDedupStoreDown(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fake := newFakeDedup()
	fake.setErr = errors.New("connection refused")
	d := &Deliverer{Redis: fake, Log: zap.New(core)}

	require.NoError(t, d.Handle(context.Background(), fulfilledMessage(t, "evt-3", "order-3")))
	assert.Equal(t, 1, sentCount(logs))
}

func TestHandleUnknownEventTypeIsSkipped(t *testing.T) {
	d := &Deliverer{Redis: newFakeDedup(), Log: zap.NewNop()}
	env := orders.Envelope{
		EventID:   "evt-4",
		EventType: "OrderShipped",
		Payload:   json.RawMessage(`{}`),
	}
	require.NoError(t, d.Handle(context.Background(), kafkago.Message{Value: kafkax.MustMarshal(env)}))
}
