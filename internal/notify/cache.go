package notify

import (
	"context"
	"fmt"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deleter: satu-satunya command redis yang dibutuhkan invalidator.
// *redis.Client memenuhi interface ini.
type Deleter interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CacheInvalidator membuang entri cache status saat order pindah
// status. Tanpa ini, order yang dipenuhi reconciler masih tampil
// PENDING dari cache sampai TTL-nya habis.
type CacheInvalidator struct {
	Redis Deleter
	Log   *zap.Logger
}

func (c *CacheInvalidator) OrderConfirmed(_ context.Context, _ *orders.Order) {
	// order baru, belum pernah di-cache
}

func (c *CacheInvalidator) OrderFulfilled(ctx context.Context, orderID string) {
	c.drop(ctx, orderID)
}

func (c *CacheInvalidator) OrderCancelled(ctx context.Context, orderID string) {
	c.drop(ctx, orderID)
}

func (c *CacheInvalidator) drop(ctx context.Context, orderID string) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if err := c.Redis.Del(ctx, key).Err(); err != nil {
		// best-effort: entri basi tinggal menunggu TTL
		c.Log.Warn("cache invalidate", zap.String("order_id", orderID), zap.Error(err))
	}
}
