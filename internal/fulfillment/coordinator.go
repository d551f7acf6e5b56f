// Package fulfillment berisi Coordinator (satu-satunya komponen yang
// boleh menggabungkan mutasi stok dengan transisi status order) dan
// Reconciler yang mendorong order PENDING ke FULFILLED di background.
package fulfillment

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/ledger"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/notify"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/store"
	"go.uber.org/zap"
)

type Coordinator struct {
	ledger   *ledger.Ledger
	orders   store.OrderStore
	notifier notify.Notifier
	log      *zap.Logger

	// mu: lock global kasar. Semua mutasi order dari semua caller
	// (HTTP + reconciler) di-serialize di sini, supaya urutan
	// cek-stok-lalu-commit tidak pernah ter-interleave.
	mu sync.Mutex
}

func NewCoordinator(l *ledger.Ledger, os store.OrderStore, n notify.Notifier, log *zap.Logger) *Coordinator {
	return &Coordinator{ledger: l, orders: os, notifier: n, log: log}
}

type stockDelta struct {
	productID string
	qty       int
}

// PlaceOrder me-reserve stok untuk tiap (productID, qty) lalu
// mem-persist order baru berstatus PENDING. Kalau salah satu item gagal
// (produk tidak ada / stok kurang), semua reservasi yang sudah
// ter-commit di call yang sama dikembalikan dulu sebelum error
// dilempar, jadi gagal parsial tidak pernah bocor stok.
func (c *Coordinator) PlaceOrder(ctx context.Context, quantities map[string]int) (*orders.Order, error) {
	if len(quantities) == 0 {
		return nil, &orders.ValidationError{Msg: "order must contain at least one product"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	order := orders.NewOrder()
	var reserved []stockDelta

	for productID, qty := range quantities {
		if qty <= 0 {
			c.restore(ctx, reserved)
			return nil, &orders.ValidationError{Msg: "quantity must be greater than zero"}
		}

		p, err := c.ledger.Get(ctx, productID)
		if err != nil {
			c.restore(ctx, reserved)
			return nil, err
		}

		ok, err := c.ledger.AdjustStock(ctx, productID, -qty)
		if err != nil {
			c.restore(ctx, reserved)
			return nil, err
		}
		if !ok {
			c.restore(ctx, reserved)
			return nil, &orders.InsufficientStockError{
				ProductID: productID,
				Requested: qty,
				Available: p.Stock,
			}
		}
		reserved = append(reserved, stockDelta{productID: productID, qty: qty})

		if err := order.AddItem(p, qty); err != nil {
			c.restore(ctx, reserved)
			return nil, err
		}
	}

	if err := c.orders.Add(ctx, order); err != nil {
		c.restore(ctx, reserved)
		c.log.Error("persist order", zap.String("order_id", order.ID), zap.Error(err))
		return nil, err
	}

	c.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Int("total_cents", order.TotalCents()))
	c.notifier.OrderConfirmed(ctx, order)
	return order, nil
}

// restore mengembalikan delta yang sudah ter-commit (kompensasi).
// Restore ke arah positif tidak bisa gagal cek negatif; error store
// di-log saja karena kita sedang di jalur error.
func (c *Coordinator) restore(ctx context.Context, reserved []stockDelta) {
	for _, r := range reserved {
		if ok, err := c.ledger.AdjustStock(ctx, r.productID, r.qty); err != nil || !ok {
			c.log.Error("restore stock",
				zap.String("product_id", r.productID),
				zap.Int("qty", r.qty),
				zap.Error(err))
		}
	}
}

// CancelOrder mengembalikan stok semua item lalu transisi ke CANCELLED.
func (c *Coordinator) CancelOrder(ctx context.Context, orderID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	order, err := c.orders.Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	if order.Status != orders.StatusPending {
		return false, &orders.InvalidStateError{
			OrderID: orderID,
			From:    order.Status,
			To:      orders.StatusCancelled,
		}
	}

	for _, it := range order.Items {
		// produk bisa saja sudah dihapus; cancel tetap jalan terus
		if ok, err := c.ledger.AdjustStock(ctx, it.ProductID, it.Qty); err != nil || !ok {
			c.log.Error("restore stock on cancel",
				zap.String("order_id", orderID),
				zap.String("product_id", it.ProductID),
				zap.Error(err))
		}
	}

	if err := order.Cancel(); err != nil {
		return false, err
	}
	if err := c.orders.Update(ctx, order); err != nil {
		c.log.Error("persist cancel", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}

	c.log.Info("order cancelled", zap.String("order_id", orderID))
	c.notifier.OrderCancelled(ctx, orderID)
	return true, nil
}

// FulfillOrder: transisi PENDING -> FULFILLED. Tidak ada pergerakan
// stok; stok sudah ter-commit saat placement.
func (c *Coordinator) FulfillOrder(ctx context.Context, orderID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	order, err := c.orders.Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	if err := order.Fulfill(); err != nil {
		return false, err
	}
	if err := c.orders.Update(ctx, order); err != nil {
		c.log.Error("persist fulfill", zap.String("order_id", orderID), zap.Error(err))
		return false, err
	}

	c.log.Info("order fulfilled", zap.String("order_id", orderID))
	c.notifier.OrderFulfilled(ctx, orderID)
	return true, nil
}

// GetOrder/ListOrders: read-only, tanpa lock. Bisa melihat state yang
// sedang dimutasi; caller harus toleran eventual read.
func (c *Coordinator) GetOrder(ctx context.Context, orderID string) (*orders.Order, error) {
	return c.orders.Get(ctx, orderID)
}

func (c *Coordinator) ListOrders(ctx context.Context) ([]*orders.Order, error) {
	return c.orders.List(ctx)
}

// ProcessPendingOrders: best-effort. Satu order gagal tidak
// menghentikan sisanya; error hanya di-log.
func (c *Coordinator) ProcessPendingOrders(ctx context.Context) {
	pending, err := c.orders.ListPending(ctx)
	if err != nil {
		c.log.Error("list pending orders", zap.Error(err))
		return
	}
	for _, o := range pending {
		if _, err := c.FulfillOrder(ctx, o.ID); err != nil {
			c.log.Error("process pending order", zap.String("order_id", o.ID), zap.Error(err))
		}
	}
}
