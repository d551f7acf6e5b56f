// Package ledger memegang stok produk otoritatif plus primitif
// reserve/restore satu pintu (AdjustStock).
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Ledger struct {
	products store.ProductStore
	log      *zap.Logger

	// mu men-serialize semua write yang membawa nilai stok:
	// AdjustStock, Update (full-record write), dan Delete. Tanpa ini,
	// edit admin bisa menulis balik stok basi yang dibacanya sebelum
	// sebuah reservasi ter-commit.
	mu sync.Mutex
}

func New(products store.ProductStore, log *zap.Logger) *Ledger {
	return &Ledger{products: products, log: log}
}

func (l *Ledger) Get(ctx context.Context, id string) (orders.Product, error) {
	return l.products.Get(ctx, id)
}

func (l *Ledger) List(ctx context.Context) ([]orders.Product, error) {
	return l.products.List(ctx)
}

func validate(p orders.Product, withStock bool) error {
	if p.Name == "" {
		return &orders.ValidationError{Msg: "product name is required"}
	}
	if p.PriceCents < 0 {
		return &orders.ValidationError{Msg: "product price cannot be negative"}
	}
	if withStock && p.Stock < 0 {
		return &orders.ValidationError{Msg: "product stock cannot be negative"}
	}
	return nil
}

func (l *Ledger) Add(ctx context.Context, p orders.Product) (orders.Product, error) {
	if err := validate(p, true); err != nil {
		return orders.Product{}, err
	}
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	stored, err := l.products.Add(ctx, p)
	if err != nil {
		return orders.Product{}, err
	}
	l.log.Info("product added", zap.String("product_id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

// Update: edit administratif (nama/deskripsi/harga). Stok sengaja TIDAK
// ikut ditimpa; stok hanya berubah lewat AdjustStock.
func (l *Ledger) Update(ctx context.Context, p orders.Product) (orders.Product, error) {
	if err := validate(p, false); err != nil {
		return orders.Product{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.products.Get(ctx, p.ID)
	if err != nil {
		return orders.Product{}, err
	}
	existing.Name = p.Name
	existing.Description = p.Description
	existing.PriceCents = p.PriceCents
	existing.UpdatedAt = time.Now().UTC()
	return l.products.Update(ctx, existing)
}

func (l *Ledger) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.products.Get(ctx, id); err != nil {
		return err
	}
	return l.products.Delete(ctx, id)
}

// AdjustStock: primitif reservasi. Delta negatif = reserve, delta
// positif = restore (dipakai saat cancel). Kalau hasilnya bakal
// negatif, tidak ada mutasi dan return false.
func (l *Ledger) AdjustStock(ctx context.Context, id string, delta int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.products.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := p.Stock + delta
	if next < 0 {
		return false, nil
	}
	p.Stock = next
	p.UpdatedAt = time.Now().UTC()
	if _, err := l.products.Update(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}
