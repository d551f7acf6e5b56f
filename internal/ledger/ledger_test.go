package ledger

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLedger() *Ledger {
	return New(store.NewMemoryProducts(), zap.NewNop())
}

func mustAdd(t *testing.T, l *Ledger, name string, price, stock int) orders.Product {
	t.Helper()
	p, err := l.Add(context.Background(), orders.Product{Name: name, PriceCents: price, Stock: stock})
	require.NoError(t, err)
	return p
}

func TestAddAssignsIdentity(t *testing.T) {
	l := newLedger()
	p := mustAdd(t, l, "Gula Aren", 1200, 5)

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := l.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestAddValidation(t *testing.T) {
	l := newLedger()
	ctx := context.Background()

	tests := []struct {
		name string
		p    orders.Product
	}{
		{"empty name", orders.Product{Name: "", PriceCents: 100, Stock: 1}},
		{"negative price", orders.Product{Name: "X", PriceCents: -1, Stock: 1}},
		{"negative stock", orders.Product{Name: "X", PriceCents: 100, Stock: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *orders.ValidationError
			_, err := l.Add(ctx, tt.p)
			require.Error(t, err)
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestUpdateDoesNotTouchStock(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	p := mustAdd(t, l, "Gula Aren", 1200, 5)

	// edit administratif: stok di request diabaikan
	updated, err := l.Update(ctx, orders.Product{
		ID:          p.ID,
		Name:        "Gula Aren Premium",
		Description: "batch baru",
		PriceCents:  1500,
		Stock:       9999,
	})
	require.NoError(t, err)
	assert.Equal(t, "Gula Aren Premium", updated.Name)
	assert.Equal(t, 1500, updated.PriceCents)
	assert.Equal(t, 5, updated.Stock)
}

func TestUpdateUnknownProduct(t *testing.T) {
	l := newLedger()
	var pnf *orders.ProductNotFoundError
	_, err := l.Update(context.Background(), orders.Product{ID: "nope", Name: "X"})
	require.Error(t, err)
	assert.True(t, errors.As(err, &pnf))
}

func TestDelete(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	p := mustAdd(t, l, "Gula", 100, 1)

	require.NoError(t, l.Delete(ctx, p.ID))

	var pnf *orders.ProductNotFoundError
	assert.True(t, errors.As(l.Delete(ctx, p.ID), &pnf))
}

func TestAdjustStockReserveAndRestore(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	p := mustAdd(t, l, "Gula", 100, 5)

	ok, err := l.AdjustStock(ctx, p.ID, -3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := l.Get(ctx, p.ID)
	assert.Equal(t, 2, got.Stock)

	ok, err = l.AdjustStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ = l.Get(ctx, p.ID)
	assert.Equal(t, 5, got.Stock)
}

func TestAdjustStockToExactlyZero(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	p := mustAdd(t, l, "Gula", 100, 4)

	ok, err := l.AdjustStock(ctx, p.ID, -4)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := l.Get(ctx, p.ID)
	assert.Equal(t, 0, got.Stock)
}

func TestAdjustStockInsufficientMakesNoMutation(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	p := mustAdd(t, l, "Gula", 100, 1)

	ok, err := l.AdjustStock(ctx, p.ID, -2)
	require.NoError(t, err)
	assert.False(t, ok)

	got, _ := l.Get(ctx, p.ID)
	assert.Equal(t, 1, got.Stock)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	l := newLedger()
	var pnf *orders.ProductNotFoundError
	_, err := l.AdjustStock(context.Background(), "nope", -1)
	require.Error(t, err)
	assert.True(t, errors.As(err, &pnf))
}

// gatedProducts menahan panggilan Update pertama di antara read dan
// write supaya race edit-admin vs reservasi bisa direproduksi secara
// deterministik.
type gatedProducts struct {
	store.ProductStore

	armed   atomic.Bool
	entered chan struct{}
	gate    chan struct{}
}

func newGatedProducts() *gatedProducts {
	g := &gatedProducts{
		ProductStore: store.NewMemoryProducts(),
		entered:      make(chan struct{}),
		gate:         make(chan struct{}),
	}
	g.armed.Store(true)
	return g
}

func (g *gatedProducts) Update(ctx context.Context, p orders.Product) (orders.Product, error) {
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.gate
	}
	return g.ProductStore.Update(ctx, p)
}

// Edit admin yang tertahan di tengah write tidak boleh menulis balik
// stok basi di atas reservasi yang sudah commit.
func TestUpdateSerializedAgainstAdjustStock(t *testing.T) {
	ctx := context.Background()
	gated := newGatedProducts()
	l := New(gated, zap.NewNop())

	p, err := l.Add(ctx, orders.Product{Name: "Gula", PriceCents: 100, Stock: 5})
	require.NoError(t, err)

	editDone := make(chan error, 1)
	go func() {
		_, err := l.Update(ctx, orders.Product{
			ID:         p.ID,
			Name:       "Gula Premium",
			PriceCents: 150,
		})
		editDone <- err
	}()
	<-gated.entered

	adjustDone := make(chan struct{})
	go func() {
		defer close(adjustDone)
		ok, err := l.AdjustStock(ctx, p.ID, -3)
		assert.NoError(t, err)
		assert.True(t, ok)
	}()

	close(gated.gate)
	require.NoError(t, <-editDone)
	<-adjustDone

	got, err := l.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
	assert.Equal(t, "Gula Premium", got.Name)
	assert.Equal(t, 150, got.PriceCents)
}

// Banyak goroutine rebutan stok 10; total yang sukses tidak boleh
// melebihi stok awal dan stok akhir tidak boleh negatif.
func TestAdjustStockConcurrentNeverNegative(t *testing.T) {
	l := newLedger()
	ctx := context.Background()
	p := mustAdd(t, l, "Gula", 100, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := l.AdjustStock(ctx, p.ID, -1)
			if err == nil && ok {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	got, _ := l.Get(ctx, p.ID)
	assert.Equal(t, 0, got.Stock)
}
