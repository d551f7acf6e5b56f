package store

import (
	"context"
	"sync"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
)

// Backend default; dipakai juga oleh test. Semua record di-copy saat
// masuk/keluar supaya caller tidak bisa mengubah state store lewat
// referensi yang bocor.

type MemoryProducts struct {
	mu sync.RWMutex
	m  map[string]orders.Product
}

func NewMemoryProducts() *MemoryProducts {
	return &MemoryProducts{m: make(map[string]orders.Product)}
}

func (s *MemoryProducts) Get(_ context.Context, id string) (orders.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[id]
	if !ok {
		return orders.Product{}, &orders.ProductNotFoundError{ProductID: id}
	}
	return p, nil
}

func (s *MemoryProducts) List(_ context.Context) ([]orders.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]orders.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemoryProducts) Add(_ context.Context, p orders.Product) (orders.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; ok {
		return orders.Product{}, orders.ErrAlreadyExists
	}
	s.m[p.ID] = p
	return p, nil
}

func (s *MemoryProducts) Update(_ context.Context, p orders.Product) (orders.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; !ok {
		return orders.Product{}, &orders.ProductNotFoundError{ProductID: p.ID}
	}
	s.m[p.ID] = p
	return p, nil
}

func (s *MemoryProducts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return &orders.ProductNotFoundError{ProductID: id}
	}
	delete(s.m, id)
	return nil
}

type MemoryOrders struct {
	mu sync.RWMutex
	m  map[string]*orders.Order
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{m: make(map[string]*orders.Order)}
}

func (s *MemoryOrders) Get(_ context.Context, id string) (*orders.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.m[id]
	if !ok {
		return nil, &orders.OrderNotFoundError{OrderID: id}
	}
	return o.Clone(), nil
}

func (s *MemoryOrders) List(_ context.Context) ([]*orders.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*orders.Order, 0, len(s.m))
	for _, o := range s.m {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (s *MemoryOrders) ListPending(_ context.Context) ([]*orders.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*orders.Order
	for _, o := range s.m {
		if o.Status == orders.StatusPending {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (s *MemoryOrders) Add(_ context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[o.ID]; ok {
		return orders.ErrAlreadyExists
	}
	s.m[o.ID] = o.Clone()
	return nil
}

func (s *MemoryOrders) Update(_ context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[o.ID]; !ok {
		return &orders.OrderNotFoundError{OrderID: o.ID}
	}
	s.m[o.ID] = o.Clone()
	return nil
}
