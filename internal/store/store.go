// Package store menyediakan akses key-addressed ke record Product dan
// Order. Core tidak peduli backend-nya memory atau postgres.
package store

import (
	"context"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
)

type ProductStore interface {
	Get(ctx context.Context, id string) (orders.Product, error)
	List(ctx context.Context) ([]orders.Product, error)
	Add(ctx context.Context, p orders.Product) (orders.Product, error)
	Update(ctx context.Context, p orders.Product) (orders.Product, error)
	Delete(ctx context.Context, id string) error
}

type OrderStore interface {
	Get(ctx context.Context, id string) (*orders.Order, error)
	List(ctx context.Context) ([]*orders.Order, error)
	ListPending(ctx context.Context) ([]*orders.Order, error)
	Add(ctx context.Context, o *orders.Order) error
	Update(ctx context.Context, o *orders.Order) error
}
