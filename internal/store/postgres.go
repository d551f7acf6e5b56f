package store

import (
	"context"
	"errors"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Backend postgres. Schema:
//
//	products(id, name, description, price_cents, stock, created_at, updated_at)
//	orders(id, status, created_at, updated_at)
//	order_items(order_id, product_id, product_name, price_cents, qty)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type PostgresProducts struct{ DB *pgxpool.Pool }

func NewPostgresProducts(db *pgxpool.Pool) *PostgresProducts {
	return &PostgresProducts{DB: db}
}

func (s *PostgresProducts) Get(ctx context.Context, id string) (orders.Product, error) {
	var p orders.Product
	err := s.DB.QueryRow(ctx, `
		SELECT id, name, description, price_cents, stock, created_at, updated_at
		FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return orders.Product{}, &orders.ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return orders.Product{}, err
	}
	return p, nil
}

func (s *PostgresProducts) List(ctx context.Context) ([]orders.Product, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, description, price_cents, stock, created_at, updated_at
		FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []orders.Product
	for rows.Next() {
		var p orders.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresProducts) Add(ctx context.Context, p orders.Product) (orders.Product, error) {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO products(id, name, description, price_cents, stock, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.CreatedAt, p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return orders.Product{}, orders.ErrAlreadyExists
	}
	if err != nil {
		return orders.Product{}, err
	}
	return p, nil
}

func (s *PostgresProducts) Update(ctx context.Context, p orders.Product) (orders.Product, error) {
	ct, err := s.DB.Exec(ctx, `
		UPDATE products SET name=$2, description=$3, price_cents=$4, stock=$5, updated_at=$6
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.PriceCents, p.Stock, p.UpdatedAt,
	)
	if err != nil {
		return orders.Product{}, err
	}
	if ct.RowsAffected() == 0 {
		return orders.Product{}, &orders.ProductNotFoundError{ProductID: p.ID}
	}
	return p, nil
}

func (s *PostgresProducts) Delete(ctx context.Context, id string) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return &orders.ProductNotFoundError{ProductID: id}
	}
	return nil
}

type PostgresOrders struct{ DB *pgxpool.Pool }

func NewPostgresOrders(db *pgxpool.Pool) *PostgresOrders {
	return &PostgresOrders{DB: db}
}

func (s *PostgresOrders) Get(ctx context.Context, id string) (*orders.Order, error) {
	var o orders.Order
	err := s.DB.QueryRow(ctx, `
		SELECT id, status, created_at, updated_at FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &orders.OrderNotFoundError{OrderID: id}
	}
	if err != nil {
		return nil, err
	}

	items, err := s.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *PostgresOrders) List(ctx context.Context) ([]*orders.Order, error) {
	return s.list(ctx, `SELECT id, status, created_at, updated_at FROM orders ORDER BY created_at`)
}

func (s *PostgresOrders) ListPending(ctx context.Context) ([]*orders.Order, error) {
	return s.list(ctx, `SELECT id, status, created_at, updated_at FROM orders
	                    WHERE status='PENDING' ORDER BY created_at`)
}

func (s *PostgresOrders) list(ctx context.Context, q string) ([]*orders.Order, error) {
	rows, err := s.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*orders.Order
	for rows.Next() {
		var o orders.Order
		if err := rows.Scan(&o.ID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range out {
		items, err := s.loadItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return out, nil
}

func (s *PostgresOrders) loadItems(ctx context.Context, orderID string) ([]orders.OrderItem, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT product_id, product_name, price_cents, qty
		FROM order_items WHERE order_id=$1`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []orders.OrderItem
	for rows.Next() {
		var it orders.OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.PriceCents, &it.Qty); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Add: order + items dalam satu transaksi, all-or-nothing.
func (s *PostgresOrders) Add(ctx context.Context, o *orders.Order) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4)`,
		o.ID, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return orders.ErrAlreadyExists
	}
	if err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items(order_id, product_id, product_name, price_cents, qty)
			VALUES ($1,$2,$3,$4,$5)`,
			o.ID, it.ProductID, it.ProductName, it.PriceCents, it.Qty,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Update hanya menyentuh status/updated_at; items tidak pernah berubah
// setelah order dibuat.
func (s *PostgresOrders) Update(ctx context.Context, o *orders.Order) error {
	ct, err := s.DB.Exec(ctx, `UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1`,
		o.ID, o.Status, o.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return &orders.OrderNotFoundError{OrderID: o.ID}
	}
	return nil
}
