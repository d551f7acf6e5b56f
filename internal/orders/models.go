package orders

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int       `json:"price_cents"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderItem menyimpan snapshot nama & harga produk saat order dibuat;
// edit produk belakangan tidak mengubah total order lama.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	PriceCents  int    `json:"price_cents"`
	Qty         int    `json:"qty"`
}

type Order struct {
	ID        string      `json:"id"`
	Status    Status      `json:"status"` // lihat status.go
	Items     []OrderItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
