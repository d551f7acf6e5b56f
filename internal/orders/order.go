package orders

import (
	"time"

	"github.com/google/uuid"
)

func NewOrder() *Order {
	now := time.Now().UTC()
	return &Order{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewOrderItem(productID, productName string, priceCents, qty int) (OrderItem, error) {
	if productName == "" {
		return OrderItem{}, &ValidationError{Msg: "product name cannot be empty"}
	}
	if priceCents <= 0 {
		return OrderItem{}, &ValidationError{Msg: "price must be greater than zero"}
	}
	if qty <= 0 {
		return OrderItem{}, &ValidationError{Msg: "quantity must be greater than zero"}
	}
	return OrderItem{
		ProductID:   productID,
		ProductName: productName,
		PriceCents:  priceCents,
		Qty:         qty,
	}, nil
}

// AddItem: snapshot nama & harga dari product saat ini. Produk yang sama
// ditambah dua kali -> qty di-merge, bukan bikin line baru.
// Cek stok BUKAN di sini; itu urusan coordinator sebelum memanggil.
func (o *Order) AddItem(p Product, qty int) error {
	if qty <= 0 {
		return &ValidationError{Msg: "quantity must be greater than zero"}
	}
	for i := range o.Items {
		if o.Items[i].ProductID == p.ID {
			o.Items[i].Qty += qty
			return nil
		}
	}
	item, err := NewOrderItem(p.ID, p.Name, p.PriceCents, qty)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, item)
	return nil
}

func (o *Order) Cancel() error {
	return o.transition(StatusCancelled)
}

func (o *Order) Fulfill() error {
	return o.transition(StatusFulfilled)
}

func (o *Order) transition(to Status) error {
	if !CanTransition(o.Status, to) {
		return &InvalidStateError{OrderID: o.ID, From: o.Status, To: to}
	}
	o.Status = to
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// TotalCents dihitung ulang dari items tiap dipanggil, tidak disimpan.
func (o *Order) TotalCents() int {
	total := 0
	for _, it := range o.Items {
		total += it.PriceCents * it.Qty
	}
	return total
}

func (o *Order) Clone() *Order {
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}
