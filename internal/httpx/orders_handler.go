package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/fulfillment"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"github.com/ariefcatur/go-order-fulfillment.git/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type OrdersHandler struct {
	Coordinator *fulfillment.Coordinator
	Redis       *redis.Client // optional; nil = tanpa cache
	Log         *zap.Logger
}

type PlaceOrderReq struct {
	// product_id -> qty
	Items map[string]int `json:"items"`
}

type OrderResp struct {
	*orders.Order
	TotalCents int `json:"total_cents"`
}

func orderResp(o *orders.Order) OrderResp {
	return OrderResp{Order: o, TotalCents: o.TotalCents()}
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.placeOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Post("/orders/{id}/cancel", h.cancelOrder)
	r.Post("/orders/{id}/fulfill", h.fulfillOrder)
}

func (h *OrdersHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.Coordinator.PlaceOrder(ctx, req.Items)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}

	h.cacheOrder(ctx, order)
	writeJSON(w, http.StatusCreated, orderResp(order))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// 1) coba cache
	if h.Redis != nil {
		key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			writeJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	// 2) fallback store
	order, err := h.Coordinator.GetOrder(ctx, orderID)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	h.cacheOrder(ctx, order)
	writeJSON(w, http.StatusOK, orderResp(order))
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	all, err := h.Coordinator.ListOrders(ctx)
	if err != nil {
		writeErr(w, h.Log, err)
		return
	}
	out := make([]OrderResp, 0, len(all))
	for _, o := range all {
		out = append(out, orderResp(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Coordinator.CancelOrder)
}

func (h *OrdersHandler) fulfillOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Coordinator.FulfillOrder)
}

func (h *OrdersHandler) transition(w http.ResponseWriter, r *http.Request,
	op func(context.Context, string) (bool, error)) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := op(ctx, orderID); err != nil {
		writeErr(w, h.Log, err)
		return
	}

	// refresh cache dengan status terminal baru
	if order, err := h.Coordinator.GetOrder(ctx, orderID); err == nil {
		h.cacheOrder(ctx, order)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// cacheOrder: write-through, best-effort. Gagal cache bukan error.
func (h *OrdersHandler) cacheOrder(ctx context.Context, o *orders.Order) {
	if h.Redis == nil {
		return
	}
	b, err := json.Marshal(orderResp(o))
	if err != nil {
		return
	}
	key := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	_ = h.Redis.Set(ctx, key, b, redisx.TTLStatusCache).Err()
}
