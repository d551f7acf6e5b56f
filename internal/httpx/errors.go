package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-order-fulfillment.git/internal/orders"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Mapping error domain -> status code. Selain yang dikenal: 500
// dengan pesan opaque, detail internal tidak bocor ke client.
func writeErr(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		ve  *orders.ValidationError
		is  *orders.InsufficientStockError
		pnf *orders.ProductNotFoundError
		onf *orders.OrderNotFoundError
		ist *orders.InvalidStateError
	)
	switch {
	case errors.As(err, &pnf), errors.As(err, &onf):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &is):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":      is.Error(),
			"product_id": is.ProductID,
			"requested":  is.Requested,
			"available":  is.Available,
		})
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.As(err, &ist):
		writeJSON(w, http.StatusConflict, map[string]string{"error": ist.Error()})
	default:
		log.Error("internal error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
