package deliveries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/shop-reorder-ledger/pkg/api"
	"github.com/chris/shop-reorder-ledger/pkg/mapping"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/shop"
)

// Receiver is the slice of the ledger this handler needs.
type Receiver interface {
	ReceiveOrder(ctx context.Context, caller string, delivery *models.Delivery) (bool, error)
	StateSnapshot() models.ShopState
}

// DeliveriesHandler holds the dependencies for delivery-related handlers.
type DeliveriesHandler struct {
	Ledger Receiver
}

// NewDeliveriesHandler creates a new DeliveriesHandler.
func NewDeliveriesHandler(ledger Receiver) *DeliveriesHandler {
	return &DeliveriesHandler{Ledger: ledger}
}

// ReceiveDelivery handles the logic for reconciling a distributor delivery.
func (h *DeliveriesHandler) ReceiveDelivery(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-Caller-ID")
	if caller == "" {
		http.Error(w, "Missing X-Caller-ID header", http.StatusBadRequest)
		return
	}

	var req api.DeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	accepted, err := h.Ledger.ReceiveOrder(r.Context(), caller, mapping.ToDomainDelivery(&req))
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, shop.ErrInvalidDelivery), errors.Is(err, shop.ErrArithmeticOverflow):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, shop.ErrDistributorPaymentFailed):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		default:
			http.Error(w, fmt.Sprintf("Failed to receive delivery: %v", err), http.StatusInternalServerError)
		}
		return
	}

	resp := api.DeliveryResponse{
		Accepted:  accepted,
		Inventory: h.Ledger.StateSnapshot().Inventory,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
