package purchases

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

// Shop is the slice of the ledger this handler needs.
type Shop interface {
	Purchase(ctx context.Context, caller string, quantity int64) (int64, error)
	Status(ctx context.Context) (*models.ShopStatus, error)
}

// PurchasesHandler holds the dependencies for purchase-related handlers.
type PurchasesHandler struct {
	Ledger Shop
}

// NewPurchasesHandler creates a new PurchasesHandler.
func NewPurchasesHandler(ledger Shop) *PurchasesHandler {
	return &PurchasesHandler{Ledger: ledger}
}

// Purchase handles the logic for buying units from the shop.
func (h *PurchasesHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-Caller-ID")
	if caller == "" {
		http.Error(w, "Missing X-Caller-ID header", http.StatusBadRequest)
		return
	}

	var req api.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	totalPrice, err := h.Ledger.Purchase(r.Context(), caller, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrInvalidQuantity), errors.Is(err, shop.ErrArithmeticOverflow):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, shop.ErrInsufficientInventory):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, shop.ErrPaymentFailed):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		default:
			http.Error(w, fmt.Sprintf("Failed to complete purchase: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// Read back the post-purchase inventory for the response.
	status, err := h.Ledger.Status(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Purchase settled but failed to read shop status: %v", err), http.StatusInternalServerError)
		return
	}

	resp := api.PurchaseResponse{
		Quantity:   req.Quantity,
		TotalPrice: totalPrice,
		Inventory:  status.State.Inventory,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetShopStatus handles the logic for retrieving the shop's public state.
func (h *PurchasesHandler) GetShopStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Ledger.Status(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve shop status: %v", err), http.StatusInternalServerError)
		return
	}

	apiStatus := mapping.ToApiShopStatus(status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiStatus); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
