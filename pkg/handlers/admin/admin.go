package admin

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

// Administrator is the slice of the ledger this handler needs.
type Administrator interface {
	UpdatePrices(ctx context.Context, caller string, newRetail, newWholesale int64) error
	Withdraw(ctx context.Context, caller string, kind models.AssetKind, amount int64) error
	StateSnapshot() models.ShopState
}

// AdminHandler holds the dependencies for administrative handlers.
type AdminHandler struct {
	Ledger Administrator
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ledger Administrator) *AdminHandler {
	return &AdminHandler{Ledger: ledger}
}

// UpdatePrices handles the logic for overwriting both unit prices.
func (h *AdminHandler) UpdatePrices(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-Caller-ID")
	if caller == "" {
		http.Error(w, "Missing X-Caller-ID header", http.StatusBadRequest)
		return
	}

	var req api.PriceUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Ledger.UpdatePrices(r.Context(), caller, req.RetailPrice, req.WholesalePrice); err != nil {
		switch {
		case errors.Is(err, shop.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, shop.ErrInvalidPrice):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, fmt.Sprintf("Failed to update prices: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Withdraw handles the logic for moving custody funds to the caller.
func (h *AdminHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get("X-Caller-ID")
	if caller == "" {
		http.Error(w, "Missing X-Caller-ID header", http.StatusBadRequest)
		return
	}

	var req api.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	err := h.Ledger.Withdraw(r.Context(), caller, models.AssetKind(req.Asset), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrUnauthorized):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, shop.ErrInvalidQuantity):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, shop.ErrWithdrawalFailed):
			http.Error(w, err.Error(), http.StatusPaymentRequired)
		default:
			http.Error(w, fmt.Sprintf("Failed to withdraw: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRatings handles the logic for retrieving distributor delivery counts.
func (h *AdminHandler) ListRatings(w http.ResponseWriter, r *http.Request) {
	ratings := mapping.ToApiRatings(h.Ledger.StateSnapshot().Ratings)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ratings); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
