package purchases

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/shop-reorder-ledger/pkg/api"
	"github.com/chris/shop-reorder-ledger/pkg/assets"
	"github.com/chris/shop-reorder-ledger/pkg/auth"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T) *shop.Ledger {
	t.Helper()

	cfg := shop.Config{
		ShopID:           "shop-1",
		Distributor:      "dist-1",
		RetailPrice:      10,
		WholesalePrice:   5,
		ReorderThreshold: 50,
		ReorderQuantity:  500,
		InitialInventory: 60,
		Policy:           models.PolicyStrict,
	}
	pair := assets.Pair{
		Payment: assets.NewMemoryAsset(cfg.ShopID, map[string]int64{"buyer-1": 1_000_000, cfg.ShopID: 10_000}),
		Reward:  assets.NewMemoryAsset(cfg.ShopID, map[string]int64{cfg.ShopID: 1_000_000}),
	}
	ledger, err := shop.New(context.Background(), cfg, shop.Deps{
		Assets:     pair,
		Authorizer: auth.NewStaticAuthorizer("admin-1", "dist-1"),
	})
	require.NoError(t, err)
	return ledger
}

func postPurchase(t *testing.T, handler *PurchasesHandler, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewReader(payload))
	if caller != "" {
		req.Header.Set("X-Caller-ID", caller)
	}
	rr := httptest.NewRecorder()
	handler.Purchase(rr, req)
	return rr
}

func TestPurchase_Success(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	rr := postPurchase(t, handler, "buyer-1", api.PurchaseRequest{Quantity: 5})

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp api.PurchaseResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, int64(50), resp.TotalPrice)
	assert.Equal(t, int64(55), resp.Inventory)
}

func TestPurchase_MissingCallerHeader(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	rr := postPurchase(t, handler, "", api.PurchaseRequest{Quantity: 5})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPurchase_InvalidBody(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	req := httptest.NewRequest(http.MethodPost, "/purchase", bytes.NewReader([]byte("{not json")))
	req.Header.Set("X-Caller-ID", "buyer-1")
	rr := httptest.NewRecorder()
	handler.Purchase(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPurchase_InvalidQuantity(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	rr := postPurchase(t, handler, "buyer-1", api.PurchaseRequest{Quantity: 0})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestPurchase_InsufficientInventory(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	rr := postPurchase(t, handler, "buyer-1", api.PurchaseRequest{Quantity: 100})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestPurchase_PaymentRejected(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	// An unknown buyer holds no payment balance.
	rr := postPurchase(t, handler, "broke-buyer", api.PurchaseRequest{Quantity: 5})

	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
}

func TestGetShopStatus(t *testing.T) {
	handler := NewPurchasesHandler(newTestShop(t))

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	rr := httptest.NewRecorder()
	handler.GetShopStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var status api.ShopStatus
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
	assert.Equal(t, "shop-1", status.ShopId)
	assert.Equal(t, int64(60), status.Inventory)
	assert.Equal(t, int64(10), status.RetailPrice)
	assert.Equal(t, int64(10_000), status.PaymentCustody)
	assert.Equal(t, "dist-1", status.Distributor)
}
