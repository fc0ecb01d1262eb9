package deliveries

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/shop-reorder-ledger/pkg/api"
	"github.com/chris/shop-reorder-ledger/pkg/assets"
	"github.com/chris/shop-reorder-ledger/pkg/auth"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T, paymentCustody int64) *shop.Ledger {
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
		Payment: assets.NewMemoryAsset(cfg.ShopID, map[string]int64{cfg.ShopID: paymentCustody}),
		Reward:  assets.NewMemoryAsset(cfg.ShopID, map[string]int64{cfg.ShopID: 1_000}),
	}
	ledger, err := shop.New(context.Background(), cfg, shop.Deps{
		Assets:     pair,
		Authorizer: auth.NewStaticAuthorizer("admin-1", "dist-1"),
	})
	require.NoError(t, err)
	return ledger
}

func deliveryRequest(n int64) api.DeliveryRequest {
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = time.Now().Add(7 * 24 * time.Hour)
	}
	return api.DeliveryRequest{Quantity: n, ExpirationDates: dates}
}

func postDelivery(t *testing.T, handler *DeliveriesHandler, caller string, body api.DeliveryRequest) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/deliveries", bytes.NewReader(payload))
	if caller != "" {
		req.Header.Set("X-Caller-ID", caller)
	}
	rr := httptest.NewRecorder()
	handler.ReceiveDelivery(rr, req)
	return rr
}

func TestReceiveDelivery_Success(t *testing.T) {
	handler := NewDeliveriesHandler(newTestShop(t, 10_000))

	rr := postDelivery(t, handler, "dist-1", deliveryRequest(500))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.DeliveryResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, int64(560), resp.Inventory)
}

func TestReceiveDelivery_MissingCallerHeader(t *testing.T) {
	handler := NewDeliveriesHandler(newTestShop(t, 10_000))

	rr := postDelivery(t, handler, "", deliveryRequest(500))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestReceiveDelivery_Unauthorized(t *testing.T) {
	handler := NewDeliveriesHandler(newTestShop(t, 10_000))

	t.Run("stranger", func(t *testing.T) {
		rr := postDelivery(t, handler, "stranger", deliveryRequest(500))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin who is not the distributor", func(t *testing.T) {
		rr := postDelivery(t, handler, "admin-1", deliveryRequest(500))
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestReceiveDelivery_WrongQuantity(t *testing.T) {
	handler := NewDeliveriesHandler(newTestShop(t, 10_000))

	rr := postDelivery(t, handler, "dist-1", deliveryRequest(499))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestReceiveDelivery_DistributorPaymentFailure(t *testing.T) {
	// Custody cannot cover the 2500 wholesale payment.
	handler := NewDeliveriesHandler(newTestShop(t, 100))

	rr := postDelivery(t, handler, "dist-1", deliveryRequest(500))

	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
}
