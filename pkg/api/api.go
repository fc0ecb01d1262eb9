// Package api holds the request and response types of the HTTP surface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PurchaseRequest asks to buy a number of units. The caller identity comes
// from the X-Caller-ID header, not the body.
type PurchaseRequest struct {
	Quantity int64 `json:"quantity"`
}

// PurchaseResponse reports the settled purchase.
type PurchaseResponse struct {
	Quantity   int64 `json:"quantity"`
	TotalPrice int64 `json:"total_price"`
	Inventory  int64 `json:"inventory"`
}

// DeliveryRequest is a distributor's fulfillment of a reorder. Expiration
// dates are one per unit, RFC 3339.
type DeliveryRequest struct {
	Quantity        int64       `json:"quantity"`
	ExpirationDates []time.Time `json:"expiration_dates"`
}

// DeliveryResponse reports whether the delivery was accepted.
type DeliveryResponse struct {
	Accepted  bool  `json:"accepted"`
	Inventory int64 `json:"inventory"`
}

// PriceUpdateRequest overwrites both unit prices.
type PriceUpdateRequest struct {
	RetailPrice    int64 `json:"retail_price"`
	WholesalePrice int64 `json:"wholesale_price"`
}

// WithdrawRequest moves custody funds of the named asset to the caller.
type WithdrawRequest struct {
	Asset  string `json:"asset"`
	Amount int64  `json:"amount"`
}

// ShopStatus is the public view of the shop ledger.
type ShopStatus struct {
	ShopId           string `json:"shop_id"`
	Inventory        int64  `json:"inventory"`
	RetailPrice      int64  `json:"retail_price"`
	WholesalePrice   int64  `json:"wholesale_price"`
	ReorderThreshold int64  `json:"reorder_threshold"`
	ReorderQuantity  int64  `json:"reorder_quantity"`
	Distributor      string `json:"distributor"`
	PaymentCustody   int64  `json:"payment_custody"`
	RewardCustody    int64  `json:"reward_custody"`
}

// RatingEntry is one distributor's delivery count.
type RatingEntry struct {
	Distributor string `json:"distributor"`
	Deliveries  int64  `json:"deliveries"`
}

// ReorderSignal is the message placed on the reorder queue when stock falls
// below the threshold. Fulfillment happens entirely outside this service.
type ReorderSignal struct {
	OrderId     openapi_types.UUID `json:"order_id"`
	Quantity    int64              `json:"quantity"`
	Distributor string             `json:"distributor"`
	RequestedAt time.Time          `json:"requested_at"`
}
