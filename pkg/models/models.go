package models

import (
	"time"
)

// ReceivePolicy selects how a delivery that fails validation is handled.
type ReceivePolicy string

const (
	// PolicyStrict rejects the whole delivery on any validation failure.
	PolicyStrict ReceivePolicy = "STRICT"
	// PolicyLenient records the delivery as not accepted and withholds
	// inventory credit and distributor payment, without returning an error.
	PolicyLenient ReceivePolicy = "LENIENT"
)

// AssetKind names one of the two settlement balances the shop holds in custody.
type AssetKind string

const (
	AssetPayment AssetKind = "PAYMENT"
	AssetReward  AssetKind = "REWARD"
)

// ShopState is the single durable record backing the shop ledger.
// It includes dynamodbav tags for marshalling.
type ShopState struct {
	ShopID           string           `dynamodbav:"shop_id"`
	Inventory        int64            `dynamodbav:"inventory"`
	RetailPrice      int64            `dynamodbav:"retail_price"`
	WholesalePrice   int64            `dynamodbav:"wholesale_price"`
	ReorderThreshold int64            `dynamodbav:"reorder_threshold"`
	ReorderQuantity  int64            `dynamodbav:"reorder_quantity"`
	Distributor      string           `dynamodbav:"distributor"`
	Ratings          map[string]int64 `dynamodbav:"ratings"`
	Version          int64            `dynamodbav:"version"`
	UpdatedAt        time.Time        `dynamodbav:"updated_at"`
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the ledger's mutable state.
func (s *ShopState) Clone() *ShopState {
	cp := *s
	cp.Ratings = make(map[string]int64, len(s.Ratings))
	for k, v := range s.Ratings {
		cp.Ratings[k] = v
	}
	return &cp
}

// Delivery is the transient payload of a receive-order call. It is validated
// and discarded; only its effects on ShopState are persisted.
type Delivery struct {
	Quantity        int64
	ExpirationDates []time.Time
}

// ShopStatus combines the durable state with the custody balances held at the
// settlement assets.
type ShopStatus struct {
	State          ShopState
	PaymentCustody int64
	RewardCustody  int64
}
