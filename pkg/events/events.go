package events

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of a shop notification.
type Type string

const (
	TypePurchaseCompleted   Type = "shop.purchaseCompleted"
	TypeRewardIssued        Type = "shop.rewardIssued"
	TypeReorderRequested    Type = "shop.reorderRequested"
	TypeOrderReceived       Type = "shop.orderReceived"
	TypeOrderRejected       Type = "shop.orderRejected"
	TypeCreditRatingUpdated Type = "shop.creditRatingUpdated"
	TypeInventoryUpdated    Type = "shop.inventoryUpdated"
	TypePaymentMade         Type = "shop.paymentMade"
)

// Event is a structured notification emitted by the shop ledger. Events are
// consumed by external monitoring; nothing in the ledger reads them back.
type Event struct {
	ID         string            `json:"id"`
	Type       Type              `json:"type"`
	At         time.Time         `json:"at"`
	Attributes map[string]string `json:"attributes"`
}

// Publisher delivers events to whatever sink the deployment wires in.
// A publish failure must never fail the operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

func newEvent(typ Type, attrs map[string]string) *Event {
	return &Event{
		ID:         uuid.New().String(),
		Type:       typ,
		At:         time.Now().UTC(),
		Attributes: attrs,
	}
}

// NewPurchaseCompleted reports a settled customer purchase.
func NewPurchaseCompleted(caller string, quantity, totalPrice int64) *Event {
	return newEvent(TypePurchaseCompleted, map[string]string{
		"caller":     caller,
		"quantity":   strconv.FormatInt(quantity, 10),
		"totalPrice": strconv.FormatInt(totalPrice, 10),
	})
}

// NewRewardIssued reports reward units pushed to a customer.
func NewRewardIssued(caller string, quantity int64) *Event {
	return newEvent(TypeRewardIssued, map[string]string{
		"caller":   caller,
		"quantity": strconv.FormatInt(quantity, 10),
	})
}

// NewReorderRequested reports that stock fell below the reorder threshold.
func NewReorderRequested(quantity int64, distributor string) *Event {
	return newEvent(TypeReorderRequested, map[string]string{
		"quantity":    strconv.FormatInt(quantity, 10),
		"distributor": distributor,
	})
}

// NewOrderReceived reports an accepted distributor delivery and its payment.
func NewOrderReceived(quantity, payment int64) *Event {
	return newEvent(TypeOrderReceived, map[string]string{
		"quantity": strconv.FormatInt(quantity, 10),
		"payment":  strconv.FormatInt(payment, 10),
	})
}

// NewOrderRejected reports a delivery that was received but not accepted
// under the lenient policy.
func NewOrderRejected(quantity int64, reason string) *Event {
	return newEvent(TypeOrderRejected, map[string]string{
		"quantity": strconv.FormatInt(quantity, 10),
		"reason":   reason,
	})
}

// NewCreditRatingUpdated reports the distributor's new delivery count.
func NewCreditRatingUpdated(distributor string, rating int64) *Event {
	return newEvent(TypeCreditRatingUpdated, map[string]string{
		"distributor": distributor,
		"rating":      strconv.FormatInt(rating, 10),
	})
}

// NewInventoryUpdated reports the on-hand quantity after a mutation.
func NewInventoryUpdated(inventory int64) *Event {
	return newEvent(TypeInventoryUpdated, map[string]string{
		"inventory": strconv.FormatInt(inventory, 10),
	})
}

// NewPaymentMade reports units of an asset leaving the shop's custody.
func NewPaymentMade(to string, amount int64, asset string) *Event {
	return newEvent(TypePaymentMade, map[string]string{
		"to":     to,
		"amount": strconv.FormatInt(amount, 10),
		"asset":  asset,
	})
}
