package signal

import (
	"context"

	"github.com/chris/shop-reorder-ledger/pkg/api"
)

// Signaler defines the interface for a component that hands a reorder signal
// to the external fulfillment side.
type Signaler interface {
	// SignalReorder enqueues a reorder signal for asynchronous fulfillment.
	SignalReorder(ctx context.Context, sig *api.ReorderSignal) error
}
