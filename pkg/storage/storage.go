package storage

import (
	"context"

	"github.com/chris/shop-reorder-ledger/pkg/models"
)

// SnapshotStore is the durable substrate for the shop state. The ledger
// write-through saves after every successful mutating operation; the store
// must reject a save whose version does not follow the stored one so a stale
// writer cannot clobber a newer snapshot.
type SnapshotStore interface {
	// Load retrieves the current snapshot for a shop.
	Load(ctx context.Context, shopID string) (*models.ShopState, error)

	// Save persists a snapshot. The write must be conditional: it succeeds
	// only when the stored version is exactly state.Version-1 (or the shop
	// does not exist yet).
	Save(ctx context.Context, state *models.ShopState) error
}
