package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/storage"
)

// Store implements the SnapshotStore interface in process memory. It backs
// local mode and tests.
type Store struct {
	mu    sync.Mutex
	shops map[string]*models.ShopState
}

// New creates an empty Store.
func New() *Store {
	return &Store{shops: make(map[string]*models.ShopState)}
}

// Make sure we conform to the interface
var _ storage.SnapshotStore = (*Store)(nil)

// Load retrieves the current snapshot for a shop.
func (s *Store) Load(ctx context.Context, shopID string) (*models.ShopState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.shops[shopID]
	if !ok {
		return nil, storage.ErrStateNotFound
	}
	return state.Clone(), nil
}

// Save persists a snapshot, enforcing the version-follows-stored condition.
func (s *Store) Save(ctx context.Context, state *models.ShopState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.shops[state.ShopID]
	if ok && stored.Version != state.Version-1 {
		return fmt.Errorf("%w: stored version %d, saving version %d", storage.ErrVersionConflict, stored.Version, state.Version)
	}
	s.shops[state.ShopID] = state.Clone()
	return nil
}
