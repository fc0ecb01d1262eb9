package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInsufficientBalance is returned when an account cannot cover a transfer.
var ErrInsufficientBalance = errors.New("insufficient balance")

// MemoryAsset is an in-process fungible balance table. It serves local mode
// and deterministic tests; a production deployment would substitute the real
// settlement service behind the same interface.
type MemoryAsset struct {
	mu       sync.Mutex
	holder   string
	balances map[string]int64
}

// NewMemoryAsset creates an asset bound to the given custody account, seeded
// with the provided balances.
func NewMemoryAsset(holder string, seed map[string]int64) *MemoryAsset {
	balances := make(map[string]int64, len(seed))
	for account, amount := range seed {
		balances[account] = amount
	}
	return &MemoryAsset{holder: holder, balances: balances}
}

// Make sure we conform to the interface
var _ Asset = (*MemoryAsset)(nil)

// TransferFrom moves amount units from one account to another.
func (a *MemoryAsset) TransferFrom(ctx context.Context, from, to string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative transfer amount %d", amount)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.balances[from] < amount {
		return fmt.Errorf("%w: account %s has %d, needs %d", ErrInsufficientBalance, from, a.balances[from], amount)
	}
	a.balances[from] -= amount
	a.balances[to] += amount
	return nil
}

// Transfer moves amount units from the custody account to another account.
func (a *MemoryAsset) Transfer(ctx context.Context, to string, amount int64) error {
	return a.TransferFrom(ctx, a.holder, to, amount)
}

// BalanceOf reports the balance held by an account. Unknown accounts hold zero.
func (a *MemoryAsset) BalanceOf(ctx context.Context, account string) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balances[account], nil
}
