package assets

import "context"

// Asset is the contract the shop ledger consumes for a fungible settlement
// balance. Implementations are bound to the shop's custody account: Transfer
// moves units out of custody, TransferFrom pulls units from a third party.
// Any rejected movement must come back as a non-nil error so the enclosing
// shop operation can abort.
type Asset interface {
	// TransferFrom moves amount units from one account to another.
	TransferFrom(ctx context.Context, from, to string, amount int64) error

	// Transfer moves amount units from the shop's custody to an account.
	Transfer(ctx context.Context, to string, amount int64) error

	// BalanceOf reports the balance held by an account.
	BalanceOf(ctx context.Context, account string) (int64, error)
}

// Pair bundles the two independent settlement balances the shop works with:
// the payment currency customers buy with, and the reward currency the shop
// issues back.
type Pair struct {
	Payment Asset
	Reward  Asset
}
