// Package shop implements the inventory and reorder state machine: customers
// buy units against the on-hand quantity, payments flow through the injected
// settlement assets, and when stock falls below the threshold a reorder
// signal goes out to the distributor side.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/chris/shop-reorder-ledger/pkg/api"
	"github.com/chris/shop-reorder-ledger/pkg/assets"
	"github.com/chris/shop-reorder-ledger/pkg/auth"
	"github.com/chris/shop-reorder-ledger/pkg/events"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/signal"
	"github.com/chris/shop-reorder-ledger/pkg/storage"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// expirationWindow bounds how far out a delivered unit's expiration date may lie.
const expirationWindow = 4 * 7 * 24 * time.Hour

// Config fixes the shop's parameters for the lifetime of the ledger.
type Config struct {
	ShopID           string
	Distributor      string
	RetailPrice      int64
	WholesalePrice   int64
	ReorderThreshold int64
	ReorderQuantity  int64
	InitialInventory int64
	Policy           models.ReceivePolicy
}

// Validate checks the configuration before a ledger is built on it.
func (c Config) Validate() error {
	if c.ShopID == "" {
		return errors.New("shop id required")
	}
	if c.Distributor == "" {
		return errors.New("distributor identity required")
	}
	if c.RetailPrice < 0 || c.WholesalePrice < 0 {
		return errors.New("prices must be non-negative")
	}
	if c.ReorderThreshold < 0 {
		return errors.New("reorder threshold must be non-negative")
	}
	if c.ReorderQuantity <= 0 {
		return errors.New("reorder quantity must be positive")
	}
	if c.InitialInventory < 0 {
		return errors.New("initial inventory must be non-negative")
	}
	switch c.Policy {
	case models.PolicyStrict, models.PolicyLenient:
	case "":
		return errors.New("receive policy required")
	default:
		return fmt.Errorf("unknown receive policy %q", c.Policy)
	}
	return nil
}

// Deps are the external collaborators injected into the ledger.
type Deps struct {
	Assets     assets.Pair
	Authorizer auth.Authorizer
	Signaler   signal.Signaler
	Publisher  events.Publisher
	Snapshots  storage.SnapshotStore
	Logger     *slog.Logger
}

// Ledger is the shop's state machine. A mutex serializes operations so every
// call observes and commits a consistent ShopState; no operation ever leaves
// a partially-updated state visible to another.
type Ledger struct {
	mu     sync.Mutex
	state  *models.ShopState
	policy models.ReceivePolicy

	assets    assets.Pair
	authz     auth.Authorizer
	signaler  signal.Signaler
	publisher events.Publisher
	snapshots storage.SnapshotStore
	logger    *slog.Logger

	now func() time.Time
}

// New builds a ledger from the configuration and collaborators. When a
// snapshot store is wired and already holds state for this shop, the stored
// snapshot wins over the configured initial inventory.
func New(ctx context.Context, cfg Config, deps Deps) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shop config: %w", err)
	}
	if deps.Assets.Payment == nil || deps.Assets.Reward == nil {
		return nil, errors.New("both settlement assets are required")
	}
	if deps.Authorizer == nil {
		return nil, errors.New("authorizer is required")
	}
	if deps.Publisher == nil {
		deps.Publisher = &events.NoOpPublisher{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	l := &Ledger{
		policy:    cfg.Policy,
		assets:    deps.Assets,
		authz:     deps.Authorizer,
		signaler:  deps.Signaler,
		publisher: deps.Publisher,
		snapshots: deps.Snapshots,
		logger:    deps.Logger,
		now:       time.Now,
	}

	if deps.Snapshots != nil {
		stored, err := deps.Snapshots.Load(ctx, cfg.ShopID)
		switch {
		case err == nil:
			l.state = stored
			return l, nil
		case errors.Is(err, storage.ErrStateNotFound):
			// First boot for this shop, fall through to a fresh state.
		default:
			return nil, fmt.Errorf("failed to load shop snapshot: %w", err)
		}
	}

	l.state = &models.ShopState{
		ShopID:           cfg.ShopID,
		Inventory:        cfg.InitialInventory,
		RetailPrice:      cfg.RetailPrice,
		WholesalePrice:   cfg.WholesalePrice,
		ReorderThreshold: cfg.ReorderThreshold,
		ReorderQuantity:  cfg.ReorderQuantity,
		Distributor:      cfg.Distributor,
		Ratings:          make(map[string]int64),
		Version:          0,
		UpdatedAt:        l.now().UTC(),
	}
	l.persist(ctx)
	return l, nil
}

// SetNowFunc overrides the wall clock, for deterministic expiration checks in tests.
func (l *Ledger) SetNowFunc(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Purchase sells quantity units to caller. It pulls quantity*retailPrice of
// the payment asset from the caller, decrements inventory, pushes quantity
// units of the reward asset back, and signals a reorder when stock falls
// below the threshold. The reward push is not rolled back on failure: payment
// and inventory are already committed by then, an accepted asymmetry of the
// settlement model.
func (l *Ledger) Purchase(ctx context.Context, caller string, quantity int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if l.state.Inventory < quantity {
		return 0, fmt.Errorf("%w: %d on hand, %d requested", ErrInsufficientInventory, l.state.Inventory, quantity)
	}

	totalPrice, err := mulInt64(quantity, l.state.RetailPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: %d * %d", ErrArithmeticOverflow, quantity, l.state.RetailPrice)
	}

	// Pull the payment before touching inventory so a rejected transfer
	// leaves the state untouched.
	if err := l.assets.Payment.TransferFrom(ctx, caller, l.state.ShopID, totalPrice); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	l.state.Inventory -= quantity

	if err := l.assets.Reward.Transfer(ctx, caller, quantity); err != nil {
		// Payment and inventory decrement stay committed.
		l.persist(ctx)
		return 0, fmt.Errorf("%w: %v", ErrRewardTransferFailed, err)
	}

	l.publish(ctx, events.NewPurchaseCompleted(caller, quantity, totalPrice))
	l.publish(ctx, events.NewRewardIssued(caller, quantity))
	l.publish(ctx, events.NewInventoryUpdated(l.state.Inventory))

	if l.state.Inventory < l.state.ReorderThreshold {
		l.triggerReorder(ctx)
	}

	l.persist(ctx)
	return totalPrice, nil
}

// triggerReorder signals the distributor side that stock fell below the
// threshold. It mutates nothing; each below-threshold purchase re-signals
// until a delivery restocks the shop. Callers must hold the mutex.
func (l *Ledger) triggerReorder(ctx context.Context) {
	quantity := l.state.ReorderQuantity
	if quantity <= 0 {
		return
	}

	l.publish(ctx, events.NewReorderRequested(quantity, l.state.Distributor))

	if l.signaler == nil {
		return
	}
	sig := &api.ReorderSignal{
		OrderId:     openapi_types.UUID(uuid.New()),
		Quantity:    quantity,
		Distributor: l.state.Distributor,
		RequestedAt: l.now().UTC(),
	}
	if err := l.signaler.SignalReorder(ctx, sig); err != nil {
		// The purchase is already committed; fulfillment will be re-signaled
		// by the next below-threshold purchase.
		log.Printf("CRITICAL: reorder for %d units signaled but failed to enqueue: %v", quantity, err)
	}
}

// ReceiveOrder reconciles a distributor delivery. The caller must be both a
// privileged caller and the registered distributor. Under the strict policy
// any validation failure rejects the delivery outright; under the lenient
// policy the delivery is recorded as not accepted and inventory and payment
// are withheld. The distributor payment is not rolled back onto the inventory
// credit: once the units are on hand they stay, an accepted asymmetry.
func (l *Ledger) ReceiveOrder(ctx context.Context, caller string, delivery *models.Delivery) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Two independent checks: administrative privilege and distributor identity.
	if !l.authz.IsPrivilegedCaller(caller) {
		return false, fmt.Errorf("%w: %s is not a privileged caller", ErrUnauthorized, caller)
	}
	if caller != l.state.Distributor {
		return false, fmt.Errorf("%w: %s is not the registered distributor", ErrUnauthorized, caller)
	}

	if reason := l.validateDelivery(delivery); reason != "" {
		if l.policy == models.PolicyLenient {
			l.publish(ctx, events.NewOrderRejected(delivery.Quantity, reason))
			return false, nil
		}
		return false, fmt.Errorf("%w: %s", ErrInvalidDelivery, reason)
	}

	payment, err := mulInt64(delivery.Quantity, l.state.WholesalePrice)
	if err != nil {
		return false, fmt.Errorf("%w: %d * %d", ErrArithmeticOverflow, delivery.Quantity, l.state.WholesalePrice)
	}

	l.state.Inventory += delivery.Quantity

	if err := l.assets.Payment.Transfer(ctx, l.state.Distributor, payment); err != nil {
		// The inventory credit stays committed.
		l.persist(ctx)
		return false, fmt.Errorf("%w: %v", ErrDistributorPaymentFailed, err)
	}

	l.state.Ratings[l.state.Distributor]++

	l.publish(ctx, events.NewOrderReceived(delivery.Quantity, payment))
	l.publish(ctx, events.NewCreditRatingUpdated(l.state.Distributor, l.state.Ratings[l.state.Distributor]))
	l.publish(ctx, events.NewInventoryUpdated(l.state.Inventory))
	l.publish(ctx, events.NewPaymentMade(l.state.Distributor, payment, string(models.AssetPayment)))

	l.persist(ctx)
	return true, nil
}

// validateDelivery returns an empty string for a valid delivery, otherwise
// the reason it fails. The quantity must match the configured reorder
// quantity exactly, expiration dates must be one per unit, and every date
// must lie within [now, now+4 weeks] inclusive.
func (l *Ledger) validateDelivery(delivery *models.Delivery) string {
	if delivery == nil || delivery.Quantity <= 0 {
		return "quantity must be positive"
	}
	if delivery.Quantity != l.state.ReorderQuantity {
		return fmt.Sprintf("quantity %d does not match ordered quantity %d", delivery.Quantity, l.state.ReorderQuantity)
	}
	if int64(len(delivery.ExpirationDates)) != delivery.Quantity {
		return fmt.Sprintf("%d expiration dates for %d units", len(delivery.ExpirationDates), delivery.Quantity)
	}

	now := l.now()
	latest := now.Add(expirationWindow)
	for i, expires := range delivery.ExpirationDates {
		if expires.Before(now) {
			return fmt.Sprintf("unit %d already expired at %s", i, expires.Format(time.RFC3339))
		}
		if expires.After(latest) {
			return fmt.Sprintf("unit %d expires at %s, beyond the 4 week window", i, expires.Format(time.RFC3339))
		}
	}
	return ""
}

// UpdatePrices overwrites both unit prices. Privileged callers only; there is
// no bound on the magnitude, zero included.
func (l *Ledger) UpdatePrices(ctx context.Context, caller string, newRetail, newWholesale int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.authz.IsPrivilegedCaller(caller) {
		return fmt.Errorf("%w: %s is not a privileged caller", ErrUnauthorized, caller)
	}
	if newRetail < 0 || newWholesale < 0 {
		return fmt.Errorf("%w: retail %d, wholesale %d", ErrInvalidPrice, newRetail, newWholesale)
	}

	l.state.RetailPrice = newRetail
	l.state.WholesalePrice = newWholesale
	l.persist(ctx)
	return nil
}

// Withdraw moves amount units of the named custody balance to the caller.
// Privileged callers only.
func (l *Ledger) Withdraw(ctx context.Context, caller string, kind models.AssetKind, amount int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.authz.IsPrivilegedCaller(caller) {
		return fmt.Errorf("%w: %s is not a privileged caller", ErrUnauthorized, caller)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, amount)
	}

	var asset assets.Asset
	switch kind {
	case models.AssetPayment:
		asset = l.assets.Payment
	case models.AssetReward:
		asset = l.assets.Reward
	default:
		return fmt.Errorf("%w: unknown asset %q", ErrWithdrawalFailed, kind)
	}

	if err := asset.Transfer(ctx, caller, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrWithdrawalFailed, err)
	}

	l.publish(ctx, events.NewPaymentMade(caller, amount, string(kind)))
	return nil
}

// StateSnapshot returns a copy of the current shop state.
func (l *Ledger) StateSnapshot() models.ShopState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return *l.state.Clone()
}

// Status reports the shop state together with the custody balances held at
// the settlement assets.
func (l *Ledger) Status(ctx context.Context) (*models.ShopStatus, error) {
	l.mu.Lock()
	state := l.state.Clone()
	l.mu.Unlock()

	payment, err := l.assets.Payment.BalanceOf(ctx, state.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment custody balance: %w", err)
	}
	reward, err := l.assets.Reward.BalanceOf(ctx, state.ShopID)
	if err != nil {
		return nil, fmt.Errorf("failed to read reward custody balance: %w", err)
	}

	return &models.ShopStatus{
		State:          *state,
		PaymentCustody: payment,
		RewardCustody:  reward,
	}, nil
}

// persist write-throughs the state to the snapshot store. The host substrate
// is assumed durable; a failed save is logged as critical rather than
// un-committing the operation. Callers must hold the mutex.
func (l *Ledger) persist(ctx context.Context) {
	if l.snapshots == nil {
		return
	}
	l.state.Version++
	l.state.UpdatedAt = l.now().UTC()
	if err := l.snapshots.Save(ctx, l.state); err != nil {
		log.Printf("CRITICAL: shop %s state committed but snapshot save failed at version %d: %v", l.state.ShopID, l.state.Version, err)
	}
}

// publish hands an event to the sink. Observability never fails the
// enclosing operation.
func (l *Ledger) publish(ctx context.Context, event *events.Event) {
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warn("failed to publish event", slog.String("type", string(event.Type)), slog.String("error", err.Error()))
	}
}

// mulInt64 multiplies two non-negative int64s, failing instead of wrapping.
func mulInt64(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > math.MaxInt64/b {
		return 0, errors.New("product exceeds int64 range")
	}
	return a * b, nil
}
