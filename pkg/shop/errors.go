package shop

import "errors"

// ErrInvalidQuantity is returned when a quantity or amount is not positive.
var ErrInvalidQuantity = errors.New("quantity must be positive")

// ErrInsufficientInventory is returned when a purchase asks for more units than are on hand.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ErrPaymentFailed is returned when the payment asset rejects the customer's transfer.
var ErrPaymentFailed = errors.New("payment transfer failed")

// ErrRewardTransferFailed is returned when the reward push fails after payment and
// inventory are already committed.
var ErrRewardTransferFailed = errors.New("reward transfer failed")

// ErrUnauthorized is returned when the caller fails the privileged-caller or
// distributor-identity check.
var ErrUnauthorized = errors.New("caller not authorized")

// ErrInvalidDelivery is returned under the strict policy when a delivery fails validation.
var ErrInvalidDelivery = errors.New("invalid delivery")

// ErrInvalidPrice is returned when a price update carries a negative price.
var ErrInvalidPrice = errors.New("price must be non-negative")

// ErrDistributorPaymentFailed is returned when the wholesale payment to the distributor
// is rejected after the inventory credit is already committed.
var ErrDistributorPaymentFailed = errors.New("distributor payment failed")

// ErrWithdrawalFailed is returned when a custody withdrawal is rejected by the asset.
var ErrWithdrawalFailed = errors.New("withdrawal failed")

// ErrArithmeticOverflow is returned when a price multiplication exceeds the representable range.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")
