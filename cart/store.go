package cart

import (
	"context"
	"errors"
)

// ErrNotInCart is returned when removing a product the session never added.
var ErrNotInCart = errors.New("product not in cart")

// Store keeps per-session carts: a mapping of product id to quantity.
// Carts are ephemeral; they live until checkout, an explicit clear, or the
// backend forgets the session. Item counts are sums of quantities, not
// distinct products.
type Store interface {
	// Get returns the session's cart. A session without a cart yields an
	// empty map, never an error.
	Get(ctx context.Context, sessionID string) (map[uint]int, error)

	// Add accumulates qty onto the existing entry (creating it if needed)
	// and returns the resulting quantity plus the cart's total item count.
	Add(ctx context.Context, sessionID string, productID uint, qty int) (newQty, totalItems int, err error)

	// Remove deletes the entry, returning the removed quantity and the new
	// total item count. Returns ErrNotInCart if the product is absent.
	Remove(ctx context.Context, sessionID string, productID uint) (removedQty, totalItems int, err error)

	// Clear empties the cart and reports the total quantity cleared.
	// Clearing an empty cart succeeds with zero.
	Clear(ctx context.Context, sessionID string) (cleared int, err error)
}
