package ports

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository stores one cart per seller.
type CartRepository interface {
	// Get returns the seller's cart, or an empty one when nothing is stored.
	Get(ctx context.Context, sellerID kernel.UUID) (*cart.Cart, error)

	// Save replaces the stored lines of the cart.
	Save(ctx context.Context, c *cart.Cart) error
}
