// Package ports defines the contracts between the marketplace core and its
// infrastructure: repositories, the unit of work, the book catalog, the notifier
// and the activity log.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its lines.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order's mutable state with a compare-and-swap on its version.
	// A lost race is reported as errs.StateConflictError; on success the aggregate's
	// version is advanced.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Used to serialize return creation per order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
