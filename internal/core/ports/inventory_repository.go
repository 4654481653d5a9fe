package ports

import (
	"context"

	"marketplace/internal/core/domain/model/inventory"
	"marketplace/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for buyback inventory items.
type InventoryRepository interface {
	// Add persists a new item. A second item for the same buyback request is refused
	// with errs.StateConflictError.
	Add(ctx context.Context, item *inventory.Item) error

	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)

	// GetMany returns the items found for ids, keyed by id. Missing ids are simply absent.
	GetMany(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*inventory.Item, error)

	// TakeStock decrements stock in a single conditional statement that only succeeds
	// while stock >= quantity; otherwise it returns errs.ValueIsOutOfRangeError and
	// changes nothing.
	TakeStock(ctx context.Context, id kernel.UUID, quantity int) error

	// ReturnStock increments stock.
	ReturnStock(ctx context.Context, id kernel.UUID, quantity int) error
}
