// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization, transaction
// management, persistence, then post-commit recording.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each workflow declares only the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	BookCatalogFactory interface {
		BookCatalog() ports.BookCatalog
	}

	BuybackRepoFactory interface {
		BuybackRepository() ports.BuybackRepository
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	BuybackOrderRepoFactory interface {
		BuybackOrderRepository() ports.BuybackOrderRepository
	}

	ReturnRepoFactory interface {
		ReturnRepository() ports.ReturnRepository
	}

	// OrderUoW covers order placement and transitions, which reserve and release
	// catalog stock in the same transaction.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		BookCatalogFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BuybackUoW covers the buyback request workflow. Approval writes the request
	// and materialises its inventory item atomically.
	BuybackUoW interface {
		TxManager
		BuybackRepoFactory
		InventoryRepoFactory
	}

	BuybackUoWFactory interface {
		Create() BuybackUoW
	}

	// ResaleUoW covers carts, checkout and buyback order fulfilment.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   items, err := uow.InventoryRepository().GetMany(ctx, ids)
	//   // ... allocate, take stock, add the order
	//
	//   err = uow.Commit(ctx)
	ResaleUoW interface {
		TxManager
		InventoryRepoFactory
		CartRepoFactory
		BuybackOrderRepoFactory
	}

	ResaleUoWFactory interface {
		Create() ResaleUoW
	}

	// ReturnUoW covers the return workflow, which reads and locks the returned order.
	ReturnUoW interface {
		TxManager
		OrderRepoFactory
		ReturnRepoFactory
	}

	ReturnUoWFactory interface {
		Create() ReturnUoW
	}
)
