package ports

import (
	"context"

	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/kernel"
)

// BuybackOrderRepository defines the persistence contract for buyback orders.
type BuybackOrderRepository interface {
	Add(ctx context.Context, aggregate *buybackorder.BuybackOrder) error

	// Update writes with a compare-and-swap on the version.
	Update(ctx context.Context, aggregate *buybackorder.BuybackOrder) error

	Get(ctx context.Context, id kernel.UUID) (*buybackorder.BuybackOrder, error)
}
