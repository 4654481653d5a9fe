package ports

import (
	"context"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
)

// BuybackRepository defines the persistence contract for buyback requests.
type BuybackRepository interface {
	Add(ctx context.Context, aggregate *buyback.BuybackRequest) error

	// Update writes with a compare-and-swap on the version, like OrderRepository.Update.
	Update(ctx context.Context, aggregate *buyback.BuybackRequest) error

	// Get returns the request with the stock of its inventory item, if any.
	Get(ctx context.Context, id kernel.UUID) (*buyback.BuybackRequest, error)
}
