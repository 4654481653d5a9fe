package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
)

// ReturnRepository defines the persistence contract for return requests.
type ReturnRepository interface {
	Add(ctx context.Context, aggregate *returns.ReturnRequest) error

	// Update writes with a compare-and-swap on the version.
	Update(ctx context.Context, aggregate *returns.ReturnRequest) error

	Get(ctx context.Context, id kernel.UUID) (*returns.ReturnRequest, error)

	// ListByOrder returns every return filed for the order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*returns.ReturnRequest, error)

	// ListRefundedBefore returns refund-issued returns last updated at or before cutoff.
	ListRefundedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*returns.ReturnRequest, error)
}
