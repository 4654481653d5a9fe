package ports

import (
	"context"

	"marketplace/internal/core/domain/model/catalog"
	"marketplace/internal/core/domain/model/kernel"
)

// BookCatalog gives read access to seller listings and reserves their stock for orders.
type BookCatalog interface {
	// GetBooks returns the listings found for ids, keyed by id.
	GetBooks(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]catalog.Book, error)

	// Reserve decrements a listing's stock only if enough is left; otherwise it returns
	// errs.ValueIsOutOfRangeError.
	Reserve(ctx context.Context, bookID kernel.UUID, quantity int) error

	// Release gives reserved copies back to the listing.
	Release(ctx context.Context, bookID kernel.UUID, quantity int) error
}
