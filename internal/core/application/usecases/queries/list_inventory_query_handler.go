package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListInventoryQueryHandler struct {
	db *gorm.DB
}

func NewListInventoryQueryHandler(db *gorm.DB) ListInventoryQueryHandler {
	return ListInventoryQueryHandler{db: db}
}

// Handle returns items with stock left, newest first. Sold-out items are never listed.
func (h ListInventoryQueryHandler) Handle(ctx context.Context, query ListInventoryQuery) ([]InventoryItemView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().RequireRole("list inventory", kernel.RoleSeller, kernel.RoleAdmin); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			buyback_request_id,
			book_title,
			COALESCE(book_author, ''),
			COALESCE(book_isbn, ''),
			COALESCE(book_publisher, ''),
			COALESCE(book_edition, ''),
			book_mrp,
			selling_price,
			stock,
			created_at
		FROM buyback_inventory
		WHERE stock > 0
		ORDER BY created_at DESC, id
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer rows.Close()

	items := make([]InventoryItemView, 0)
	for rows.Next() {
		var (
			view          InventoryItemView
			id, requestID uuid.UUID
		)
		err = rows.Scan(
			&id,
			&requestID,
			&view.Book.Title,
			&view.Book.Author,
			&view.Book.ISBN,
			&view.Book.Publisher,
			&view.Book.Edition,
			&view.Book.MRP,
			&view.SellingPrice,
			&view.Stock,
			&view.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := toKernelIDs(id, requestID)
		if idErr != nil {
			return nil, idErr
		}
		view.ID, view.BuybackRequestID = ids[0], ids[1]
		items = append(items, view)
	}
	if err = rows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}

	return items, nil
}
