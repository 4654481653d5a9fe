package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListReturnsQueryHandler struct {
	db *gorm.DB
}

func NewListReturnsQueryHandler(db *gorm.DB) ListReturnsQueryHandler {
	return ListReturnsQueryHandler{db: db}
}

func (h ListReturnsQueryHandler) Handle(ctx context.Context, query ListReturnsQuery) ([]ReturnView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("return_requests")
	switch actor := query.Actor(); actor.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleCustomer:
		db = db.Where("customer_id = ?", actor.ID().Bytes())
	case kernel.RoleSeller:
		db = db.Where("seller_id = ?", actor.ID().Bytes())
	default:
		return []ReturnView{}, nil
	}
	if status, ok := query.Status(); ok {
		db = db.Where("status = ?", int(status))
	}

	rows, err := db.Select(`
		id,
		order_id,
		customer_id,
		seller_id,
		reason,
		COALESCE(description, ''),
		status,
		COALESCE(admin_notes, ''),
		COALESCE(seller_notes, ''),
		refund_amount,
		created_at,
		updated_at,
		version`).
		Order("created_at DESC, id").
		Limit(query.Limit()).
		Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer rows.Close()

	list := make([]ReturnView, 0)
	index := make(map[uuid.UUID]int)
	keys := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			r                                 ReturnView
			id, orderID, customerID, sellerID uuid.UUID
			status                            int
		)
		err = rows.Scan(
			&id,
			&orderID,
			&customerID,
			&sellerID,
			&r.Reason,
			&r.Description,
			&status,
			&r.AdminNotes,
			&r.SellerNotes,
			&r.RefundAmount,
			&r.CreatedAt,
			&r.UpdatedAt,
			&r.Version,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := toKernelIDs(id, orderID, customerID, sellerID)
		if idErr != nil {
			return nil, idErr
		}
		r.ID, r.OrderID, r.CustomerID, r.SellerID = ids[0], ids[1], ids[2], ids[3]
		r.Status = returns.Status(status).String()
		r.Items = make([]ReturnItemView, 0)

		index[id] = len(list)
		keys = append(keys, id)
		list = append(list, r)
	}
	if err = rows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}
	if len(keys) == 0 {
		return list, nil
	}

	itemRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			return_id,
			book_id,
			title,
			unit_price,
			quantity
		FROM return_items
		WHERE return_id IN ?
		ORDER BY return_id, position
	`, keys).Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			item           ReturnItemView
			returnID, book uuid.UUID
		)
		if err = itemRows.Scan(&returnID, &book, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		bookID, idErr := kernel.UUIDFromBytes(book[:])
		if idErr != nil {
			return nil, idErr
		}
		item.BookID = bookID
		list[index[returnID]].Items = append(list[index[returnID]].Items, item)
	}
	if err = itemRows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}

	return list, nil
}
