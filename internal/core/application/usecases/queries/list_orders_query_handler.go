package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// onTheRoad are the statuses a delivery partner works with.
var onTheRoad = []int{int(order.Shipped), int(order.OutForDelivery)}

// ListOrdersQueryHandler reads orders with their items, newest first.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := scopeOrders(h.db.WithContext(ctx).Table("orders"), query.Actor())
	if status, ok := query.Status(); ok {
		db = db.Where("status = ?", int(status))
	}

	return readOrders(ctx, h.db, db.Order("created_at DESC, id").Limit(query.Limit()))
}

// scopeOrders narrows db to the orders visible to actor.
func scopeOrders(db *gorm.DB, actor kernel.Actor) *gorm.DB {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return db
	case kernel.RoleCustomer:
		return db.Where("buyer_id = ?", actor.ID().Bytes())
	case kernel.RoleSeller:
		return db.Where("seller_id = ?", actor.ID().Bytes())
	case kernel.RoleDeliveryPartner:
		return db.Where("status IN ?", onTheRoad)
	default:
		return db.Where("1 = 0")
	}
}

// readOrders runs the prepared order selection and attaches the items of every row.
func readOrders(ctx context.Context, conn *gorm.DB, selection *gorm.DB) ([]OrderView, error) {
	rows, err := selection.Select(`
		id,
		buyer_id,
		seller_id,
		shipping_fee,
		status,
		shipping_address,
		payment_method,
		tracking_number,
		rejection_reason,
		created_at,
		updated_at,
		version`).Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer rows.Close()

	orders := make([]OrderView, 0)
	index := make(map[uuid.UUID]int)
	keys := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			view                  OrderView
			id, buyerID, sellerID uuid.UUID
			status                int
			tracking, rejection   *string
		)
		err = rows.Scan(
			&id,
			&buyerID,
			&sellerID,
			&view.ShippingFee,
			&status,
			&view.ShippingAddress,
			&view.PaymentMethod,
			&tracking,
			&rejection,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Version,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := toKernelIDs(id, buyerID, sellerID)
		if idErr != nil {
			return nil, idErr
		}
		view.ID, view.BuyerID, view.SellerID = ids[0], ids[1], ids[2]
		view.Status = order.Status(status).String()
		view.StatusLabel = order.Status(status).Label()
		view.TrackingNumber = deref(tracking)
		view.RejectionReason = deref(rejection)
		view.Items = make([]OrderItemView, 0)

		index[id] = len(orders)
		keys = append(keys, id)
		orders = append(orders, view)
	}
	if err = rows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}
	if len(keys) == 0 {
		return orders, nil
	}

	itemRows, err := conn.WithContext(ctx).Raw(`
		SELECT
			order_id,
			book_id,
			title,
			unit_price,
			quantity
		FROM order_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, keys).Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			item          OrderItemView
			orderID, book uuid.UUID
		)
		if err = itemRows.Scan(&orderID, &book, &item.Title, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, err
		}
		bookID, idErr := kernel.UUIDFromBytes(book[:])
		if idErr != nil {
			return nil, idErr
		}
		item.BookID = bookID

		view := &orders[index[orderID]]
		view.Items = append(view.Items, item)
		view.Subtotal = view.Subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if err = itemRows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}

	for i := range orders {
		orders[i].Total = orders[i].Subtotal.Add(orders[i].ShippingFee)
	}
	return orders, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
