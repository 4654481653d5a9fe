package queries

import (
	"context"

	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/dberr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListBuybackOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListBuybackOrdersQueryHandler(db *gorm.DB) ListBuybackOrdersQueryHandler {
	return ListBuybackOrdersQueryHandler{db: db}
}

func (h ListBuybackOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListBuybackOrdersQuery,
) ([]BuybackOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("buyback_orders")
	switch actor := query.Actor(); actor.Role() {
	case kernel.RoleAdmin:
	case kernel.RoleSeller:
		db = db.Where("seller_id = ?", actor.ID().Bytes())
	default:
		return []BuybackOrderView{}, nil
	}
	if status, ok := query.Status(); ok {
		db = db.Where("status = ?", int(status))
	}

	rows, err := db.Select(`
		id,
		seller_id,
		shipping_fee,
		status,
		shipping_address,
		payment_method,
		tracking_number,
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

	orders := make([]BuybackOrderView, 0)
	index := make(map[uuid.UUID]int)
	keys := make([]uuid.UUID, 0)
	for rows.Next() {
		var (
			view         BuybackOrderView
			id, sellerID uuid.UUID
			status       int
			tracking     *string
		)
		err = rows.Scan(
			&id,
			&sellerID,
			&view.ShippingFee,
			&status,
			&view.ShippingAddress,
			&view.PaymentMethod,
			&tracking,
			&view.CreatedAt,
			&view.UpdatedAt,
			&view.Version,
		)
		if err != nil {
			return nil, err
		}

		ids, idErr := toKernelIDs(id, sellerID)
		if idErr != nil {
			return nil, idErr
		}
		view.ID, view.SellerID = ids[0], ids[1]
		view.Status = buybackorder.Status(status).String()
		view.TrackingNumber = deref(tracking)
		view.Lines = make([]BuybackOrderLineView, 0)

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

	lineRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			item_id,
			title,
			unit_price,
			quantity
		FROM buyback_order_lines
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, keys).Rows()
	if err != nil {
		return nil, dberr.Classify(err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			line          BuybackOrderLineView
			orderID, item uuid.UUID
		)
		if err = lineRows.Scan(&orderID, &item, &line.Title, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, err
		}
		itemID, idErr := kernel.UUIDFromBytes(item[:])
		if idErr != nil {
			return nil, idErr
		}
		line.ItemID = itemID

		view := &orders[index[orderID]]
		view.Lines = append(view.Lines, line)
		view.Subtotal = view.Subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if err = lineRows.Err(); err != nil {
		return nil, dberr.Classify(err)
	}

	for i := range orders {
		orders[i].Total = orders[i].Subtotal.Add(orders[i].ShippingFee)
	}
	return orders, nil
}
