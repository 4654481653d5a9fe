package queries

import (
	"context"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := scopeOrders(h.db.WithContext(ctx).Table("orders"), query.Actor()).
		Where("id = ?", query.OrderID().Bytes())
	orders, err := readOrders(ctx, h.db, db)
	if err != nil {
		return OrderView{}, err
	}
	if len(orders) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	return orders[0], nil
}
