package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListInventoryQueryIsNotConstructed = errors.New("ListInventoryQuery must be created via NewListInventoryQuery constructor")
)

// ListInventoryQuery lists buyback inventory that sellers can still buy.
type ListInventoryQuery struct {
	actor kernel.Actor
	limit int

	guard guard.ConstructorGuard
}

func NewListInventoryQuery(actor kernel.Actor, limit int) (ListInventoryQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListInventoryQuery{}, err
	}
	return ListInventoryQuery{actor: actor, limit: clampLimit(limit), guard: guard.NewConstructorGuard()}, nil
}

func (q ListInventoryQuery) Validate() error {
	return q.guard.Validate(ErrListInventoryQueryIsNotConstructed)
}

func (q ListInventoryQuery) Actor() kernel.Actor { return q.actor }
func (q ListInventoryQuery) Limit() int          { return q.limit }

// InventoryItemView is a listed inventory item.
type InventoryItemView struct {
	ID               kernel.UUID
	BuybackRequestID kernel.UUID
	Book             BookView
	SellingPrice     decimal.Decimal
	Stock            int
	CreatedAt        time.Time
}
