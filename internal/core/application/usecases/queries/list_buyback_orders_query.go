package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListBuybackOrdersQueryIsNotConstructed = errors.New(
		"ListBuybackOrdersQuery must be created via NewListBuybackOrdersQuery constructor",
	)
)

// ListBuybackOrdersQuery lists sellers' purchases of buyback inventory: a seller sees
// their own, an admin sees all of them.
type ListBuybackOrdersQuery struct {
	actor     kernel.Actor
	status    buybackorder.Status
	hasStatus bool
	limit     int

	guard guard.ConstructorGuard
}

func NewListBuybackOrdersQuery(actor kernel.Actor, status string, limit int) (ListBuybackOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListBuybackOrdersQuery{}, err
	}

	q := ListBuybackOrdersQuery{actor: actor, limit: clampLimit(limit), guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := buybackorder.ParseStatus(status)
		if err != nil {
			return ListBuybackOrdersQuery{}, err
		}
		q.status, q.hasStatus = parsed, true
	}
	return q, nil
}

func (q ListBuybackOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListBuybackOrdersQueryIsNotConstructed)
}

func (q ListBuybackOrdersQuery) Actor() kernel.Actor { return q.actor }
func (q ListBuybackOrdersQuery) Limit() int          { return q.limit }

func (q ListBuybackOrdersQuery) Status() (buybackorder.Status, bool) {
	return q.status, q.hasStatus
}

type BuybackOrderView struct {
	ID              kernel.UUID
	SellerID        kernel.UUID
	Status          string
	Lines           []BuybackOrderLineView
	Subtotal        decimal.Decimal
	ShippingFee     decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress string
	PaymentMethod   string
	TrackingNumber  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

type BuybackOrderLineView struct {
	ItemID    kernel.UUID
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}
