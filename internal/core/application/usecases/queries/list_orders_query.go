package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")
)

// ListOrdersQuery lists the orders an actor may see: customers their purchases, sellers
// the orders placed with them, delivery partners the parcels on the road, admins all.
//
// Example:
//
//	query, err := NewListOrdersQuery(actor, "processing", 20)
//	orders, err := handler.Handle(ctx, query) // accepted orders, newest first
type ListOrdersQuery struct {
	actor     kernel.Actor
	status    order.Status
	hasStatus bool
	limit     int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. An empty status lists every status; any synonym
// accepted by order.ParseStatus may be used.
func NewListOrdersQuery(actor kernel.Actor, status string, limit int) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{actor: actor, limit: clampLimit(limit), guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status, q.hasStatus = parsed, true
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor { return q.actor }
func (q ListOrdersQuery) Limit() int          { return q.limit }

// Status returns the filter and whether one was given.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.hasStatus
}

// OrderView is the read model of an order.
type OrderView struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	SellerID        kernel.UUID
	Status          string
	StatusLabel     string
	Items           []OrderItemView
	Subtotal        decimal.Decimal
	ShippingFee     decimal.Decimal
	Total           decimal.Decimal
	ShippingAddress string
	PaymentMethod   string
	TrackingNumber  string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

type OrderItemView struct {
	BookID    kernel.UUID
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}
