package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListReturnsQueryIsNotConstructed = errors.New("ListReturnsQuery must be created via NewListReturnsQuery constructor")
)

// ListReturnsQuery lists return requests: customers see the returns they filed, sellers
// the returns against their orders, admins all of them.
type ListReturnsQuery struct {
	actor     kernel.Actor
	status    returns.Status
	hasStatus bool
	limit     int

	guard guard.ConstructorGuard
}

func NewListReturnsQuery(actor kernel.Actor, status string, limit int) (ListReturnsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListReturnsQuery{}, err
	}

	q := ListReturnsQuery{actor: actor, limit: clampLimit(limit), guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := returns.ParseStatus(status)
		if err != nil {
			return ListReturnsQuery{}, err
		}
		q.status, q.hasStatus = parsed, true
	}
	return q, nil
}

func (q ListReturnsQuery) Validate() error {
	return q.guard.Validate(ErrListReturnsQueryIsNotConstructed)
}

func (q ListReturnsQuery) Actor() kernel.Actor { return q.actor }
func (q ListReturnsQuery) Limit() int          { return q.limit }

func (q ListReturnsQuery) Status() (returns.Status, bool) {
	return q.status, q.hasStatus
}

type ReturnView struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	SellerID     kernel.UUID
	Items        []ReturnItemView
	Reason       string
	Description  string
	Status       string
	AdminNotes   string
	SellerNotes  string
	RefundAmount decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
}

type ReturnItemView struct {
	BookID    kernel.UUID
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}
