package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListBuybackRequestsQueryIsNotConstructed = errors.New(
		"ListBuybackRequestsQuery must be created via NewListBuybackRequestsQuery constructor",
	)
)

// ListBuybackRequestsQuery lists buyback requests: customers see their own, admins see
// the whole review queue.
type ListBuybackRequestsQuery struct {
	actor     kernel.Actor
	status    buyback.Status
	hasStatus bool
	limit     int

	guard guard.ConstructorGuard
}

func NewListBuybackRequestsQuery(actor kernel.Actor, status string, limit int) (ListBuybackRequestsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListBuybackRequestsQuery{}, err
	}

	q := ListBuybackRequestsQuery{actor: actor, limit: clampLimit(limit), guard: guard.NewConstructorGuard()}
	if status != "" {
		parsed, err := buyback.ParseStatus(status)
		if err != nil {
			return ListBuybackRequestsQuery{}, err
		}
		q.status, q.hasStatus = parsed, true
	}
	return q, nil
}

func (q ListBuybackRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListBuybackRequestsQueryIsNotConstructed)
}

func (q ListBuybackRequestsQuery) Actor() kernel.Actor { return q.actor }
func (q ListBuybackRequestsQuery) Limit() int          { return q.limit }

func (q ListBuybackRequestsQuery) Status() (buyback.Status, bool) {
	return q.status, q.hasStatus
}

// BuybackRequestView is the read model of a buyback request. Stock is the stock of the
// inventory item created at approval, zero before that.
type BuybackRequestView struct {
	ID                kernel.UUID
	SubmitterID       kernel.UUID
	Book              BookView
	Conditions        ConditionsView
	OfferedPrice      decimal.Decimal
	Status            string
	SellingPrice      decimal.Decimal
	PriceChangeReason string
	RejectionReason   string
	Stock             int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}

type BookView struct {
	Title     string
	Author    string
	ISBN      string
	Publisher string
	Edition   string
	MRP       decimal.Decimal
}

type ConditionsView struct {
	Page     string
	Binding  string
	Cover    string
	Markings string
	Damage   string
	Tier     string
}
