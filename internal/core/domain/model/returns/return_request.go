package returns

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrReturnRequestIsNotConstructed = errors.New("ReturnRequest must be created via NewReturnRequest constructor")

// Line is what the customer asks to return: a book of the order and a quantity.
type Line struct {
	BookID   kernel.UUID
	Quantity int
}

// Item is a returned order line with the price paid for it.
type Item struct {
	BookID    kernel.UUID
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ReturnRequest is the aggregate root of a post-delivery return.
type ReturnRequest struct {
	id          kernel.UUID
	orderID     kernel.UUID
	customerID  kernel.UUID
	sellerID    kernel.UUID
	items       []Item
	reason      string
	description string

	status       Status
	adminNotes   string
	sellerNotes  string
	refundAmount decimal.Decimal

	createdAt time.Time
	updatedAt time.Time
	version   int

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of a return request back into the domain.
type Snapshot struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	SellerID     kernel.UUID
	Items        []Item
	Reason       string
	Description  string
	Status       Status
	AdminNotes   string
	SellerNotes  string
	RefundAmount decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int
}

// NewReturnRequest opens a return against a delivered order.
//
// previous are the returns already filed for the same order. None of them may still be
// active, and every requested quantity must fit in what the order line has left after
// subtracting quantities of earlier returns that were not rejected.
func NewReturnRequest(
	id kernel.UUID,
	o *order.Order,
	lines []Line,
	reason, description string,
	previous []*ReturnRequest,
	now time.Time,
) (*ReturnRequest, error) {
	if err := errors.Join(id.Validate(), o.Validate()); err != nil {
		return nil, err
	}
	if o.Status() != order.Delivered {
		return nil, errs.NewStateConflictError("order", o.Status().String(), "return")
	}
	for _, p := range previous {
		if p.status.IsActive() {
			return nil, errs.NewStateConflictErrorWithCause("order", o.Status().String(), "return",
				fmt.Errorf("return %s is still %s", p.id, p.status))
		}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}

	items, err := pickItems(o, lines, previous)
	if err != nil {
		return nil, err
	}

	return &ReturnRequest{
		id:          id,
		orderID:     o.ID(),
		customerID:  o.BuyerID(),
		sellerID:    o.SellerID(),
		items:       items,
		reason:      reason,
		description: strings.TrimSpace(description),
		status:      PendingAdmin,
		createdAt:   now.UTC(),
		updatedAt:   now.UTC(),
		version:     1,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func pickItems(o *order.Order, lines []Line, previous []*ReturnRequest) ([]Item, error) {
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	returned := make(map[kernel.UUID]int)
	for _, p := range previous {
		if !p.status.CountsAgainstQuantity() {
			continue
		}
		for _, item := range p.items {
			returned[item.BookID] += item.Quantity
		}
	}

	items := make([]Item, 0, len(lines))
	seen := make(map[kernel.UUID]struct{}, len(lines))
	for _, l := range lines {
		orderItem, ok := o.Item(l.BookID)
		if !ok {
			return nil, errs.NewObjectNotFoundErrorWithCause("book", l.BookID.String(),
				fmt.Errorf("not part of order %s", o.ID()))
		}
		if _, dup := seen[l.BookID]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("book %s appears twice", l.BookID))
		}
		seen[l.BookID] = struct{}{}

		remaining := orderItem.Quantity() - returned[l.BookID]
		if l.Quantity < 1 || l.Quantity > remaining {
			return nil, errs.NewValueIsOutOfRangeError("return quantity of "+orderItem.Title(), l.Quantity, 1, remaining)
		}
		items = append(items, Item{
			BookID:    l.BookID,
			Title:     orderItem.Title(),
			UnitPrice: orderItem.UnitPrice(),
			Quantity:  l.Quantity,
		})
	}
	return items, nil
}

// RestoreReturnRequest rebuilds a return loaded from persistence.
func RestoreReturnRequest(s Snapshot) (*ReturnRequest, error) {
	var itemsErr error
	if len(s.Items) == 0 {
		itemsErr = errs.NewValueIsRequiredError("items")
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.OrderID.Validate(),
		s.CustomerID.Validate(),
		s.SellerID.Validate(),
		itemsErr,
		s.Status.Validate(),
		kernel.ValidateNonNegativeAmount("refund amount", s.RefundAmount),
	); err != nil {
		return nil, err
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return &ReturnRequest{
		id:           s.ID,
		orderID:      s.OrderID,
		customerID:   s.CustomerID,
		sellerID:     s.SellerID,
		items:        items,
		reason:       s.Reason,
		description:  s.Description,
		status:       s.Status,
		adminNotes:   s.AdminNotes,
		sellerNotes:  s.SellerNotes,
		refundAmount: s.RefundAmount,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		version:      s.Version,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (r *ReturnRequest) Validate() error {
	if r == nil {
		return ErrReturnRequestIsNotConstructed
	}
	return r.guard.Validate(ErrReturnRequestIsNotConstructed)
}

func (r *ReturnRequest) ID() kernel.UUID               { return r.id }
func (r *ReturnRequest) OrderID() kernel.UUID          { return r.orderID }
func (r *ReturnRequest) CustomerID() kernel.UUID       { return r.customerID }
func (r *ReturnRequest) SellerID() kernel.UUID         { return r.sellerID }
func (r *ReturnRequest) Reason() string                { return r.reason }
func (r *ReturnRequest) Description() string           { return r.description }
func (r *ReturnRequest) Status() Status                { return r.status }
func (r *ReturnRequest) AdminNotes() string            { return r.adminNotes }
func (r *ReturnRequest) SellerNotes() string           { return r.sellerNotes }
func (r *ReturnRequest) RefundAmount() decimal.Decimal { return r.refundAmount }
func (r *ReturnRequest) CreatedAt() time.Time          { return r.createdAt }
func (r *ReturnRequest) UpdatedAt() time.Time          { return r.updatedAt }
func (r *ReturnRequest) Version() int                  { return r.version }

func (r *ReturnRequest) Items() []Item {
	items := make([]Item, len(r.items))
	copy(items, r.items)
	return items
}

// DefaultRefund is Σ unit price × quantity over the returned items.
func (r *ReturnRequest) DefaultRefund() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// SetVersion records the version persisted by a successful compare-and-swap write.
func (r *ReturnRequest) SetVersion(version int) {
	r.version = version
}

// Approve records the admin's approval; the seller is then asked to refund.
func (r *ReturnRequest) Approve(notes string, now time.Time) error {
	next, err := r.status.Approve()
	if err != nil {
		return err
	}
	r.status = next
	r.adminNotes = strings.TrimSpace(notes)
	r.updatedAt = now.UTC()
	return nil
}

// Reject records the admin's rejection. Notes are mandatory so the customer learns why.
func (r *ReturnRequest) Reject(notes string, now time.Time) error {
	next, err := r.status.Reject()
	if err != nil {
		return err
	}
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return errs.NewValueIsRequiredError("admin notes")
	}
	r.status = next
	r.adminNotes = notes
	r.updatedAt = now.UTC()
	return nil
}

// IssueRefund records the seller's refund. With a nil override the refund is
// DefaultRefund; an override must lie within [0, orderTotal].
func (r *ReturnRequest) IssueRefund(override *decimal.Decimal, orderTotal decimal.Decimal, notes string, now time.Time) error {
	next, err := r.status.Refund()
	if err != nil {
		return err
	}

	amount := r.DefaultRefund()
	if override != nil {
		if override.IsNegative() || override.GreaterThan(orderTotal) {
			return errs.NewValueIsOutOfRangeError("refund amount", override.String(), "0", orderTotal.String())
		}
		amount = *override
	}

	r.status = next
	r.refundAmount = amount
	r.sellerNotes = strings.TrimSpace(notes)
	r.updatedAt = now.UTC()
	return nil
}

// Complete closes a refunded return.
func (r *ReturnRequest) Complete(now time.Time) error {
	next, err := r.status.Complete()
	if err != nil {
		return err
	}
	r.status = next
	r.updatedAt = now.UTC()
	return nil
}

// IsDueForCompletion reports whether a refunded return has waited at least grace.
func (r *ReturnRequest) IsDueForCompletion(now time.Time, grace time.Duration) bool {
	return r.status == RefundIssued && !r.updatedAt.Add(grace).After(now)
}
