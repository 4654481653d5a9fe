package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// TrackingPrefix starts every tracking number assigned when an order ships.
const TrackingPrefix = "BK"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a customer purchase from one seller.
//
// Invariants:
//   - Every line belongs to the order's seller; there is at least one line
//   - Total is always Subtotal + ShippingFee, both derived from the lines held here
//   - Status only moves along the edges documented on Status
//   - A tracking number exists from Shipped onwards
//   - A rejected order always carries a non-empty rejection reason
type Order struct {
	id       kernel.UUID
	buyerID  kernel.UUID
	sellerID kernel.UUID
	items    []Item

	shippingFee     decimal.Decimal
	status          Status
	shippingAddress kernel.Address
	paymentMethod   kernel.PaymentMethod
	trackingNumber  kernel.TrackingNumber
	rejectionReason string

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic-lock counter; repositories compare and bump it
	version int

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of an order back into the domain.
type Snapshot struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	SellerID        kernel.UUID
	Items           []Item
	ShippingFee     decimal.Decimal
	Status          Status
	ShippingAddress kernel.Address
	PaymentMethod   kernel.PaymentMethod
	TrackingNumber  kernel.TrackingNumber
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int
}

// NewOrder creates a Pending order.
//
// Example:
//
//	item, _ := order.NewItem(bookID, "Dune", decimal.NewFromInt(450), 2)
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, sellerID,
//	    []order.Item{item}, decimal.NewFromInt(40), address, payment, time.Now())
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	items []Item,
	shippingFee decimal.Decimal,
	address kernel.Address,
	payment kernel.PaymentMethod,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:          Pending,
		shippingAddress: address,
		paymentMethod:   payment,
		createdAt:       now.UTC(),
		updatedAt:       now.UTC(),
		version:         1,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setParties(buyerID, sellerID),
		o.setItems(items),
		o.setShippingFee(shippingFee),
		address.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from persistence.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:          s.Status,
		shippingAddress: s.ShippingAddress,
		paymentMethod:   s.PaymentMethod,
		trackingNumber:  s.TrackingNumber,
		rejectionReason: s.RejectionReason,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		version:         s.Version,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setParties(s.BuyerID, s.SellerID),
		o.setItems(s.Items),
		o.setShippingFee(s.ShippingFee),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID                       { return o.id }
func (o *Order) BuyerID() kernel.UUID                  { return o.buyerID }
func (o *Order) SellerID() kernel.UUID                 { return o.sellerID }
func (o *Order) ShippingFee() decimal.Decimal          { return o.shippingFee }
func (o *Order) Status() Status                        { return o.status }
func (o *Order) ShippingAddress() kernel.Address       { return o.shippingAddress }
func (o *Order) PaymentMethod() kernel.PaymentMethod   { return o.paymentMethod }
func (o *Order) TrackingNumber() kernel.TrackingNumber { return o.trackingNumber }
func (o *Order) RejectionReason() string               { return o.rejectionReason }
func (o *Order) CreatedAt() time.Time                  { return o.createdAt }
func (o *Order) UpdatedAt() time.Time                  { return o.updatedAt }
func (o *Order) Version() int                          { return o.version }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item returns the line for bookID.
func (o *Order) Item(bookID kernel.UUID) (Item, bool) {
	for _, item := range o.items {
		if item.bookID.IsEqual(bookID) {
			return item, true
		}
	}
	return Item{}, false
}

// Subtotal sums the line totals.
func (o *Order) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Total is Subtotal plus ShippingFee. It is never stored independently of the lines.
func (o *Order) Total() decimal.Decimal {
	return o.Subtotal().Add(o.shippingFee)
}

// SetVersion records the version persisted by a successful compare-and-swap write.
func (o *Order) SetVersion(version int) {
	o.version = version
}

// Apply performs action and reports whether the status changed.
// A repeated action on an order already in the target status is a no-op success.
// reason is only read by ActionReject.
func (o *Order) Apply(action Action, reason string, now time.Time) (bool, error) {
	before := o.status
	var err error
	switch action {
	case ActionAccept:
		err = o.transition(o.status.Accept, now)
	case ActionReject:
		err = o.Reject(reason, now)
	case ActionPack:
		err = o.transition(o.status.Pack, now)
	case ActionShip:
		err = o.Ship(now)
	case ActionOutForDelivery:
		err = o.transition(o.status.MarkOutForDelivery, now)
	case ActionDeliver:
		err = o.transition(o.status.Deliver, now)
	case ActionCancel:
		err = o.transition(o.status.Cancel, now)
	default:
		err = errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a valid order action", action))
	}
	if err != nil {
		return false, err
	}
	return before != o.status, nil
}

// Reject declines a pending order. The reason is surfaced to the buyer verbatim.
func (o *Order) Reject(reason string, now time.Time) error {
	if o.status == Rejected {
		return nil
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if err := o.transition(o.status.Reject, now); err != nil {
		return err
	}
	o.rejectionReason = strings.TrimSpace(reason)
	return nil
}

// Ship moves a packed order to Shipped and assigns its tracking number.
func (o *Order) Ship(now time.Time) error {
	if o.status == Shipped {
		return nil
	}
	if err := o.transition(o.status.Ship, now); err != nil {
		return err
	}
	o.trackingNumber = kernel.NewTrackingNumber(TrackingPrefix)
	return nil
}

// ReleasesStock reports whether reaching the current status gives the reserved book
// stock back to the catalog.
func (o *Order) ReleasesStock() bool {
	return o.status == Rejected || o.status == Cancelled
}

func (o *Order) transition(step func() (Status, error), now time.Time) error {
	next, err := step()
	if err != nil {
		return err
	}
	if next != o.status {
		o.status = next
		o.updatedAt = now.UTC()
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(buyerID, sellerID kernel.UUID) error {
	if err := errors.Join(buyerID.Validate(), sellerID.Validate()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("order parties", err)
	}
	o.buyerID = buyerID
	o.sellerID = sellerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.bookID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", err)
		}
		if _, dup := seen[item.bookID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("book %s appears twice", item.bookID))
		}
		seen[item.bookID] = struct{}{}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setShippingFee(fee decimal.Decimal) error {
	if err := kernel.ValidateNonNegativeAmount("shipping fee", fee); err != nil {
		return err
	}
	o.shippingFee = fee
	return nil
}
