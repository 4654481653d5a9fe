package buybackorder

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

// TrackingPrefix starts the tracking number assigned at checkout.
const TrackingPrefix = "BB"

var ErrBuybackOrderIsNotConstructed = errors.New("BuybackOrder must be created via NewBuybackOrder constructor")

// Line is one purchased inventory item with its price snapshot.
type Line struct {
	ItemID    kernel.UUID
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal is unit price × quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Subtotal is the sum of line totals, used to price shipping before the order exists.
func Subtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}

func (l Line) validate() error {
	var titleErr, quantityErr error
	if strings.TrimSpace(l.Title) == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if l.Quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", l.Quantity))
	}
	return errors.Join(l.ItemID.Validate(), titleErr, kernel.ValidatePositiveAmount("unit price", l.UnitPrice), quantityErr)
}

// BuybackOrder is a seller's purchase of buyback inventory. The seller is the buyer here
// and the platform ships, so forward steps belong to admins.
type BuybackOrder struct {
	id       kernel.UUID
	sellerID kernel.UUID
	lines    []Line

	shippingFee    decimal.Decimal
	address        kernel.Address
	paymentMethod  kernel.PaymentMethod
	trackingNumber kernel.TrackingNumber
	status         Status

	createdAt time.Time
	updatedAt time.Time
	version   int

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of a buyback order back into the domain.
type Snapshot struct {
	ID             kernel.UUID
	SellerID       kernel.UUID
	Lines          []Line
	ShippingFee    decimal.Decimal
	Address        kernel.Address
	PaymentMethod  kernel.PaymentMethod
	TrackingNumber kernel.TrackingNumber
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

// NewBuybackOrder creates an order in PickupScheduled with a fresh tracking number.
func NewBuybackOrder(
	id kernel.UUID,
	sellerID kernel.UUID,
	lines []Line,
	shippingFee decimal.Decimal,
	address kernel.Address,
	payment kernel.PaymentMethod,
	now time.Time,
) (*BuybackOrder, error) {
	return restore(Snapshot{
		ID:             id,
		SellerID:       sellerID,
		Lines:          lines,
		ShippingFee:    shippingFee,
		Address:        address,
		PaymentMethod:  payment,
		TrackingNumber: kernel.NewTrackingNumber(TrackingPrefix),
		Status:         PickupScheduled,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
		Version:        1,
	})
}

// RestoreBuybackOrder rebuilds an order loaded from persistence.
func RestoreBuybackOrder(s Snapshot) (*BuybackOrder, error) {
	return restore(s)
}

func restore(s Snapshot) (*BuybackOrder, error) {
	var linesErr error
	if len(s.Lines) == 0 {
		linesErr = errs.NewValueIsRequiredError("lines")
	}
	for _, l := range s.Lines {
		linesErr = errors.Join(linesErr, l.validate())
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.SellerID.Validate(),
		linesErr,
		kernel.ValidateNonNegativeAmount("shipping fee", s.ShippingFee),
		s.Address.Validate(),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	return &BuybackOrder{
		id:             s.ID,
		sellerID:       s.SellerID,
		lines:          lines,
		shippingFee:    s.ShippingFee,
		address:        s.Address,
		paymentMethod:  s.PaymentMethod,
		trackingNumber: s.TrackingNumber,
		status:         s.Status,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		version:        s.Version,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (o *BuybackOrder) Validate() error {
	if o == nil {
		return ErrBuybackOrderIsNotConstructed
	}
	return o.guard.Validate(ErrBuybackOrderIsNotConstructed)
}

func (o *BuybackOrder) ID() kernel.UUID                       { return o.id }
func (o *BuybackOrder) SellerID() kernel.UUID                 { return o.sellerID }
func (o *BuybackOrder) ShippingFee() decimal.Decimal          { return o.shippingFee }
func (o *BuybackOrder) Address() kernel.Address               { return o.address }
func (o *BuybackOrder) PaymentMethod() kernel.PaymentMethod   { return o.paymentMethod }
func (o *BuybackOrder) TrackingNumber() kernel.TrackingNumber { return o.trackingNumber }
func (o *BuybackOrder) Status() Status                        { return o.status }
func (o *BuybackOrder) CreatedAt() time.Time                  { return o.createdAt }
func (o *BuybackOrder) UpdatedAt() time.Time                  { return o.updatedAt }
func (o *BuybackOrder) Version() int                          { return o.version }

func (o *BuybackOrder) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

func (o *BuybackOrder) Subtotal() decimal.Decimal {
	return Subtotal(o.lines)
}

func (o *BuybackOrder) Total() decimal.Decimal {
	return o.Subtotal().Add(o.shippingFee)
}

// SetVersion records the version persisted by a successful compare-and-swap write.
func (o *BuybackOrder) SetVersion(version int) {
	o.version = version
}

// Authorize checks that actor may move the order to target: admins drive fulfilment,
// and the purchasing seller may additionally cancel.
func (o *BuybackOrder) Authorize(actor kernel.Actor, target Status) error {
	if actor.Role() == kernel.RoleAdmin {
		return nil
	}
	if target == Cancelled {
		return actor.RequireOwner("cancel buyback order", kernel.RoleSeller, o.sellerID)
	}
	return errs.NewPermissionDeniedError(string(actor.Role()), "mark buyback order "+target.String())
}

// MoveTo advances fulfilment to target and reports whether the status changed.
// Requesting the current status again is a no-op success.
func (o *BuybackOrder) MoveTo(target Status, now time.Time) (bool, error) {
	next, err := o.status.MoveTo(target)
	if err != nil {
		return false, err
	}
	if next == o.status {
		return false, nil
	}
	o.status = next
	o.updatedAt = now.UTC()
	return true, nil
}
