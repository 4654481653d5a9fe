package buyback

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrBuybackRequestIsNotConstructed is returned when a BuybackRequest was not created
// through NewBuybackRequest or RestoreBuybackRequest.
var ErrBuybackRequestIsNotConstructed = errors.New("BuybackRequest must be created via NewBuybackRequest constructor")

// BuybackRequest is the aggregate root of a customer's buyback submission.
//
// Invariants:
//   - offeredPrice is the quote engine's price for the stored book and conditions
//   - sellingPrice is positive once approved
//   - priceChangeReason is non-empty whenever sellingPrice differs from offeredPrice
//   - status never leaves Approved or Rejected
type BuybackRequest struct {
	id          kernel.UUID
	submitterID kernel.UUID
	book        kernel.BookDetails
	conditions  quote.Conditions

	offeredPrice      decimal.Decimal
	status            Status
	sellingPrice      decimal.Decimal
	priceChangeReason string
	rejectionReason   string

	// stock mirrors the materialised inventory item; it is zero until approval
	stock int

	createdAt time.Time
	updatedAt time.Time
	version   int

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of a buyback request back into the domain.
type Snapshot struct {
	ID                kernel.UUID
	SubmitterID       kernel.UUID
	Book              kernel.BookDetails
	Conditions        quote.Conditions
	OfferedPrice      decimal.Decimal
	Status            Status
	SellingPrice      decimal.Decimal
	PriceChangeReason string
	RejectionReason   string
	Stock             int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}

// NewBuybackRequest creates a Pending request and prices it with the quote engine.
func NewBuybackRequest(
	id kernel.UUID,
	submitterID kernel.UUID,
	book kernel.BookDetails,
	conditions quote.Conditions,
	now time.Time,
) (*BuybackRequest, error) {
	if err := errors.Join(id.Validate(), submitterID.Validate(), book.Validate()); err != nil {
		return nil, err
	}

	return &BuybackRequest{
		id:           id,
		submitterID:  submitterID,
		book:         book,
		conditions:   conditions,
		offeredPrice: quote.Calculate(book.MRP(), conditions).OfferedPrice,
		status:       Pending,
		createdAt:    now.UTC(),
		updatedAt:    now.UTC(),
		version:      1,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreBuybackRequest rebuilds a request loaded from persistence.
func RestoreBuybackRequest(s Snapshot) (*BuybackRequest, error) {
	var stockErr error
	if s.Stock < 0 {
		stockErr = errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", s.Stock))
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.SubmitterID.Validate(),
		s.Book.Validate(),
		s.Status.Validate(),
		kernel.ValidateNonNegativeAmount("offered price", s.OfferedPrice),
		stockErr,
	); err != nil {
		return nil, err
	}

	return &BuybackRequest{
		id:                s.ID,
		submitterID:       s.SubmitterID,
		book:              s.Book,
		conditions:        s.Conditions,
		offeredPrice:      s.OfferedPrice,
		status:            s.Status,
		sellingPrice:      s.SellingPrice,
		priceChangeReason: s.PriceChangeReason,
		rejectionReason:   s.RejectionReason,
		stock:             s.Stock,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
		version:           s.Version,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (r *BuybackRequest) Validate() error {
	if r == nil {
		return ErrBuybackRequestIsNotConstructed
	}
	return r.guard.Validate(ErrBuybackRequestIsNotConstructed)
}

func (r *BuybackRequest) ID() kernel.UUID               { return r.id }
func (r *BuybackRequest) SubmitterID() kernel.UUID      { return r.submitterID }
func (r *BuybackRequest) Book() kernel.BookDetails      { return r.book }
func (r *BuybackRequest) Conditions() quote.Conditions  { return r.conditions }
func (r *BuybackRequest) OfferedPrice() decimal.Decimal { return r.offeredPrice }
func (r *BuybackRequest) Status() Status                { return r.status }
func (r *BuybackRequest) SellingPrice() decimal.Decimal { return r.sellingPrice }
func (r *BuybackRequest) PriceChangeReason() string     { return r.priceChangeReason }
func (r *BuybackRequest) RejectionReason() string       { return r.rejectionReason }
func (r *BuybackRequest) Stock() int                    { return r.stock }
func (r *BuybackRequest) CreatedAt() time.Time          { return r.createdAt }
func (r *BuybackRequest) UpdatedAt() time.Time          { return r.updatedAt }
func (r *BuybackRequest) Version() int                  { return r.version }

// SetVersion records the version persisted by a successful compare-and-swap write.
func (r *BuybackRequest) SetVersion(version int) {
	r.version = version
}

// Approve accepts the book at sellingPrice. A reason is mandatory when sellingPrice
// differs from the offered price. The request must be Pending.
func (r *BuybackRequest) Approve(sellingPrice decimal.Decimal, reason string, now time.Time) error {
	next, err := r.status.Approve()
	if err != nil {
		return err
	}
	if err = kernel.ValidatePositiveAmount("selling price", sellingPrice); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if !sellingPrice.Equal(r.offeredPrice) && reason == "" {
		return errs.NewValueIsRequiredErrorWithCause("price change reason",
			fmt.Errorf("selling price %s differs from offered price %s", sellingPrice, r.offeredPrice))
	}

	r.status = next
	r.sellingPrice = sellingPrice
	r.priceChangeReason = reason
	r.updatedAt = now.UTC()
	return nil
}

// Reject declines the request. The reason is optional.
func (r *BuybackRequest) Reject(reason string, now time.Time) error {
	next, err := r.status.Reject()
	if err != nil {
		return err
	}
	r.status = next
	r.rejectionReason = strings.TrimSpace(reason)
	r.updatedAt = now.UTC()
	return nil
}

// AttachStock records the stock of the inventory item materialised from this request.
func (r *BuybackRequest) AttachStock(stock int) {
	r.stock = stock
}
