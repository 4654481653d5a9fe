// Package inventory holds the stock-bearing catalog items that approved buyback
// requests are turned into and that sellers purchase.
package inventory

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/buyback"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via Materialize constructor")

// Item is a purchasable unit of buyback stock. Exactly one item exists per approved
// buyback request, and its stock never goes below zero.
type Item struct {
	id               kernel.UUID
	buybackRequestID kernel.UUID
	book             kernel.BookDetails
	sellingPrice     decimal.Decimal
	stock            int
	createdAt        time.Time

	guard guard.ConstructorGuard
}

// Materialize creates the inventory item for an approved request.
func Materialize(id kernel.UUID, request *buyback.BuybackRequest, stock int, now time.Time) (*Item, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if request.Status() != buyback.Approved {
		return nil, errs.NewStateConflictError("buyback request", request.Status().String(), "materialize")
	}
	if stock <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is not greater than 0", stock))
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		id:               id,
		buybackRequestID: request.ID(),
		book:             request.Book(),
		sellingPrice:     request.SellingPrice(),
		stock:            stock,
		createdAt:        now.UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem rebuilds an item loaded from persistence.
func RestoreItem(
	id kernel.UUID,
	buybackRequestID kernel.UUID,
	book kernel.BookDetails,
	sellingPrice decimal.Decimal,
	stock int,
	createdAt time.Time,
) (*Item, error) {
	var stockErr error
	if stock < 0 {
		stockErr = errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	if err := errors.Join(
		id.Validate(),
		buybackRequestID.Validate(),
		book.Validate(),
		kernel.ValidatePositiveAmount("selling price", sellingPrice),
		stockErr,
	); err != nil {
		return nil, err
	}

	return &Item{
		id:               id,
		buybackRequestID: buybackRequestID,
		book:             book,
		sellingPrice:     sellingPrice,
		stock:            stock,
		createdAt:        createdAt,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID               { return i.id }
func (i *Item) BuybackRequestID() kernel.UUID { return i.buybackRequestID }
func (i *Item) Book() kernel.BookDetails      { return i.book }
func (i *Item) SellingPrice() decimal.Decimal { return i.sellingPrice }
func (i *Item) Stock() int                    { return i.stock }
func (i *Item) CreatedAt() time.Time          { return i.createdAt }

// IsListed reports whether sellers can see and buy the item.
func (i *Item) IsListed() bool {
	return i.stock > 0
}

// CheckAvailable reports a capacity error unless quantity units can be taken.
func (i *Item) CheckAvailable(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > i.stock {
		return errs.NewValueIsOutOfRangeError("quantity of "+i.book.Title(), quantity, 1, i.stock)
	}
	return nil
}

// Take removes quantity units from stock.
func (i *Item) Take(quantity int) error {
	if err := i.CheckAvailable(quantity); err != nil {
		return err
	}
	i.stock -= quantity
	return nil
}

// Restock returns quantity units, e.g. when a buyback order is cancelled.
func (i *Item) Restock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.stock += quantity
	return nil
}
