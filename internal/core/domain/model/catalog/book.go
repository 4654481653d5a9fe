// Package catalog holds the seller-listed books customers order from. The catalog is
// maintained elsewhere; this service only reads listings and reserves their stock.
package catalog

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Book is a seller's listing of a new or used book.
type Book struct {
	id       kernel.UUID
	sellerID kernel.UUID
	title    string
	price    decimal.Decimal
	stock    int
}

// RestoreBook rebuilds a listing read from the catalog.
func RestoreBook(id, sellerID kernel.UUID, title string, price decimal.Decimal, stock int) (Book, error) {
	var titleErr, stockErr error
	if title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if stock < 0 {
		stockErr = errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	if err := errors.Join(
		id.Validate(),
		sellerID.Validate(),
		titleErr,
		kernel.ValidatePositiveAmount("price", price),
		stockErr,
	); err != nil {
		return Book{}, err
	}
	return Book{id: id, sellerID: sellerID, title: title, price: price, stock: stock}, nil
}

func (b Book) ID() kernel.UUID        { return b.id }
func (b Book) SellerID() kernel.UUID  { return b.sellerID }
func (b Book) Title() string          { return b.title }
func (b Book) Price() decimal.Decimal { return b.price }
func (b Book) Stock() int             { return b.stock }

// CheckAvailable reports a capacity error unless quantity copies are in stock.
func (b Book) CheckAvailable(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > b.stock {
		return errs.NewValueIsOutOfRangeError("quantity of "+b.title, quantity, 1, b.stock)
	}
	return nil
}
