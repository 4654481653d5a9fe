package order

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Item is one line of an order: a book, the price snapshot taken at placement, and a quantity.
type Item struct {
	bookID    kernel.UUID
	title     string
	unitPrice decimal.Decimal
	quantity  int
}

// NewItem validates and builds an order line.
func NewItem(bookID kernel.UUID, title string, unitPrice decimal.Decimal, quantity int) (Item, error) {
	title = strings.TrimSpace(title)
	var titleErr error
	if title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	var quantityErr error
	if quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(
		bookID.Validate(),
		titleErr,
		kernel.ValidatePositiveAmount("unit price", unitPrice),
		quantityErr,
	); err != nil {
		return Item{}, err
	}
	return Item{bookID: bookID, title: title, unitPrice: unitPrice, quantity: quantity}, nil
}

func (i Item) BookID() kernel.UUID {
	return i.bookID
}

func (i Item) Title() string {
	return i.title
}

func (i Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

func (i Item) Quantity() int {
	return i.quantity
}

// LineTotal is unit price × quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}
