package kernel

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// BookDetails describes a physical book as entered by a customer. It is snapshotted
// into buyback requests and the inventory items made from them.
type BookDetails struct {
	title     string
	author    string
	isbn      string
	publisher string
	edition   string
	mrp       decimal.Decimal
}

// NewBookDetails validates the descriptive fields. Only the title is mandatory; a zero
// mrp means the list price is unknown. ISBN hyphens and spaces are stripped and the
// remainder must be 10 or 13 characters long.
func NewBookDetails(title, author, isbn, publisher, edition string, mrp decimal.Decimal) (BookDetails, error) {
	b := BookDetails{
		title:     strings.TrimSpace(title),
		author:    strings.TrimSpace(author),
		isbn:      strings.ToUpper(strings.NewReplacer("-", "", " ", "").Replace(isbn)),
		publisher: strings.TrimSpace(publisher),
		edition:   strings.TrimSpace(edition),
		mrp:       mrp,
	}

	var titleErr, isbnErr error
	if b.title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if n := len(b.isbn); n != 0 && n != 10 && n != 13 {
		isbnErr = errs.NewValueIsInvalidErrorWithCause("isbn", fmt.Errorf("%q has %d characters, want 10 or 13", isbn, n))
	}
	if err := errors.Join(titleErr, isbnErr, ValidateNonNegativeAmount("mrp", mrp)); err != nil {
		return BookDetails{}, err
	}
	return b, nil
}

func (b BookDetails) Title() string        { return b.title }
func (b BookDetails) Author() string       { return b.author }
func (b BookDetails) ISBN() string         { return b.isbn }
func (b BookDetails) Publisher() string    { return b.publisher }
func (b BookDetails) Edition() string      { return b.edition }
func (b BookDetails) MRP() decimal.Decimal { return b.mrp }

func (b BookDetails) Validate() error {
	if b.title == "" {
		return errs.NewValueIsRequiredError("book details")
	}
	return nil
}
