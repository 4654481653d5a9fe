package kernel

import (
	"strings"
	"unicode/utf8"

	"marketplace/internal/pkg/errs"
)

const maxAddressLength = 500

// Address is a free-form delivery or pickup address.
type Address struct {
	value string
}

func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(value); n > maxAddressLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", n, 1, maxAddressLength)
	}
	return Address{value: value}, nil
}

func (a Address) String() string {
	return a.value
}

func (a Address) Validate() error {
	if a.value == "" {
		return errs.NewValueIsRequiredError("address")
	}
	return nil
}
