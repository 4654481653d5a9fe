package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ValidatePositiveAmount rejects zero and negative amounts.
func ValidatePositiveAmount(name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not greater than 0", amount))
	}
	return nil
}

// ValidateNonNegativeAmount rejects negative amounts.
func ValidateNonNegativeAmount(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", amount))
	}
	return nil
}

// RoundToUnit rounds to the nearest whole currency unit, halves away from zero.
func RoundToUnit(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}
