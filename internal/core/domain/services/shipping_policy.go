package services

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// ShippingPolicy charges a flat fee per order, waived when the order subtotal reaches
// the free-shipping threshold. A zero threshold disables the waiver.
type ShippingPolicy struct {
	flatFee       decimal.Decimal
	freeThreshold decimal.Decimal
}

// NewShippingPolicy validates the configured amounts.
func NewShippingPolicy(flatFee, freeThreshold decimal.Decimal) (ShippingPolicy, error) {
	if err := errors.Join(
		kernel.ValidateNonNegativeAmount("shipping fee", flatFee),
		kernel.ValidateNonNegativeAmount("free shipping threshold", freeThreshold),
	); err != nil {
		return ShippingPolicy{}, err
	}
	return ShippingPolicy{flatFee: flatFee, freeThreshold: freeThreshold}, nil
}

// Fee returns the shipping fee for an order with the given subtotal.
func (p ShippingPolicy) Fee(subtotal decimal.Decimal) decimal.Decimal {
	if p.freeThreshold.IsPositive() && subtotal.GreaterThanOrEqual(p.freeThreshold) {
		return decimal.Zero
	}
	return p.flatFee
}
