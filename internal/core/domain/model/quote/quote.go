package quote

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultBasePrice is used when the customer does not know the book's MRP.
const DefaultBasePrice = 250

var (
	// CeilingMultiplier is the share of the base price offered for a flawless book.
	CeilingMultiplier = decimal.RequireFromString("0.40")
	// FloorMultiplier is the smallest share ever offered.
	FloorMultiplier = decimal.RequireFromString("0.05")
)

// Quote is the result of pricing a buyback book.
type Quote struct {
	BasePrice    decimal.Decimal
	Multiplier   decimal.Decimal
	OfferedPrice decimal.Decimal
}

// BasePrice returns mrp, or DefaultBasePrice when mrp is zero or negative.
func BasePrice(mrp decimal.Decimal) decimal.Decimal {
	if !mrp.IsPositive() {
		return decimal.NewFromInt(DefaultBasePrice)
	}
	return mrp
}

// Multiplier returns the clamped share of the base price for the given conditions.
func Multiplier(c Conditions) decimal.Decimal {
	m := CeilingMultiplier.Sub(c.TotalDeduction())
	if m.LessThan(FloorMultiplier) {
		return FloorMultiplier
	}
	if m.GreaterThan(CeilingMultiplier) {
		return CeilingMultiplier
	}
	return m
}

// Calculate prices a book. It is deterministic and has no side effects.
//
// Example:
//
//	q := quote.Calculate(decimal.NewFromInt(500), quote.ParseConditions(
//	    "damaged", "broken", "damaged", "heavy", "severe", "poor"))
//	// q.Multiplier == 0.05, q.OfferedPrice == 25
func Calculate(mrp decimal.Decimal, c Conditions) Quote {
	base := BasePrice(mrp)
	multiplier := Multiplier(c)
	return Quote{
		BasePrice:    base,
		Multiplier:   multiplier,
		OfferedPrice: kernel.RoundToUnit(base.Mul(multiplier)),
	}
}
