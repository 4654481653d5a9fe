package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrQuoteBuybackQueryIsNotConstructed = errors.New("QuoteBuybackQuery must be created via NewQuoteBuybackQuery constructor")
)

// QuoteBuybackQuery prices a book before the customer submits it. A zero MRP means the
// customer does not know it and the default base price applies.
//
// Example:
//
//	query, _ := NewQuoteBuybackQuery(decimal.NewFromInt(500), quote.ParseConditions(
//	    "damaged", "broken", "damaged", "heavy", "severe", "poor"))
//	q, _ := NewQuoteBuybackQueryHandler().Handle(query) // q.OfferedPrice == 25
type QuoteBuybackQuery struct {
	mrp        decimal.Decimal
	conditions quote.Conditions

	guard guard.ConstructorGuard
}

func NewQuoteBuybackQuery(mrp decimal.Decimal, conditions quote.Conditions) (QuoteBuybackQuery, error) {
	if err := kernel.ValidateNonNegativeAmount("mrp", mrp); err != nil {
		return QuoteBuybackQuery{}, err
	}
	return QuoteBuybackQuery{mrp: mrp, conditions: conditions, guard: guard.NewConstructorGuard()}, nil
}

func (q QuoteBuybackQuery) Validate() error {
	return q.guard.Validate(ErrQuoteBuybackQueryIsNotConstructed)
}

func (q QuoteBuybackQuery) MRP() decimal.Decimal         { return q.mrp }
func (q QuoteBuybackQuery) Conditions() quote.Conditions { return q.conditions }
