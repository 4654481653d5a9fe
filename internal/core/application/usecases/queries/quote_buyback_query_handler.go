package queries

import (
	"marketplace/internal/core/domain/model/quote"
)

// QuoteBuybackQueryHandler runs the quote engine. It touches no storage.
type QuoteBuybackQueryHandler struct{}

func NewQuoteBuybackQueryHandler() QuoteBuybackQueryHandler {
	return QuoteBuybackQueryHandler{}
}

func (h QuoteBuybackQueryHandler) Handle(query QuoteBuybackQuery) (quote.Quote, error) {
	if err := query.Validate(); err != nil {
		return quote.Quote{}, err
	}
	return quote.Calculate(query.MRP(), query.Conditions()), nil
}
