package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quote"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrSubmitBuybackCommandIsNotConstructed = errors.New(
	"SubmitBuybackCommand must be created via NewSubmitBuybackCommand constructor",
)

// SubmitBuybackCommand carries a customer's buyback offer. The quoted price the
// customer saw is optional; when present it must match the server's quote.
type SubmitBuybackCommand struct {
	actor       kernel.Actor
	book        kernel.BookDetails
	conditions  quote.Conditions
	quotedPrice *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewSubmitBuybackCommand(
	actor kernel.Actor,
	book kernel.BookDetails,
	conditions quote.Conditions,
	quotedPrice *decimal.Decimal,
) (SubmitBuybackCommand, error) {
	if err := errors.Join(actor.Validate(), book.Validate()); err != nil {
		return SubmitBuybackCommand{}, err
	}

	return SubmitBuybackCommand{
		actor:       actor,
		book:        book,
		conditions:  conditions,
		quotedPrice: quotedPrice,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitBuybackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitBuybackCommandIsNotConstructed)
}

func (c SubmitBuybackCommand) Actor() kernel.Actor           { return c.actor }
func (c SubmitBuybackCommand) Book() kernel.BookDetails      { return c.book }
func (c SubmitBuybackCommand) Conditions() quote.Conditions  { return c.conditions }
func (c SubmitBuybackCommand) QuotedPrice() *decimal.Decimal { return c.quotedPrice }
