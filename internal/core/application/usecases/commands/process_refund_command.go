package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProcessRefundCommandIsNotConstructed = errors.New(
	"ProcessRefundCommand must be created via NewProcessRefundCommand constructor",
)

// ProcessRefundCommand is the seller's refund for an approved return. A nil amount
// refunds the returned items at their order price.
type ProcessRefundCommand struct {
	actor    kernel.Actor
	returnID kernel.UUID
	amount   *decimal.Decimal
	notes    string

	guard guard.ConstructorGuard
}

func NewProcessRefundCommand(
	actor kernel.Actor,
	returnID kernel.UUID,
	amount *decimal.Decimal,
	notes string,
) (ProcessRefundCommand, error) {
	var amountErr error
	if amount != nil {
		amountErr = kernel.ValidateNonNegativeAmount("refund amount", *amount)
	}
	if err := errors.Join(actor.Validate(), returnID.Validate(), amountErr); err != nil {
		return ProcessRefundCommand{}, err
	}

	return ProcessRefundCommand{
		actor:    actor,
		returnID: returnID,
		amount:   amount,
		notes:    notes,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ProcessRefundCommand) Validate() error {
	return c.guard.Validate(ErrProcessRefundCommandIsNotConstructed)
}

func (c ProcessRefundCommand) Actor() kernel.Actor      { return c.actor }
func (c ProcessRefundCommand) ReturnID() kernel.UUID    { return c.returnID }
func (c ProcessRefundCommand) Amount() *decimal.Decimal { return c.amount }
func (c ProcessRefundCommand) Notes() string            { return c.notes }
