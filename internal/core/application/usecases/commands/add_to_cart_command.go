package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddToCartCommandIsNotConstructed = errors.New(
	"AddToCartCommand must be created via NewAddToCartCommand constructor",
)

type AddToCartCommand struct {
	actor    kernel.Actor
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

func NewAddToCartCommand(actor kernel.Actor, itemID kernel.UUID, quantity int) (AddToCartCommand, error) {
	if err := errors.Join(actor.Validate(), itemID.Validate()); err != nil {
		return AddToCartCommand{}, err
	}
	if quantity <= 0 {
		return AddToCartCommand{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return AddToCartCommand{
		actor:    actor,
		itemID:   itemID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddToCartCommandIsNotConstructed)
}

func (c AddToCartCommand) Actor() kernel.Actor { return c.actor }
func (c AddToCartCommand) ItemID() kernel.UUID { return c.itemID }
func (c AddToCartCommand) Quantity() int       { return c.quantity }
