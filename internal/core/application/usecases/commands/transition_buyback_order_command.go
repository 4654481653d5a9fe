package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionBuybackOrderCommandIsNotConstructed = errors.New(
	"TransitionBuybackOrderCommand must be created via NewTransitionBuybackOrderCommand constructor",
)

// TransitionBuybackOrderCommand moves a buyback order to a fulfilment status given
// by name, e.g. "picked-up" or "cancel".
type TransitionBuybackOrderCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
	target  buybackorder.Status

	guard guard.ConstructorGuard
}

func NewTransitionBuybackOrderCommand(actor kernel.Actor, orderID kernel.UUID, target string) (TransitionBuybackOrderCommand, error) {
	status, statusErr := buybackorder.ParseStatus(target)
	if err := errors.Join(actor.Validate(), orderID.Validate(), statusErr); err != nil {
		return TransitionBuybackOrderCommand{}, err
	}

	return TransitionBuybackOrderCommand{
		actor:   actor,
		orderID: orderID,
		target:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionBuybackOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionBuybackOrderCommandIsNotConstructed)
}

func (c TransitionBuybackOrderCommand) Actor() kernel.Actor         { return c.actor }
func (c TransitionBuybackOrderCommand) OrderID() kernel.UUID        { return c.orderID }
func (c TransitionBuybackOrderCommand) Target() buybackorder.Status { return c.target }
