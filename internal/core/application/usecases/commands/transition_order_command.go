package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move an order along its lifecycle.
// The action arrives as a caller spelling ("accept", "out_for_delivery") and is
// normalized once here.
type TransitionOrderCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
	action  order.Action
	reason  string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates the command. reason is only used by "reject".
func NewTransitionOrderCommand(actor kernel.Actor, orderID kernel.UUID, action, reason string) (TransitionOrderCommand, error) {
	parsed, actionErr := order.ParseAction(action)
	if err := errors.Join(actor.Validate(), orderID.Validate(), actionErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		actor:   actor,
		orderID: orderID,
		action:  parsed,
		reason:  strings.TrimSpace(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Actor() kernel.Actor  { return c.actor }
func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderCommand) Action() order.Action { return c.action }
func (c TransitionOrderCommand) Reason() string       { return c.reason }
