package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteReturnCommandIsNotConstructed = errors.New(
	"CompleteReturnCommand must be created via NewCompleteReturnCommand constructor",
)

type CompleteReturnCommand struct {
	actor    kernel.Actor
	returnID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteReturnCommand(actor kernel.Actor, returnID kernel.UUID) (CompleteReturnCommand, error) {
	if err := errors.Join(actor.Validate(), returnID.Validate()); err != nil {
		return CompleteReturnCommand{}, err
	}
	return CompleteReturnCommand{
		actor:    actor,
		returnID: returnID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnCommandIsNotConstructed)
}

func (c CompleteReturnCommand) Actor() kernel.Actor   { return c.actor }
func (c CompleteReturnCommand) ReturnID() kernel.UUID { return c.returnID }
