package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrRejectBuybackCommandIsNotConstructed = errors.New(
	"RejectBuybackCommand must be created via NewRejectBuybackCommand constructor",
)

// RejectBuybackCommand declines a buyback request. The reason is optional.
type RejectBuybackCommand struct {
	actor     kernel.Actor
	requestID kernel.UUID
	reason    string

	guard guard.ConstructorGuard
}

func NewRejectBuybackCommand(actor kernel.Actor, requestID kernel.UUID, reason string) (RejectBuybackCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return RejectBuybackCommand{}, err
	}
	return RejectBuybackCommand{
		actor:     actor,
		requestID: requestID,
		reason:    strings.TrimSpace(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RejectBuybackCommand) Validate() error {
	return c.guard.Validate(ErrRejectBuybackCommandIsNotConstructed)
}

func (c RejectBuybackCommand) Actor() kernel.Actor    { return c.actor }
func (c RejectBuybackCommand) RequestID() kernel.UUID { return c.requestID }
func (c RejectBuybackCommand) Reason() string         { return c.reason }
