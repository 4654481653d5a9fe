package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrApproveBuybackCommandIsNotConstructed = errors.New(
	"ApproveBuybackCommand must be created via NewApproveBuybackCommand constructor",
)

// ApproveBuybackCommand accepts a buyback request at sellingPrice. reason explains a
// selling price that differs from the offered price.
type ApproveBuybackCommand struct {
	actor        kernel.Actor
	requestID    kernel.UUID
	sellingPrice decimal.Decimal
	reason       string

	guard guard.ConstructorGuard
}

func NewApproveBuybackCommand(
	actor kernel.Actor,
	requestID kernel.UUID,
	sellingPrice decimal.Decimal,
	reason string,
) (ApproveBuybackCommand, error) {
	if err := errors.Join(
		actor.Validate(),
		requestID.Validate(),
		kernel.ValidatePositiveAmount("selling price", sellingPrice),
	); err != nil {
		return ApproveBuybackCommand{}, err
	}

	return ApproveBuybackCommand{
		actor:        actor,
		requestID:    requestID,
		sellingPrice: sellingPrice,
		reason:       strings.TrimSpace(reason),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveBuybackCommand) Validate() error {
	return c.guard.Validate(ErrApproveBuybackCommandIsNotConstructed)
}

func (c ApproveBuybackCommand) Actor() kernel.Actor           { return c.actor }
func (c ApproveBuybackCommand) RequestID() kernel.UUID        { return c.requestID }
func (c ApproveBuybackCommand) SellingPrice() decimal.Decimal { return c.sellingPrice }
func (c ApproveBuybackCommand) Reason() string                { return c.reason }
