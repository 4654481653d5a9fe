package commands

import (
	"errors"
	"fmt"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRequestReturnCommandIsNotConstructed = errors.New(
	"RequestReturnCommand must be created via NewRequestReturnCommand constructor",
)

// RequestReturnCommand asks to return some or all copies of a delivered order.
type RequestReturnCommand struct {
	actor       kernel.Actor
	orderID     kernel.UUID
	lines       []returns.Line
	reason      string
	description string

	guard guard.ConstructorGuard
}

func NewRequestReturnCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	lines []returns.Line,
	reason, description string,
) (RequestReturnCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return RequestReturnCommand{}, err
	}
	if len(lines) == 0 {
		return RequestReturnCommand{}, errs.NewValueIsRequiredError("items")
	}
	for i, l := range lines {
		if l.Quantity <= 0 {
			return RequestReturnCommand{}, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", l.Quantity))
		}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return RequestReturnCommand{}, errs.NewValueIsRequiredError("reason")
	}

	return RequestReturnCommand{
		actor:       actor,
		orderID:     orderID,
		lines:       lines,
		reason:      reason,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RequestReturnCommand) Validate() error {
	return c.guard.Validate(ErrRequestReturnCommandIsNotConstructed)
}

func (c RequestReturnCommand) Actor() kernel.Actor  { return c.actor }
func (c RequestReturnCommand) OrderID() kernel.UUID { return c.orderID }
func (c RequestReturnCommand) Reason() string       { return c.reason }
func (c RequestReturnCommand) Description() string  { return c.description }

func (c RequestReturnCommand) Lines() []returns.Line {
	lines := make([]returns.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}
