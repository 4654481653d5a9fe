package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand asks to turn a customer's basket into orders.
// Prices, sellers and totals are never part of the command; they are read from the catalog.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(actor, []services.BasketLine{{BookID: id, Quantity: 2}},
//	    "221B Baker Street", "cod")
//	if err != nil {
//	    return fmt.Errorf("invalid basket: %w", err)
//	}
//	orders, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	lines   []services.BasketLine
	address kernel.Address
	payment kernel.PaymentMethod

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	actor kernel.Actor,
	lines []services.BasketLine,
	address string,
	payment string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		cmd.setLines(lines),
		cmd.setAddress(address),
		cmd.setPayment(payment),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Actor() kernel.Actor                 { return c.actor }
func (c PlaceOrderCommand) Address() kernel.Address             { return c.address }
func (c PlaceOrderCommand) PaymentMethod() kernel.PaymentMethod { return c.payment }

func (c PlaceOrderCommand) Lines() []services.BasketLine {
	lines := make([]services.BasketLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// BookIDs returns the distinct books of the basket.
func (c PlaceOrderCommand) BookIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(c.lines))
	ids := make([]kernel.UUID, 0, len(c.lines))
	for _, l := range c.lines {
		if _, ok := seen[l.BookID]; ok {
			continue
		}
		seen[l.BookID] = struct{}{}
		ids = append(ids, l.BookID)
	}
	return ids
}

func (c *PlaceOrderCommand) setLines(lines []services.BasketLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, l := range lines {
		if err := l.BookID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].bookId", i), err)
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", l.Quantity))
		}
	}
	c.lines = lines
	return nil
}

func (c *PlaceOrderCommand) setAddress(address string) error {
	a, err := kernel.NewAddress(address)
	if err != nil {
		return err
	}
	c.address = a
	return nil
}

func (c *PlaceOrderCommand) setPayment(payment string) error {
	p, err := kernel.NewPaymentMethod(payment)
	if err != nil {
		return err
	}
	c.payment = p
	return nil
}
