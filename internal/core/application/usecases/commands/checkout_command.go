package commands

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand or NewBuyNowCommand constructor",
)

// CheckoutCommand buys buyback inventory. Without explicit lines the seller's stored
// cart is checked out and cleared on success.
//
// Example:
//
//	cmd, err := NewCheckoutCommand(seller, nil, "12 Market Road", "upi")
//	order, err := handler.Handle(ctx, cmd) // buys the whole cart
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	actor   kernel.Actor
	lines   []cart.Line
	address kernel.Address
	payment kernel.PaymentMethod

	guard guard.ConstructorGuard
}

func NewCheckoutCommand(actor kernel.Actor, lines []cart.Line, address, payment string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}

	a, addrErr := kernel.NewAddress(address)
	p, payErr := kernel.NewPaymentMethod(payment)
	if err := errors.Join(actor.Validate(), cmd.setLines(lines), addrErr, payErr); err != nil {
		return CheckoutCommand{}, err
	}
	cmd.address = a
	cmd.payment = p

	return cmd, nil
}

// NewBuyNowCommand checks out a single item, bypassing the cart.
func NewBuyNowCommand(actor kernel.Actor, itemID kernel.UUID, quantity int, address, payment string) (CheckoutCommand, error) {
	if err := itemID.Validate(); err != nil {
		return CheckoutCommand{}, err
	}
	if quantity <= 0 {
		return CheckoutCommand{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return NewCheckoutCommand(actor, []cart.Line{{ItemID: itemID, Quantity: quantity}}, address, payment)
}

func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

func (c CheckoutCommand) Actor() kernel.Actor                 { return c.actor }
func (c CheckoutCommand) Address() kernel.Address             { return c.address }
func (c CheckoutCommand) PaymentMethod() kernel.PaymentMethod { return c.payment }

// FromCart reports whether the stored cart is checked out.
func (c CheckoutCommand) FromCart() bool {
	return len(c.lines) == 0
}

func (c CheckoutCommand) Lines() []cart.Line {
	lines := make([]cart.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CheckoutCommand) setLines(lines []cart.Line) error {
	for i, l := range lines {
		if err := l.ItemID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].itemId", i), err)
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", l.Quantity))
		}
	}
	c.lines = lines
	return nil
}
