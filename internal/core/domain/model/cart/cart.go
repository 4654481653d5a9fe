// Package cart models a seller's basket of buyback inventory items awaiting checkout.
package cart

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// Line is one inventory item and the quantity the seller wants.
type Line struct {
	ItemID   kernel.UUID
	Quantity int
}

// Cart is a seller's basket. Lines keep the order in which items were first added.
type Cart struct {
	sellerID kernel.UUID
	lines    []Line
}

// New returns an empty cart for sellerID.
func New(sellerID kernel.UUID) (*Cart, error) {
	if err := sellerID.Validate(); err != nil {
		return nil, err
	}
	return &Cart{sellerID: sellerID}, nil
}

// Restore rebuilds a cart loaded from persistence.
func Restore(sellerID kernel.UUID, lines []Line) (*Cart, error) {
	c, err := New(sellerID)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c, nil
}

func (c *Cart) SellerID() kernel.UUID {
	return c.sellerID
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity returns how many units of itemID are in the cart.
func (c *Cart) Quantity(itemID kernel.UUID) int {
	for _, l := range c.lines {
		if l.ItemID.IsEqual(itemID) {
			return l.Quantity
		}
	}
	return 0
}

// Add puts quantity more units of itemID in the cart. The resulting quantity must not
// exceed available; exceeding it is a capacity error and the cart is left unchanged.
func (c *Cart) Add(itemID kernel.UUID, quantity, available int) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	total := c.Quantity(itemID) + quantity
	if total > available {
		return errs.NewValueIsOutOfRangeError("cart quantity", total, 1, available)
	}

	for i := range c.lines {
		if c.lines[i].ItemID.IsEqual(itemID) {
			c.lines[i].Quantity = total
			return nil
		}
	}
	c.lines = append(c.lines, Line{ItemID: itemID, Quantity: quantity})
	return nil
}

// Remove drops itemID from the cart.
func (c *Cart) Remove(itemID kernel.UUID) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if !l.ItemID.IsEqual(itemID) {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}

// Clear empties the cart after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}
