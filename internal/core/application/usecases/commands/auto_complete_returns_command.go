package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/guard"
)

// AutoCompleteReturnsCommand closes every return that has stayed refund-issued for
// longer than the configured grace period, as of now.
//
// Example:
//
//	cmd := NewAutoCompleteReturnsCommand(time.Now())
//	completed, err := handler.Handle(ctx, cmd)
type AutoCompleteReturnsCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

var (
	ErrAutoCompleteReturnsCommandIsNotConstructed = errors.New(
		"AutoCompleteReturnsCommand must be created via NewAutoCompleteReturnsCommand constructor",
	)
)

func NewAutoCompleteReturnsCommand(now time.Time) AutoCompleteReturnsCommand {
	return AutoCompleteReturnsCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AutoCompleteReturnsCommand) Validate() error {
	return c.guard.Validate(ErrAutoCompleteReturnsCommandIsNotConstructed)
}

func (c *AutoCompleteReturnsCommand) Now() time.Time {
	return c.now
}
