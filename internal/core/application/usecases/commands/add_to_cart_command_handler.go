package commands

import (
	"context"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// AddToCartCommandHandler adds buyback inventory to a seller's cart. The cart quantity
// of an item may never exceed its current stock; an oversized add is refused, not clamped.
type AddToCartCommandHandler struct {
	uowFactory ResaleUoWFactory
}

func NewAddToCartCommandHandler(uowFactory ResaleUoWFactory) AddToCartCommandHandler {
	return AddToCartCommandHandler{uowFactory: uowFactory}
}

func (h AddToCartCommandHandler) Handle(ctx context.Context, cmd AddToCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("add to cart", kernel.RoleSeller); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := uow.InventoryRepository().Get(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	cartRepo := uow.CartRepository()

	c, err := cartRepo.Get(ctx, cmd.Actor().ID())
	if err != nil {
		return nil, err
	}

	if err = c.Add(item.ID(), cmd.Quantity(), item.Stock()); err != nil {
		return nil, err
	}

	if err = cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
