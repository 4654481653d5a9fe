package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// CheckoutCommandHandler turns cart lines into one buyback order. Every line is checked
// by the allocator and then decremented with a conditional update; any failure rolls the
// whole unit of work back, so either all stock is taken or none.
type CheckoutCommandHandler struct {
	uowFactory ResaleUoWFactory
	allocator  services.StockAllocator
	shipping   services.ShippingPolicy
	recorder   Recorder
}

func NewCheckoutCommandHandler(
	uowFactory ResaleUoWFactory,
	allocator services.StockAllocator,
	shipping services.ShippingPolicy,
	recorder Recorder,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		shipping:   shipping,
		recorder:   recorder,
	}
}

func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (*buybackorder.BuybackOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("checkout", kernel.RoleSeller); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	inventoryRepo := uow.InventoryRepository()
	cartRepo := uow.CartRepository()

	var stored *cart.Cart
	lines := cmd.Lines()
	if cmd.FromCart() {
		var err error
		stored, err = cartRepo.Get(ctx, cmd.Actor().ID())
		if err != nil {
			return nil, err
		}
		if stored.IsEmpty() {
			return nil, errs.NewValueIsRequiredError("cart items")
		}
		lines = stored.Lines()
	}

	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}

	items, err := inventoryRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	allocated, err := h.allocator.Allocate(lines, items)
	if err != nil {
		return nil, err
	}

	for _, l := range allocated {
		if err = inventoryRepo.TakeStock(ctx, l.ItemID, l.Quantity); err != nil {
			return nil, err
		}
	}

	subtotal := buybackorder.Subtotal(allocated)
	o, err := buybackorder.NewBuybackOrder(kernel.NewUUID(), cmd.Actor().ID(), allocated,
		h.shipping.Fee(subtotal), cmd.Address(), cmd.PaymentMethod(), time.Now())
	if err != nil {
		return nil, err
	}

	if err = uow.BuybackOrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if stored != nil {
		stored.Clear()
		if err = cartRepo.Save(ctx, stored); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "buyback_order", o.Status().String(),
		activity.Entryf(activity.TypeSeller, o.CreatedAt(), "Seller %s bought %d buyback line(s), order %s, total %s",
			o.SellerID(), len(allocated), o.TrackingNumber(), o.Total()),
	)

	return o, nil
}
