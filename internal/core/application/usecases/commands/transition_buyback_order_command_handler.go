package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/buybackorder"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// TransitionBuybackOrderCommandHandler advances buyback order fulfilment. Cancelling
// gives the stock of every line back to its inventory item in the same transaction.
// A concurrent writer that already moved the order to the target wins quietly.
type TransitionBuybackOrderCommandHandler struct {
	uowFactory ResaleUoWFactory
	recorder   Recorder
}

func NewTransitionBuybackOrderCommandHandler(uowFactory ResaleUoWFactory, recorder Recorder) TransitionBuybackOrderCommandHandler {
	return TransitionBuybackOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h TransitionBuybackOrderCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionBuybackOrderCommand,
) (*buybackorder.BuybackOrder, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.BuybackOrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.Authorize(cmd.Actor(), cmd.Target()); err != nil {
		return nil, err
	}

	changed, err := o.MoveTo(cmd.Target(), time.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		if errors.Is(err, errs.ErrStateConflict) {
			if current, getErr := orderRepo.Get(ctx, o.ID()); getErr == nil && current.Status() == o.Status() {
				return current, nil
			}
		}
		return nil, err
	}

	if o.Status() == buybackorder.Cancelled {
		inventoryRepo := uow.InventoryRepository()
		for _, l := range o.Lines() {
			if err = inventoryRepo.ReturnStock(ctx, l.ItemID, l.Quantity); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "buyback_order", o.Status().String(),
		activity.Entryf(activity.TypeSeller, o.UpdatedAt(), "Buyback order %s is now %s", o.TrackingNumber(), o.Status()),
		ports.Notification{
			RecipientID: o.SellerID(),
			Category:    ports.CategoryResale,
			Subject:     o.ID(),
			Message:     "Your buyback order " + o.TrackingNumber().String() + " is now " + o.Status().String(),
		},
	)

	return o, nil
}
