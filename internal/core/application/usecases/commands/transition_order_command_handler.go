package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies an order action.
//
// The order is checked for actor permission, then asked to perform the action. A
// repeated action is a no-op: nothing is written and the unchanged order is returned.
// Otherwise the order is written with a version compare-and-swap; rejecting or
// cancelling also releases the reserved catalog stock in the same transaction.
// Losing the swap to a writer that already reached the same status is a no-op as well.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	recorder   Recorder
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, recorder Recorder) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

// Handle returns the order as persisted after the command.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = cmd.Action().Authorize(cmd.Actor(), o); err != nil {
		return nil, err
	}

	from := o.Status()
	changed, err := o.Apply(cmd.Action(), cmd.Reason(), time.Now())
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

	if o.ReleasesStock() {
		catalog := uow.BookCatalog()
		for _, item := range o.Items() {
			if err = catalog.Release(ctx, item.BookID(), item.Quantity()); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.recorder.Record(ctx, "order", o.Status().String(),
		activity.Entryf(activity.TypeOrder, o.UpdatedAt(), "Order %s moved from %s to %s by %s", o.ID(), from, o.Status(), cmd.Actor().Role()),
		orderNotification(o),
	)

	return o, nil
}

// orderNotification tells the party that did not act about the new status.
func orderNotification(o *order.Order) ports.Notification {
	n := ports.Notification{
		RecipientID: o.BuyerID(),
		Category:    ports.CategoryOrder,
		Subject:     o.ID(),
		Message:     "Your order is now " + o.Status().Label(),
	}

	//nolint:exhaustive // other statuses use the default message
	switch o.Status() {
	case order.Rejected:
		n.Message = "Your order was rejected: " + o.RejectionReason()
	case order.Shipped:
		n.Message = "Your order has shipped, tracking number " + o.TrackingNumber().String()
	case order.Cancelled:
		n.RecipientID = o.SellerID()
		n.Message = "Order cancelled by the buyer"
	}
	return n
}
