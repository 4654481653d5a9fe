package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// PlaceOrderCommandHandler splits a basket into one order per seller, reserves the
// catalog stock and persists the orders, all in one transaction.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, services.NewOrderSplitter(policy), recorder)
//	orders, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsOutOfRange) {
//	    // a book does not have enough copies left
//	}
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	splitter   services.OrderSplitter
	recorder   Recorder
}

func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	splitter services.OrderSplitter,
	recorder Recorder,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		splitter:   splitter,
		recorder:   recorder,
	}
}

// Handle returns the created orders. Either all of them are persisted or none is.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Actor().RequireRole("place order", kernel.RoleCustomer); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	catalog := uow.BookCatalog()
	orderRepo := uow.OrderRepository()

	books, err := catalog.GetBooks(ctx, cmd.BookIDs())
	if err != nil {
		return nil, err
	}

	orders, err := h.splitter.Split(cmd.Actor().ID(), cmd.Lines(), books, cmd.Address(), cmd.PaymentMethod(), time.Now())
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		for _, item := range o.Items() {
			if err = catalog.Reserve(ctx, item.BookID(), item.Quantity()); err != nil {
				return nil, err
			}
		}
		if err = orderRepo.Add(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, o := range orders {
		h.recorder.Record(ctx, "order", o.Status().String(),
			activity.Entryf(activity.TypeOrder, o.CreatedAt(), "Order %s placed: %d line(s), total %s", o.ID(), len(o.Items()), o.Total()),
			ports.Notification{
				RecipientID: o.SellerID(),
				Category:    ports.CategoryOrder,
				Subject:     o.ID(),
				Message:     "New order received, total " + o.Total().String(),
			},
		)
	}

	return orders, nil
}
