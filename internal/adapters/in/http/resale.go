package http

import (
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListInventory handles GET /api/v1/inventory - approved items that still have stock.
func (s *Server) ListInventory(ctx echo.Context) error {
	const op = "list_inventory"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	_, limit, err := listParams(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewListInventoryQuery(actor, limit)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	items, err := s.h.ListInventory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, mapAll(items, inventoryFromView))
}

// AddToCart handles POST /api/v1/cart.
func (s *Server) AddToCart(ctx echo.Context) error {
	const op = "add_to_cart"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	var req CartLine
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}
	itemID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewAddToCartCommand(actor, itemID, req.Quantity)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	c, err := s.h.AddToCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, cartFromDomain(c))
}

// Checkout handles POST /api/v1/checkout. Without items the stored cart is bought.
func (s *Server) Checkout(ctx echo.Context) error {
	const op = "checkout"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	lines := make([]cart.Line, 0, len(req.Items))
	for i, item := range req.Items {
		itemID, err := kernel.UUIDFromString(item.ItemID)
		if err != nil {
			return s.badRequest(ctx, op, fmt.Errorf("items[%d]: %w", i, err))
		}
		lines = append(lines, cart.Line{ItemID: itemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCheckoutCommand(actor, lines, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return s.checkout(ctx, op, cmd)
}

// BuyNow handles POST /api/v1/buy-now - checks out a single item, bypassing the cart.
func (s *Server) BuyNow(ctx echo.Context) error {
	const op = "buy_now"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	var req BuyNowRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}
	itemID, err := kernel.UUIDFromString(req.ItemID)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewBuyNowCommand(actor, itemID, req.Quantity, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return s.checkout(ctx, op, cmd)
}

func (s *Server) checkout(ctx echo.Context, op string, cmd commands.CheckoutCommand) error {
	o, err := s.h.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusCreated, buybackOrderFromDomain(o))
}

// ListBuybackOrders handles GET /api/v1/buyback-orders.
func (s *Server) ListBuybackOrders(ctx echo.Context) error {
	const op = "list_buyback_orders"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	status, limit, err := listParams(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewListBuybackOrdersQuery(actor, status, limit)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	orders, err := s.h.ListBuybackOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, mapAll(orders, buybackOrderFromView))
}

// TransitionBuybackOrder handles POST /api/v1/buyback-orders/:id/:action, where action
// names the target status.
func (s *Server) TransitionBuybackOrder(ctx echo.Context) error {
	const op = "transition_buyback_order"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewTransitionBuybackOrderCommand(actor, id, ctx.Param("action"))
	if err != nil {
		return s.fail(ctx, op, err)
	}

	o, err := s.h.TransitionBuybackOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, buybackOrderFromDomain(o))
}
