package http

import (
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// PlaceOrder handles POST /api/v1/orders - splits the basket into one order per seller.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	const op = "place_order"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	var req PlaceOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	lines := make([]services.BasketLine, 0, len(req.Items))
	for i, item := range req.Items {
		bookID, err := kernel.UUIDFromString(item.BookID)
		if err != nil {
			return s.badRequest(ctx, op, fmt.Errorf("items[%d]: %w", i, err))
		}
		lines = append(lines, services.BasketLine{BookID: bookID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewPlaceOrderCommand(actor, lines, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	orders, err := s.h.PlaceOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		response = append(response, orderFromDomain(o))
	}
	return ctx.JSON(http.StatusCreated, response)
}

// ListOrders handles GET /api/v1/orders - the orders visible to the caller.
func (s *Server) ListOrders(ctx echo.Context) error {
	const op = "list_orders"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	status, limit, err := listParams(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewListOrdersQuery(actor, status, limit)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	orders, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, mapAll(orders, orderFromView))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	const op = "get_order"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// TransitionOrder handles POST /api/v1/orders/:id/:action. The optional body carries
// the rejection reason.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	const op = "transition_order"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	var req ReasonRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(actor, id, ctx.Param("action"), req.Reason)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	o, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}
