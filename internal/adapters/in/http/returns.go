package http

import (
	"fmt"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returns"

	"github.com/labstack/echo/v4"
)

// RequestReturn handles POST /api/v1/returns.
func (s *Server) RequestReturn(ctx echo.Context) error {
	const op = "request_return"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	var req RequestReturnRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}
	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	lines := make([]returns.Line, 0, len(req.Items))
	for i, item := range req.Items {
		bookID, err := kernel.UUIDFromString(item.BookID)
		if err != nil {
			return s.badRequest(ctx, op, fmt.Errorf("items[%d]: %w", i, err))
		}
		lines = append(lines, returns.Line{BookID: bookID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewRequestReturnCommand(actor, orderID, lines, req.Reason, req.Description)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	r, err := s.h.RequestReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusCreated, returnFromDomain(r))
}

// ListReturns handles GET /api/v1/returns.
func (s *Server) ListReturns(ctx echo.Context) error {
	const op = "list_returns"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	status, limit, err := listParams(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewListReturnsQuery(actor, status, limit)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	views, err := s.h.ListReturns.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, mapAll(views, returnFromView))
}

// DecideReturn handles POST /api/v1/returns/:id/decision.
func (s *Server) DecideReturn(ctx echo.Context) error {
	const op = "decide_return"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	var req DecideReturnRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewDecideReturnCommand(actor, id, req.Decision, req.Notes)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	r, err := s.h.DecideReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, returnFromDomain(r))
}

// ProcessRefund handles POST /api/v1/returns/:id/refund. Without an amount the
// returned items are refunded at their order price.
func (s *Server) ProcessRefund(ctx echo.Context) error {
	const op = "process_refund"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	var req RefundRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewProcessRefundCommand(actor, id, req.Amount, req.Notes)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	r, err := s.h.ProcessRefund.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, returnFromDomain(r))
}

// CompleteReturn handles POST /api/v1/returns/:id/complete.
func (s *Server) CompleteReturn(ctx echo.Context) error {
	const op = "complete_return"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewCompleteReturnCommand(actor, id)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	r, err := s.h.CompleteReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, returnFromDomain(r))
}

// RecentActivity handles GET /api/v1/admin/activity.
func (s *Server) RecentActivity(ctx echo.Context) error {
	const op = "recent_activity"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	_, limit, err := listParams(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewRecentActivityQuery(actor, limit)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	entries, err := s.h.RecentActivity.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, mapAll(entries, activityFromDomain))
}
