package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// QuoteBuyback handles GET /api/v1/buybacks/quote - prices a book from its MRP and
// condition without creating anything. No actor is required.
func (s *Server) QuoteBuyback(ctx echo.Context) error {
	const op = "quote_buyback"

	mrp := decimal.Zero
	if raw := ctx.QueryParam("mrp"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return s.badRequest(ctx, op, err)
		}
		mrp = parsed
	}

	conditions := Conditions{
		Page:     ctx.QueryParam("page"),
		Binding:  ctx.QueryParam("binding"),
		Cover:    ctx.QueryParam("cover"),
		Markings: ctx.QueryParam("markings"),
		Damage:   ctx.QueryParam("damage"),
		Tier:     ctx.QueryParam("tier"),
	}

	query, err := queries.NewQuoteBuybackQuery(mrp, conditions.parse())
	if err != nil {
		return s.fail(ctx, op, err)
	}

	q, err := s.h.QuoteBuyback.Handle(query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, Quote{
		BasePrice:    q.BasePrice,
		Multiplier:   q.Multiplier,
		OfferedPrice: q.OfferedPrice,
	})
}

// SubmitBuyback handles POST /api/v1/buybacks.
func (s *Server) SubmitBuyback(ctx echo.Context) error {
	const op = "submit_buyback"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	var req SubmitBuybackRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	book, err := kernel.NewBookDetails(req.Book.Title, req.Book.Author, req.Book.ISBN,
		req.Book.Publisher, req.Book.Edition, req.Book.MRP)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	cmd, err := commands.NewSubmitBuybackCommand(actor, book, req.Conditions.parse(), req.QuotedPrice)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	request, err := s.h.SubmitBuyback.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusCreated, buybackFromDomain(request))
}

// ListBuybackRequests handles GET /api/v1/buybacks.
func (s *Server) ListBuybackRequests(ctx echo.Context) error {
	const op = "list_buyback_requests"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	status, limit, err := listParams(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	query, err := queries.NewListBuybackRequestsQuery(actor, status, limit)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	requests, err := s.h.ListBuybackRequests.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, mapAll(requests, buybackFromView))
}

// ApproveBuyback handles POST /api/v1/buybacks/:id/approve.
func (s *Server) ApproveBuyback(ctx echo.Context) error {
	const op = "approve_buyback"

	actor, err := actorOf(ctx)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	id, err := pathID(ctx)
	if err != nil {
		return s.badRequest(ctx, op, err)
	}

	var req ApproveBuybackRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, op, err)
	}

	cmd, err := commands.NewApproveBuybackCommand(actor, id, req.SellingPrice, req.Reason)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	request, err := s.h.ApproveBuyback.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, buybackFromDomain(request))
}

// RejectBuyback handles POST /api/v1/buybacks/:id/reject.
func (s *Server) RejectBuyback(ctx echo.Context) error {
	const op = "reject_buyback"

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

	cmd, err := commands.NewRejectBuybackCommand(actor, id, req.Reason)
	if err != nil {
		return s.fail(ctx, op, err)
	}

	request, err := s.h.RejectBuyback.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, op, err)
	}
	return ctx.JSON(http.StatusOK, buybackFromDomain(request))
}
