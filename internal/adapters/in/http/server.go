// Package http exposes the marketplace use cases as a JSON API on echo.
//
// Every mutating route and every listing identifies its caller through the X-Actor-ID
// and X-Actor-Role headers; the upstream gateway is trusted to have authenticated them.
package http

import (
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	PlaceOrder      commands.PlaceOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	ListOrders      queries.ListOrdersQueryHandler
	GetOrder        queries.GetOrderQueryHandler

	QuoteBuyback        queries.QuoteBuybackQueryHandler
	SubmitBuyback       commands.SubmitBuybackCommandHandler
	ApproveBuyback      commands.ApproveBuybackCommandHandler
	RejectBuyback       commands.RejectBuybackCommandHandler
	ListBuybackRequests queries.ListBuybackRequestsQueryHandler

	ListInventory          queries.ListInventoryQueryHandler
	AddToCart              commands.AddToCartCommandHandler
	Checkout               commands.CheckoutCommandHandler
	TransitionBuybackOrder commands.TransitionBuybackOrderCommandHandler
	ListBuybackOrders      queries.ListBuybackOrdersQueryHandler

	RequestReturn  commands.RequestReturnCommandHandler
	DecideReturn   commands.DecideReturnCommandHandler
	ProcessRefund  commands.ProcessRefundCommandHandler
	CompleteReturn commands.CompleteReturnCommandHandler
	ListReturns    queries.ListReturnsQueryHandler

	RecentActivity queries.RecentActivityQueryHandler
}

// ErrorMetrics counts failed requests by operation and error class.
type ErrorMetrics interface {
	OperationFailed(operation, class string)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h       Handlers
	metrics ErrorMetrics
	logger  *slog.Logger
}

// NewServer creates a server over the given handlers. metrics may be nil.
func NewServer(handlers Handlers, metrics ErrorMetrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:       handlers,
		metrics: metrics,
		logger:  logger.With("component", "http_server"),
	}
}

// Register mounts the API under /api/v1.
func (s *Server) Register(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/:action", s.TransitionOrder)

	api.GET("/buybacks/quote", s.QuoteBuyback)
	api.POST("/buybacks", s.SubmitBuyback)
	api.GET("/buybacks", s.ListBuybackRequests)
	api.POST("/buybacks/:id/approve", s.ApproveBuyback)
	api.POST("/buybacks/:id/reject", s.RejectBuyback)

	api.GET("/inventory", s.ListInventory)
	api.POST("/cart", s.AddToCart)
	api.POST("/checkout", s.Checkout)
	api.POST("/buy-now", s.BuyNow)
	api.GET("/buyback-orders", s.ListBuybackOrders)
	api.POST("/buyback-orders/:id/:action", s.TransitionBuybackOrder)

	api.POST("/returns", s.RequestReturn)
	api.GET("/returns", s.ListReturns)
	api.POST("/returns/:id/decision", s.DecideReturn)
	api.POST("/returns/:id/refund", s.ProcessRefund)
	api.POST("/returns/:id/complete", s.CompleteReturn)

	api.GET("/admin/activity", s.RecentActivity)
}
