package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errActor marks a request whose actor headers are missing or malformed.
var errActor = errors.New("actor headers are missing or invalid")

// statusOf maps the typed errors of the core to a status code and a metrics class.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errActor):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity, "validation"
	case errs.IsValidation(err):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, "permission"
	case errs.IsRetryable(err):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// fail writes err as an Error body. Internal errors are logged and their text is not
// sent to the client.
func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	code, class := statusOf(err)
	if s.metrics != nil {
		s.metrics.OperationFailed(operation, class)
	}

	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed", "operation", operation, "error", err)
		message = http.StatusText(code)
	}
	if code == http.StatusServiceUnavailable {
		ctx.Response().Header().Set("Retry-After", "1")
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func (s *Server) badRequest(ctx echo.Context, operation string, err error) error {
	if s.metrics != nil {
		s.metrics.OperationFailed(operation, "bad_request")
	}
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request: " + err.Error(),
	})
}
