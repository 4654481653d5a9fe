package http

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

func actorOf(ctx echo.Context) (kernel.Actor, error) {
	rawID := ctx.Request().Header.Get(HeaderActorID)
	rawRole := ctx.Request().Header.Get(HeaderActorRole)
	if rawID == "" || rawRole == "" {
		return kernel.Actor{}, errActor
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errActor, err)
	}
	role, err := kernel.ParseRole(rawRole)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errActor, err)
	}
	return kernel.NewActor(id, role)
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// listParams reads the optional status and limit query parameters.
func listParams(ctx echo.Context) (string, int, error) {
	var limit int
	if err := echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
		return "", 0, err
	}
	return ctx.QueryParam("status"), limit, nil
}
