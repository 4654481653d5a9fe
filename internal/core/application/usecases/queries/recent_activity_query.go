package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRecentActivityQueryIsNotConstructed = errors.New("RecentActivityQuery must be created via NewRecentActivityQuery constructor")
)

// RecentActivityQuery reads the newest entries of the admin activity log.
type RecentActivityQuery struct {
	actor kernel.Actor
	limit int

	guard guard.ConstructorGuard
}

func NewRecentActivityQuery(actor kernel.Actor, limit int) (RecentActivityQuery, error) {
	if err := actor.Validate(); err != nil {
		return RecentActivityQuery{}, err
	}
	return RecentActivityQuery{actor: actor, limit: clampLimit(limit), guard: guard.NewConstructorGuard()}, nil
}

func (q RecentActivityQuery) Validate() error {
	return q.guard.Validate(ErrRecentActivityQueryIsNotConstructed)
}

func (q RecentActivityQuery) Actor() kernel.Actor { return q.actor }
func (q RecentActivityQuery) Limit() int          { return q.limit }
