package queries

import (
	"context"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

type RecentActivityQueryHandler struct {
	log ports.ActivityLog
}

func NewRecentActivityQueryHandler(log ports.ActivityLog) RecentActivityQueryHandler {
	return RecentActivityQueryHandler{log: log}
}

// Handle returns the newest entries first. Only admins may read the log.
func (h RecentActivityQueryHandler) Handle(ctx context.Context, query RecentActivityQuery) ([]activity.Entry, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.Actor().RequireRole("read activity", kernel.RoleAdmin); err != nil {
		return nil, err
	}

	entries, err := h.log.Recent(ctx, query.Limit())
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []activity.Entry{}
	}
	return entries, nil
}
