// Package queries contains the read side: role-scoped listings served straight from the
// database with GORM, bypassing the aggregates.
package queries

import (
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

const (
	// DefaultLimit caps a listing when the caller does not ask for a size.
	DefaultLimit = 50
	// MaxLimit is the largest page a caller may ask for.
	MaxLimit = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

// toKernelIDs converts scanned column values, failing on the first invalid one.
func toKernelIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
