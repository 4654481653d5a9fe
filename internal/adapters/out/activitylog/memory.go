// Package activitylog implements the bounded admin activity log, in memory for a single
// process and in Redis when several processes share one log.
package activitylog

import (
	"context"
	"sync"

	"marketplace/internal/core/domain/model/activity"
)

// DefaultCapacity is how many entries the log keeps when no capacity is configured.
const DefaultCapacity = 50

// MemoryLog is a fixed-size ring of the most recent entries. Safe for concurrent use.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []activity.Entry
	next    int
	full    bool
}

func NewMemoryLog(capacity int) *MemoryLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryLog{entries: make([]activity.Entry, capacity)}
}

// Append stores entry, overwriting the oldest one once the ring is full.
func (l *MemoryLog) Append(_ context.Context, entry activity.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = entry
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *MemoryLog) Recent(_ context.Context, limit int) ([]activity.Entry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.entries)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	recent := make([]activity.Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		recent = append(recent, l.entries[(l.next-i+len(l.entries))%len(l.entries)])
	}
	return recent, nil
}
