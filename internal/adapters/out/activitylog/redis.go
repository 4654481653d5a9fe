package activitylog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/activity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis list holding the log.
const DefaultKey = "marketplace:activity"

// RedisLog keeps the newest entries at the head of a Redis list trimmed to capacity.
type RedisLog struct {
	client   redis.Cmdable
	key      string
	capacity int
}

type entryJSON struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

func NewRedisLog(client redis.Cmdable, key string, capacity int) *RedisLog {
	if key == "" {
		key = DefaultKey
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RedisLog{client: client, key: key, capacity: capacity}
}

// Append pushes entry and trims the list in one MULTI/EXEC.
func (l *RedisLog) Append(ctx context.Context, entry activity.Entry) error {
	value, err := json.Marshal(entryJSON{
		ID:          entry.ID.String(),
		Type:        string(entry.Type),
		Description: entry.Description,
		At:          entry.At,
	})
	if err != nil {
		return fmt.Errorf("encode activity entry: %w", err)
	}

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, l.key, value)
		pipe.LTrim(ctx, l.key, 0, int64(l.capacity-1))
		return nil
	})
	if err != nil {
		return errs.NewUnavailableError("redis", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *RedisLog) Recent(ctx context.Context, limit int) ([]activity.Entry, error) {
	if limit <= 0 || limit > l.capacity {
		limit = l.capacity
	}

	values, err := l.client.LRange(ctx, l.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errs.NewUnavailableError("redis", err)
	}

	entries := make([]activity.Entry, 0, len(values))
	for _, v := range values {
		var raw entryJSON
		if err = json.Unmarshal([]byte(v), &raw); err != nil {
			return nil, fmt.Errorf("decode activity entry: %w", err)
		}
		id, err := kernel.UUIDFromString(raw.ID)
		if err != nil {
			return nil, err
		}
		typ, err := activity.ParseType(raw.Type)
		if err != nil {
			return nil, err
		}
		entries = append(entries, activity.Entry{
			ID:          id,
			Type:        typ,
			Description: raw.Description,
			At:          raw.At,
		})
	}
	return entries, nil
}
