package activitylog_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"marketplace/internal/adapters/out/activitylog"
	"marketplace/internal/core/domain/model/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func descriptions(entries []activity.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Description)
	}
	return out
}

func TestMemoryLog_KeepsNewestWithinCapacity(t *testing.T) {
	ctx := context.Background()
	log := activitylog.NewMemoryLog(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, log.Append(ctx, activity.NewEntry(activity.TypeOrder, fmt.Sprintf("entry %d", i), time.Now())))
	}

	recent, err := log.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"entry 5", "entry 4", "entry 3"}, descriptions(recent))

	limited, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"entry 5", "entry 4"}, descriptions(limited))
}

func TestMemoryLog_BeforeWrapping(t *testing.T) {
	ctx := context.Background()
	log := activitylog.NewMemoryLog(0)

	empty, err := log.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, log.Append(ctx, activity.NewEntry(activity.TypeReturn, "first", time.Now())))
	require.NoError(t, log.Append(ctx, activity.NewEntry(activity.TypeReturn, "second", time.Now())))

	recent, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, descriptions(recent))
}

func TestMemoryLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	log := activitylog.NewMemoryLog(activitylog.DefaultCapacity)

	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = log.Append(ctx, activity.NewEntry(activity.TypeOrder, fmt.Sprint(i), time.Now()))
		}()
	}
	wg.Wait()

	recent, err := log.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, activitylog.DefaultCapacity)
}
