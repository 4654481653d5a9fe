package activity_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryf(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("IST", 19800))

	e := activity.Entryf(activity.TypeOrder, at, "order %s moved to %s", "abc", "shipped")

	require.NoError(t, e.ID.Validate())
	assert.Equal(t, activity.TypeOrder, e.Type)
	assert.Equal(t, "order abc moved to shipped", e.Description)
	assert.Equal(t, time.UTC, e.At.Location())
}

func TestParseType(t *testing.T) {
	typ, err := activity.ParseType(" Buyback ")
	require.NoError(t, err)
	assert.Equal(t, activity.TypeBuyback, typ)

	_, err = activity.ParseType("payment")
	require.Error(t, err)
}
